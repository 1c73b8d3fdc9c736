package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPublicCatalog(c *gin.Context) {
	withFallback(c, "This catalog is unavailable.")

	resp, err := s.catalogSvc.GetPublic(
		c.Request.Context(),
		strings.TrimSpace(c.Param("handle")),
		strings.TrimSpace(c.Param("id")),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

// RedirectLegacyOrderLink sends pre-handle share links to the canonical
// path. The redirect needs the published handle, so unknown or unpublished
// ids still 404 here.
func (s *Server) RedirectLegacyOrderLink(c *gin.Context) {
	withFallback(c, "This catalog is unavailable.")

	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.catalogSvc.GetPublicByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusMovedPermanently, "/"+resp.StoreHandle+"/catalog/"+resp.CatalogID)
}
