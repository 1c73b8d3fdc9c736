package server

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/imaging"
)

func (s *Server) CreateCatalog(c *gin.Context) {
	withFallback(c, "Failed to create catalog. Please try again.")

	var req catalogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.catalogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) ListCatalogs(c *gin.Context) {
	withFallback(c, "Failed to load catalogs. Please try again.")

	resp, err := s.catalogSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) GetCatalogByID(c *gin.Context) {
	withFallback(c, "Failed to load catalog. Please try again.")

	resp, err := s.catalogSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) UpdateCatalog(c *gin.Context) {
	withFallback(c, "Failed to update catalog. Please try again.")

	var req catalogdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.catalogSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) AddCatalogTier(c *gin.Context) {
	withFallback(c, "Failed to add pricing tier. Please try again.")

	resp, err := s.catalogSvc.AddTier(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) RemoveCatalogTier(c *gin.Context) {
	withFallback(c, "Failed to remove pricing tier. Please try again.")

	index, ok := tierIndexParam(c)
	if !ok {
		return
	}

	resp, err := s.catalogSvc.RemoveTier(c.Request.Context(), strings.TrimSpace(c.Param("id")), index)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

type updateTierFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) UpdateCatalogTierField(c *gin.Context) {
	withFallback(c, "Failed to update pricing tier. Please try again.")

	index, ok := tierIndexParam(c)
	if !ok {
		return
	}

	var req updateTierFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.catalogSvc.UpdateTierField(c.Request.Context(), catalogdomain.UpdateTierFieldRequest{
		ID:    strings.TrimSpace(c.Param("id")),
		Index: index,
		Field: catalogdomain.TierField(strings.TrimSpace(req.Field)),
		Value: req.Value,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) UploadCatalogImage(c *gin.Context) {
	withFallback(c, "Failed to upload image. Please try again.")
	s.uploadImage(c, nil)
}

func (s *Server) UploadCatalogTierImage(c *gin.Context) {
	withFallback(c, "Failed to upload image. Please try again.")

	index, ok := tierIndexParam(c)
	if !ok {
		return
	}
	s.uploadImage(c, &index)
}

func (s *Server) uploadImage(c *gin.Context, tierIndex *int) {
	header, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, imaging.ErrImageReadFailure)
		return
	}

	file, err := header.Open()
	if err != nil {
		AbortWithError(c, imaging.ErrImageReadFailure)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		AbortWithError(c, imaging.ErrImageReadFailure)
		return
	}

	resp, err := s.catalogSvc.AttachImage(c.Request.Context(), catalogdomain.AttachImageRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		TierIndex:   tierIndex,
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

type publishCatalogRequest struct {
	Origin string `json:"origin"`
}

func (s *Server) PublishCatalog(c *gin.Context) {
	withFallback(c, "Failed to publish catalog. Please try again.")

	var req publishCatalogRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	resp, err := s.catalogSvc.Publish(c.Request.Context(), catalogdomain.PublishRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Origin: strings.TrimSpace(req.Origin),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func tierIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(c.Param("index")))
	if err != nil || index < 0 {
		AbortWithError(c, catalogdomain.ErrTierIndexOutOfRange)
		return 0, false
	}
	return index, true
}
