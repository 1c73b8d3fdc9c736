package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	storedomain "github.com/vocaai/console/internal/store/domain"
)

func (s *Server) CreateStore(c *gin.Context) {
	withFallback(c, "Failed to create store. Please try again.")

	var req storedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.storeSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) GetStoreByID(c *gin.Context) {
	withFallback(c, "Failed to load store. Please try again.")

	resp, err := s.storeSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) GetStoreByHandle(c *gin.Context) {
	withFallback(c, "Failed to load store. Please try again.")

	resp, err := s.storeSvc.GetByHandle(c.Request.Context(), strings.TrimSpace(c.Param("handle")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) UpdateStore(c *gin.Context) {
	withFallback(c, "Failed to update store. Please try again.")

	var req storedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.storeSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
