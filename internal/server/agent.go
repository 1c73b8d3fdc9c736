package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
)

func (s *Server) CreateAgent(c *gin.Context) {
	withFallback(c, "Failed to create agent. Please try again.")

	var req agentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.agentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) ListAgents(c *gin.Context) {
	withFallback(c, "Failed to load agents. Please try again.")

	resp, err := s.agentSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) GetAgentByID(c *gin.Context) {
	withFallback(c, "Failed to load agent. Please try again.")

	resp, err := s.agentSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
