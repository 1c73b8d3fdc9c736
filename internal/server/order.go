package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/vocaai/console/internal/order/domain"
)

const HeaderIdempotencyKey = "Idempotency-Key"

func (s *Server) SubmitOrder(c *gin.Context) {
	withFallback(c, "Failed to submit order. Please try again.")

	var req orderdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.IdempotencyKey = strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))

	resp, err := s.orderSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) ListOrders(c *gin.Context) {
	withFallback(c, "Failed to load orders. Please try again.")

	resp, err := s.orderSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	withFallback(c, "Failed to load order. Please try again.")

	resp, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	withFallback(c, "Failed to update order status. Please try again.")

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdateStatus(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		orderdomain.Status(strings.TrimSpace(strings.ToLower(req.Status))),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, resp)
}
