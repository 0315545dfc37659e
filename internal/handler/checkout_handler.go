package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// CheckoutHandler handles checkout order endpoints
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

// NewCheckoutHandler creates a CheckoutHandler
func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CreateOrder handles POST /api/orders
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	order, err := h.checkout.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder handles GET /api/orders/:orderNumber
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "Order not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, order)
}
