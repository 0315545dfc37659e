package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// EnrouteHandler handles enroute order endpoints
type EnrouteHandler struct {
	orders *service.OrderService
}

// NewEnrouteHandler creates an EnrouteHandler
func NewEnrouteHandler(orders *service.OrderService) *EnrouteHandler {
	return &EnrouteHandler{orders: orders}
}

// PlaceOrder handles POST /api/orders/enroute
func (h *EnrouteHandler) PlaceOrder(c *gin.Context) {
	var req dto.EnrouteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}

	order, outcome, err := h.orders.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrChokepointNotFound) {
			response.NotFound(c, "Chokepoint not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	if !outcome.Assigned {
		h.exhausted(c, outcome)
		return
	}

	response.Created(c, dto.EnrouteOrderResponse{
		Message: outcome.Message,
		OrderDetails: dto.OrderDetails{
			OrderID:    order.ID,
			Chokepoint: order.PointName,
			Zone:       order.Zone,
			TimeSlot:   order.TimeSlot,
		},
	})
}

// GetOrder handles GET /api/orders/enroute/:id
func (h *EnrouteHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
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

// Reschedule handles POST /api/orders/enroute/:id/reschedule
func (h *EnrouteHandler) Reschedule(c *gin.Context) {
	order, outcome, err := h.orders.Reschedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "Order not found")
		case errors.Is(err, service.ErrChokepointNotFound):
			response.NotFound(c, "Chokepoint not found")
		case errors.Is(err, service.ErrRescheduleLimit):
			response.Error(c, http.StatusConflict, "RESCHEDULE_LIMIT", "Order has already been rescheduled", nil)
		default:
			response.InternalError(c, err)
		}
		return
	}
	if !outcome.Assigned {
		h.exhausted(c, outcome)
		return
	}

	response.Success(c, dto.EnrouteOrderResponse{
		Message: outcome.Message,
		OrderDetails: dto.OrderDetails{
			OrderID:    order.ID,
			Chokepoint: order.PointName,
			Zone:       order.Zone,
			TimeSlot:   order.TimeSlot,
		},
	})
}

func (h *EnrouteHandler) exhausted(c *gin.Context, outcome *domain.AssignmentOutcome) {
	response.Error(c, http.StatusBadRequest, "ZONE_EXHAUSTED", outcome.Message, dto.ExhaustedResponse{
		Message:      outcome.Message,
		Alternatives: outcome.Alternatives,
	})
}
