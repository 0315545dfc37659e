package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// ChokepointHandler handles chokepoint listing endpoints
type ChokepointHandler struct {
	chokepoints *service.ChokepointService
}

// NewChokepointHandler creates a ChokepointHandler
func NewChokepointHandler(chokepoints *service.ChokepointService) *ChokepointHandler {
	return &ChokepointHandler{chokepoints: chokepoints}
}

// ListByZone handles GET /api/chokepoints/:zone
func (h *ChokepointHandler) ListByZone(c *gin.Context) {
	zone := c.Param("zone")
	if zone == "" {
		response.BadRequest(c, "Zone is required")
		return
	}

	points, err := h.chokepoints.ListByZone(c.Request.Context(), zone)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, points)
}
