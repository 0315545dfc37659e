package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// LocationHandler handles zone lookup endpoints
type LocationHandler struct {
	zones *service.ZoneService
}

// NewLocationHandler creates a LocationHandler
func NewLocationHandler(zones *service.ZoneService) *LocationHandler {
	return &LocationHandler{zones: zones}
}

// GetZone handles GET /api/location/zone?lat=..&lng=..
func (h *LocationHandler) GetZone(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		response.BadRequest(c, "Invalid coordinates")
		return
	}
	h.resolve(c, lat, lng)
}

// DetectZone handles POST /api/location/detect-zone
func (h *LocationHandler) DetectZone(c *gin.Context) {
	var req dto.DetectZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid coordinates")
		return
	}
	if ok, msg := req.Validate(); !ok {
		response.BadRequest(c, msg)
		return
	}
	h.resolve(c, *req.Lat, *req.Lng)
}

func (h *LocationHandler) resolve(c *gin.Context, lat, lng float64) {
	zone, err := h.zones.ResolveZone(lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			response.NotFound(c, "No delivery zone covers this location")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, dto.ZoneResponse{Zone: zone})
}

// NearestChokepoint handles GET /api/location/nearest-chokepoint?lat=..&lng=..
func (h *LocationHandler) NearestChokepoint(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		response.BadRequest(c, "Invalid coordinates")
		return
	}

	cp, err := h.zones.NearestChokepoint(c.Request.Context(), lat, lng)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if cp == nil {
		response.NotFound(c, "No chokepoints available")
		return
	}
	response.Success(c, cp)
}
