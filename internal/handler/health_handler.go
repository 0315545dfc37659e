package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/pkg/database"
	"github.com/enroute-labs/enroute-api/pkg/redis"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	db      *database.PostgresDB
	cache   *redis.Client
	version string
}

// NewHealthHandler creates a HealthHandler. cache may be nil when Redis
// is not configured.
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client, version string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, version: version}
}

// Live handles GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready handles GET /ready, checking each backing store
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"checks": checks,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}
