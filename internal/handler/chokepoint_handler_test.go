package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

func TestListChokepointsByZone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &fakeChokepointRepo{points: enrouteTestPoints()}
	h := NewChokepointHandler(service.NewChokepointService(repo))

	router := gin.New()
	router.GET("/api/chokepoints/:zone", h.ListByZone)

	req := httptest.NewRequest(http.MethodGet, "/api/chokepoints/South%20Dallas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	points := resp.Data.([]interface{})
	require.Len(t, points, 1)

	cp := points[0].(map[string]interface{})
	assert.Equal(t, "DART Ledbetter Station", cp["name"])

	slots := cp["availableTimeSlots"].([]interface{})
	require.Len(t, slots, 2)
	first := slots[0].(map[string]interface{})
	assert.Equal(t, "5-6 PM", first["time"])
	assert.Equal(t, float64(10), first["maxOrders"])
	assert.Equal(t, float64(2), first["currentOrders"])
}

func TestListChokepointsUnknownZone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewChokepointHandler(service.NewChokepointService(&fakeChokepointRepo{}))
	router := gin.New()
	router.GET("/api/chokepoints/:zone", h.ListByZone)

	req := httptest.NewRequest(http.MethodGet, "/api/chokepoints/Nowhere", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "unknown zone is an empty list, not an error")
}
