package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// in-memory stand-ins for the Postgres repositories

type fakeChokepointRepo struct {
	points []*domain.ChokePoint
}

func (f *fakeChokepointRepo) FindAll(ctx context.Context) ([]*domain.ChokePoint, error) {
	return f.points, nil
}

func (f *fakeChokepointRepo) FindByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error) {
	var out []*domain.ChokePoint
	for _, cp := range f.points {
		if cp.Zone == zone {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeChokepointRepo) FindByID(ctx context.Context, id string) (*domain.ChokePoint, error) {
	for _, cp := range f.points {
		if cp.ID == id {
			return cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChokepointRepo) FindByNameAndZone(ctx context.Context, name, zone string) (*domain.ChokePoint, error) {
	for _, cp := range f.points {
		if cp.Name == name && cp.Zone == zone {
			return cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChokepointRepo) FindPeersInZone(ctx context.Context, zone, excludeID string) ([]*domain.ChokePoint, error) {
	var out []*domain.ChokePoint
	for _, cp := range f.points {
		if cp.Zone == zone && cp.ID != excludeID {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeChokepointRepo) TryReserveSlot(ctx context.Context, chokepointID, label string) (bool, error) {
	for _, cp := range f.points {
		if cp.ID != chokepointID {
			continue
		}
		for _, s := range cp.TimeSlots {
			if s.Label == label && s.Available() {
				s.CurrentOrders++
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeChokepointRepo) Create(ctx context.Context, cp *domain.ChokePoint) error {
	f.points = append(f.points, cp)
	return nil
}

type fakeEnrouteOrderRepo struct {
	orders map[string]*domain.EnrouteOrder
}

func (f *fakeEnrouteOrderRepo) Create(ctx context.Context, order *domain.EnrouteOrder) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeEnrouteOrderRepo) GetByID(ctx context.Context, id string) (*domain.EnrouteOrder, error) {
	return f.orders[id], nil
}

func (f *fakeEnrouteOrderRepo) ApplyReschedule(ctx context.Context, id, pointName, timeSlot string) (bool, error) {
	order, ok := f.orders[id]
	if !ok || order.RescheduleCount >= domain.MaxReschedules {
		return false, nil
	}
	order.PointName = pointName
	order.TimeSlot = timeSlot
	order.RescheduleCount++
	return true, nil
}

func enrouteTestRouter(points []*domain.ChokePoint) (*gin.Engine, *fakeEnrouteOrderRepo) {
	gin.SetMode(gin.TestMode)

	cpRepo := &fakeChokepointRepo{points: points}
	orderRepo := &fakeEnrouteOrderRepo{orders: make(map[string]*domain.EnrouteOrder)}
	orders := service.NewOrderService(cpRepo, orderRepo, service.NewAssignmentService(cpRepo), nil)
	h := NewEnrouteHandler(orders)

	router := gin.New()
	router.POST("/api/orders/enroute", h.PlaceOrder)
	router.GET("/api/orders/enroute/:id", h.GetOrder)
	router.POST("/api/orders/enroute/:id/reschedule", h.Reschedule)
	return router, orderRepo
}

func enrouteTestPoints() []*domain.ChokePoint {
	return []*domain.ChokePoint{
		{
			ID:   "cp-1",
			Zone: "South Dallas",
			Name: "DART Ledbetter Station",
			TimeSlots: []*domain.TimeSlot{
				{Label: "5-6 PM", MaxOrders: 10, CurrentOrders: 2},
				{Label: "6-7 PM", MaxOrders: 10, CurrentOrders: 1},
			},
		},
	}
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderEndpoint(t *testing.T) {
	router, _ := enrouteTestRouter(enrouteTestPoints())

	w := postJSON(router, "/api/orders/enroute", gin.H{
		"userId":       "user-1",
		"chokepointId": "cp-1",
		"timeSlot":     "5-6 PM",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Preferred slot assigned", data["message"])

	details := data["orderDetails"].(map[string]interface{})
	assert.Equal(t, "DART Ledbetter Station", details["chokepoint"])
	assert.Equal(t, "South Dallas", details["zone"])
	assert.Equal(t, "5-6 PM", details["timeSlot"])
	assert.NotEmpty(t, details["orderId"])
}

func TestPlaceOrderMissingUserID(t *testing.T) {
	router, _ := enrouteTestRouter(enrouteTestPoints())

	w := postJSON(router, "/api/orders/enroute", gin.H{
		"chokepointId": "cp-1",
		"timeSlot":     "5-6 PM",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderChokepointMissing(t *testing.T) {
	router, _ := enrouteTestRouter(enrouteTestPoints())

	w := postJSON(router, "/api/orders/enroute", gin.H{
		"userId":       "user-1",
		"chokepointId": "nope",
		"timeSlot":     "5-6 PM",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrderZoneExhaustedEndpoint(t *testing.T) {
	points := enrouteTestPoints()
	points[0].TimeSlots[0].CurrentOrders = 10
	points[0].TimeSlots[1].CurrentOrders = 10
	router, _ := enrouteTestRouter(points)

	w := postJSON(router, "/api/orders/enroute", gin.H{
		"userId":       "user-1",
		"chokepointId": "cp-1",
		"timeSlot":     "5-6 PM",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "All slots full in this zone", resp.Error.Message)
}

func TestRescheduleEndpoint(t *testing.T) {
	router, orderRepo := enrouteTestRouter(enrouteTestPoints())

	w := postJSON(router, "/api/orders/enroute", gin.H{
		"userId":       "user-1",
		"chokepointId": "cp-1",
		"timeSlot":     "6-7 PM",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var orderID string
	for id := range orderRepo.orders {
		orderID = id
	}

	w = postJSON(router, "/api/orders/enroute/"+orderID+"/reschedule", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// second reschedule hits the cap
	w = postJSON(router, "/api/orders/enroute/"+orderID+"/reschedule", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetEnrouteOrderEndpoint(t *testing.T) {
	router, orderRepo := enrouteTestRouter(enrouteTestPoints())

	orderRepo.orders["order-1"] = &domain.EnrouteOrder{
		ID:        "order-1",
		UserID:    "user-1",
		PointName: "DART Ledbetter Station",
		Zone:      "South Dallas",
		TimeSlot:  "5-6 PM",
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/enroute/order-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/enroute/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
