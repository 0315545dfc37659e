package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
)

// mockOrderRepo is an in-memory OrderRepository
type mockOrderRepo struct {
	orders map[string]*domain.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	m.orders[order.OrderNumber] = order
	return nil
}

func (m *mockOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, ok := m.orders[orderNumber]
	if !ok {
		return nil, nil
	}
	return order, nil
}

func validCheckoutRequest() *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		CustomerName:    "Jordan Reyes",
		CustomerEmail:   "jordan@example.com",
		CustomerPhone:   "214-555-0142",
		ShippingAddress: "1500 Marilla St",
		ShippingCity:    "Dallas",
		ShippingState:   "TX",
		ShippingZip:     "75201",
		DeliveryType:    domain.DeliveryTypeRoute,
		Subtotal:        100.00,
		Items:           `[{"productId":"p1","qty":2}]`,
	}
}

func TestCreateOrderComputesTaxAndTotal(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewCheckoutService(repo, 0.0825, "WM")

	order, err := svc.CreateOrder(context.Background(), validCheckoutRequest())
	require.NoError(t, err)

	assert.Equal(t, 100.00, order.Subtotal)
	assert.Equal(t, 8.25, order.Tax)
	assert.Equal(t, 108.25, order.Total)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestCreateOrderNumberFormat(t *testing.T) {
	svc := NewCheckoutService(newMockOrderRepo(), 0.0825, "WM")

	order, err := svc.CreateOrder(context.Background(), validCheckoutRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^WM-\d{4}-[0-9A-F]{8}$`), order.OrderNumber)
}

func TestCreateOrderNumbersUnique(t *testing.T) {
	svc := NewCheckoutService(newMockOrderRepo(), 0.0825, "WM")

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		order, err := svc.CreateOrder(context.Background(), validCheckoutRequest())
		require.NoError(t, err)
		assert.False(t, seen[order.OrderNumber])
		seen[order.OrderNumber] = true
	}
}

func TestGetCheckoutOrder(t *testing.T) {
	repo := newMockOrderRepo()
	svc := NewCheckoutService(repo, 0.0825, "WM")

	created, err := svc.CreateOrder(context.Background(), validCheckoutRequest())
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), created.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), "WM-2026-FFFFFFFF")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
