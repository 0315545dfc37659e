package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/metrics"
	"github.com/enroute-labs/enroute-api/internal/repository"
	"github.com/enroute-labs/enroute-api/pkg/logger"
)

// CheckoutService creates and looks up checkout orders
type CheckoutService struct {
	orders            repository.OrderRepository
	taxRate           float64
	orderNumberPrefix string
}

// NewCheckoutService creates a CheckoutService
func NewCheckoutService(orders repository.OrderRepository, taxRate float64, orderNumberPrefix string) *CheckoutService {
	return &CheckoutService{
		orders:            orders,
		taxRate:           taxRate,
		orderNumberPrefix: orderNumberPrefix,
	}
}

// CreateOrder computes tax and total from the subtotal and records the
// order with a generated order number
func (s *CheckoutService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*domain.Order, error) {
	now := time.Now().UTC()
	tax := round2(req.Subtotal * s.taxRate)

	order := &domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     s.generateOrderNumber(now),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZip:     req.ShippingZip,
		DeliveryType:    req.DeliveryType,
		Subtotal:        req.Subtotal,
		Tax:             tax,
		Total:           round2(req.Subtotal + tax),
		Items:           req.Items,
		Status:          domain.OrderStatusConfirmed,
		CreatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrdersTotal.Inc(ctx, attribute.String("type", "checkout"))
	logger.Get().Info("checkout order created",
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total))

	return order, nil
}

// GetOrder returns a checkout order by its order number
func (s *CheckoutService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// generateOrderNumber produces numbers like WM-2026-4F9A2C1B. The random
// fragment comes from a UUID so numbers stay unique without a sequence.
func (s *CheckoutService) generateOrderNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", s.orderNumberPrefix, now.Year(), fragment)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
