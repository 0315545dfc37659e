package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/events"
	"github.com/enroute-labs/enroute-api/internal/metrics"
	"github.com/enroute-labs/enroute-api/internal/repository"
	"github.com/enroute-labs/enroute-api/pkg/logger"
)

var (
	// ErrChokepointNotFound is returned when the requested chokepoint
	// does not exist
	ErrChokepointNotFound = errors.New("chokepoint not found")

	// ErrOrderNotFound is returned when the order does not exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrRescheduleLimit is returned when the order has already used its
	// reschedule
	ErrRescheduleLimit = errors.New("reschedule limit reached")
)

// OrderService places and reschedules enroute orders
type OrderService struct {
	chokepoints repository.ChokePointRepository
	orders      repository.EnrouteOrderRepository
	assignment  *AssignmentService
	publisher   *events.Publisher
}

// NewOrderService creates an OrderService
func NewOrderService(
	chokepoints repository.ChokePointRepository,
	orders repository.EnrouteOrderRepository,
	assignment *AssignmentService,
	publisher *events.Publisher,
) *OrderService {
	return &OrderService{
		chokepoints: chokepoints,
		orders:      orders,
		assignment:  assignment,
		publisher:   publisher,
	}
}

// PlaceOrder resolves the requested chokepoint, runs the assignment
// cascade, and records the order when a slot was reserved. When the zone
// is exhausted the outcome comes back with Assigned=false and no order.
func (s *OrderService) PlaceOrder(ctx context.Context, req *dto.EnrouteOrderRequest) (*domain.EnrouteOrder, *domain.AssignmentOutcome, error) {
	cp, err := s.resolveChokepoint(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := s.assignment.Assign(ctx, cp, req.TimeSlot)
	if err != nil {
		return nil, nil, err
	}
	if !outcome.Assigned {
		return nil, outcome, nil
	}

	order := &domain.EnrouteOrder{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		PointName:   outcome.PointName,
		Zone:        outcome.Zone,
		Coordinates: domain.Coordinates{Lat: req.Lat, Lng: req.Lng},
		TimeSlot:    outcome.TimeSlot,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		logger.Get().Error("failed to record enroute order after reservation",
			zap.String("chokepoint_id", outcome.PointID),
			zap.String("time_slot", outcome.TimeSlot),
			zap.Error(err))
		return nil, nil, err
	}

	metrics.OrdersTotal.Inc(ctx, attribute.String("type", "enroute"))
	s.publisher.OrderConfirmed(ctx, order, outcome.Reason)

	logger.Get().Info("enroute order placed",
		zap.String("order_id", order.ID),
		zap.String("point", order.PointName),
		zap.String("zone", order.Zone),
		zap.String("time_slot", order.TimeSlot),
		zap.String("reason", string(outcome.Reason)))

	return order, outcome, nil
}

// GetOrder returns an enroute order by id
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.EnrouteOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Reschedule moves an order onto another available slot. The cascade runs
// with an empty preferred label so it takes the first open slot at the
// order's current point, redirecting within the zone if that point is
// full. One reschedule per order; the cap is enforced again at the store
// so two concurrent calls cannot both win.
func (s *OrderService) Reschedule(ctx context.Context, orderID string) (*domain.EnrouteOrder, *domain.AssignmentOutcome, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !order.CanReschedule() {
		return nil, nil, ErrRescheduleLimit
	}

	cp, err := s.chokepoints.FindByNameAndZone(ctx, order.PointName, order.Zone)
	if err != nil {
		return nil, nil, err
	}
	if cp == nil {
		return nil, nil, ErrChokepointNotFound
	}

	outcome, err := s.assignment.Assign(ctx, cp, "")
	if err != nil {
		return nil, nil, err
	}
	if !outcome.Assigned {
		return nil, outcome, nil
	}

	applied, err := s.orders.ApplyReschedule(ctx, order.ID, outcome.PointName, outcome.TimeSlot)
	if err != nil {
		return nil, nil, err
	}
	if !applied {
		// lost the race to a concurrent reschedule
		return nil, nil, ErrRescheduleLimit
	}

	order.PointName = outcome.PointName
	order.Zone = outcome.Zone
	order.TimeSlot = outcome.TimeSlot
	order.RescheduleCount++

	s.publisher.OrderRescheduled(ctx, order.ID, order.PointName, order.TimeSlot)

	logger.Get().Info("enroute order rescheduled",
		zap.String("order_id", order.ID),
		zap.String("point", order.PointName),
		zap.String("time_slot", order.TimeSlot))

	return order, outcome, nil
}

func (s *OrderService) resolveChokepoint(ctx context.Context, req *dto.EnrouteOrderRequest) (*domain.ChokePoint, error) {
	var cp *domain.ChokePoint
	var err error

	if req.ChokepointID != "" {
		cp, err = s.chokepoints.FindByID(ctx, req.ChokepointID)
	} else {
		cp, err = s.chokepoints.FindByNameAndZone(ctx, req.PointName, req.Zone)
	}
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, ErrChokepointNotFound
	}
	return cp, nil
}
