package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/pkg/kafka"
	"github.com/enroute-labs/enroute-api/pkg/logger"
)

// Topics
const (
	TopicOrderConfirmed   = "enroute.order.confirmed"
	TopicOrderRescheduled = "enroute.order.rescheduled"
)

// OrderConfirmedEvent is emitted after a slot assignment lands
type OrderConfirmedEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	PointName  string    `json:"pointName"`
	Zone       string    `json:"zone"`
	TimeSlot   string    `json:"timeSlot"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderRescheduledEvent is emitted after a successful reschedule
type OrderRescheduledEvent struct {
	OrderID    string    `json:"orderId"`
	PointName  string    `json:"pointName"`
	TimeSlot   string    `json:"timeSlot"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits order lifecycle events to Kafka. A nil Publisher is
// valid and drops everything, so callers never need to branch on whether
// eventing is enabled.
type Publisher struct {
	producer *kafka.Producer
}

// NewPublisher creates a Publisher backed by the given producer
func NewPublisher(producer *kafka.Producer) *Publisher {
	return &Publisher{producer: producer}
}

// OrderConfirmed publishes an order confirmed event. Failures are logged,
// not returned: eventing is best effort and must never fail the order.
func (p *Publisher) OrderConfirmed(ctx context.Context, order *domain.EnrouteOrder, reason domain.AssignmentReason) {
	if p == nil || p.producer == nil {
		return
	}

	event := OrderConfirmedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		PointName:  order.PointName,
		Zone:       order.Zone,
		TimeSlot:   order.TimeSlot,
		Reason:     string(reason),
		OccurredAt: time.Now().UTC(),
	}

	if err := p.producer.ProduceJSON(ctx, TopicOrderConfirmed, order.ID, event, nil); err != nil {
		logger.Get().Error("failed to publish order confirmed event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// OrderRescheduled publishes an order rescheduled event, best effort
func (p *Publisher) OrderRescheduled(ctx context.Context, orderID, pointName, timeSlot string) {
	if p == nil || p.producer == nil {
		return
	}

	event := OrderRescheduledEvent{
		OrderID:    orderID,
		PointName:  pointName,
		TimeSlot:   timeSlot,
		OccurredAt: time.Now().UTC(),
	}

	if err := p.producer.ProduceJSON(ctx, TopicOrderRescheduled, orderID, event, nil); err != nil {
		logger.Get().Error("failed to publish order rescheduled event",
			zap.String("order_id", orderID),
			zap.Error(err))
	}
}
