package metrics

import (
	"sync"

	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/pkg/logger"
	"github.com/enroute-labs/enroute-api/pkg/telemetry"
)

var (
	initOnce sync.Once

	// AssignmentsTotal counts assignment cascade outcomes, labeled by reason
	AssignmentsTotal *telemetry.Counter

	// SlotContentionTotal counts reservation attempts that lost the race or
	// hit a full slot
	SlotContentionTotal *telemetry.Counter

	// AssignmentDuration measures the assignment cascade latency in ms
	AssignmentDuration *telemetry.Histogram

	// OrdersTotal counts placed orders, labeled by type
	OrdersTotal *telemetry.Counter
)

// Init creates the metric instruments. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		var err error

		AssignmentsTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
			Name:        "enroute_assignments_total",
			Description: "Slot assignment outcomes by reason",
			Unit:        "{assignment}",
		})
		if err != nil {
			logger.Get().Warn("failed to create assignments counter", zap.Error(err))
		}

		SlotContentionTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
			Name:        "enroute_slot_contention_total",
			Description: "Slot reservations that found the slot full",
			Unit:        "{attempt}",
		})
		if err != nil {
			logger.Get().Warn("failed to create contention counter", zap.Error(err))
		}

		AssignmentDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
			Name:        "enroute_assignment_duration_ms",
			Description: "Assignment cascade duration",
			Unit:        "ms",
		})
		if err != nil {
			logger.Get().Warn("failed to create assignment histogram", zap.Error(err))
		}

		OrdersTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
			Name:        "orders_total",
			Description: "Orders placed by type",
			Unit:        "{order}",
		})
		if err != nil {
			logger.Get().Warn("failed to create orders counter", zap.Error(err))
		}
	})
}
