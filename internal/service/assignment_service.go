package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/metrics"
	"github.com/enroute-labs/enroute-api/internal/repository"
	"github.com/enroute-labs/enroute-api/pkg/telemetry"
)

// Assignment messages
const (
	MsgPreferredAssigned = "Preferred slot assigned"
	MsgAlternateAssigned = "Preferred full. Alternative slot assigned"
	MsgRedirected        = "Redirected to nearby chokepoint"
	MsgZoneExhausted     = "All slots full in this zone"
)

// AssignmentService runs the slot assignment cascade. Each step reserves
// through the repository's conditional counter update, so a slot observed
// as available can still be lost to a concurrent order; the cascade just
// moves on to the next candidate when that happens.
type AssignmentService struct {
	chokepoints repository.ChokePointRepository
}

// NewAssignmentService creates an AssignmentService
func NewAssignmentService(chokepoints repository.ChokePointRepository) *AssignmentService {
	return &AssignmentService{chokepoints: chokepoints}
}

// Assign reserves a slot for the given chokepoint, trying in order the
// preferred slot, any other slot at the same point, then any slot at a
// peer in the zone. An empty preferred label skips straight to the
// same-point scan, which is how reschedules ask for "any slot here".
// Exhaustion returns Assigned=false with the zone's peer list attached.
func (s *AssignmentService) Assign(ctx context.Context, cp *domain.ChokePoint, preferred string) (*domain.AssignmentOutcome, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.assignment.assign")
	defer span.End()
	span.SetAttributes(
		attribute.String("chokepoint_id", cp.ID),
		attribute.String("zone", cp.Zone),
		attribute.String("preferred_slot", preferred),
	)

	start := time.Now()
	outcome, err := s.runCascade(ctx, cp, preferred)
	metrics.AssignmentDuration.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}

	if outcome.Assigned {
		metrics.AssignmentsTotal.Inc(ctx, attribute.String("reason", string(outcome.Reason)))
	} else {
		metrics.AssignmentsTotal.Inc(ctx, attribute.String("reason", "exhausted"))
	}
	span.SetAttributes(attribute.Bool("assigned", outcome.Assigned))
	return outcome, nil
}

func (s *AssignmentService) runCascade(ctx context.Context, cp *domain.ChokePoint, preferred string) (*domain.AssignmentOutcome, error) {
	// Step 1: exact requested slot
	if slot := cp.SlotByLabel(preferred); slot != nil && slot.Available() {
		reserved, err := s.reserve(ctx, cp.ID, slot.Label)
		if err != nil {
			return nil, err
		}
		if reserved {
			return assigned(cp, slot.Label, domain.ReasonPreferred, MsgPreferredAssigned), nil
		}
	}

	// Step 2: any other slot at the same chokepoint, in declaration order
	for _, slot := range cp.TimeSlots {
		if slot.Label == preferred || !slot.Available() {
			continue
		}
		reserved, err := s.reserve(ctx, cp.ID, slot.Label)
		if err != nil {
			return nil, err
		}
		if reserved {
			return assigned(cp, slot.Label, domain.ReasonAlternateSlot, MsgAlternateAssigned), nil
		}
	}

	// Step 3: any slot at a peer chokepoint in the same zone
	peers, err := s.chokepoints.FindPeersInZone(ctx, cp.Zone, cp.ID)
	if err != nil {
		return nil, err
	}
	for _, peer := range peers {
		for _, slot := range peer.TimeSlots {
			if !slot.Available() {
				continue
			}
			reserved, err := s.reserve(ctx, peer.ID, slot.Label)
			if err != nil {
				return nil, err
			}
			if reserved {
				return assigned(peer, slot.Label, domain.ReasonRedirected, MsgRedirected), nil
			}
		}
	}

	// Zone exhausted: hand back the peer list so the user can pick
	alternatives := make([]*domain.Alternative, 0, len(peers))
	for _, peer := range peers {
		alternatives = append(alternatives, &domain.Alternative{
			Name:        peer.Name,
			Zone:        peer.Zone,
			Coordinates: peer.Coordinates,
			TimeSlots:   peer.TimeSlots,
		})
	}
	return &domain.AssignmentOutcome{
		Assigned:     false,
		Zone:         cp.Zone,
		Message:      MsgZoneExhausted,
		Alternatives: alternatives,
	}, nil
}

func (s *AssignmentService) reserve(ctx context.Context, chokepointID, label string) (bool, error) {
	reserved, err := s.chokepoints.TryReserveSlot(ctx, chokepointID, label)
	if err != nil {
		return false, err
	}
	if !reserved {
		metrics.SlotContentionTotal.Inc(ctx, attribute.String("chokepoint_id", chokepointID))
	}
	return reserved, nil
}

func assigned(cp *domain.ChokePoint, label string, reason domain.AssignmentReason, message string) *domain.AssignmentOutcome {
	return &domain.AssignmentOutcome{
		Assigned:  true,
		TimeSlot:  label,
		PointID:   cp.ID,
		PointName: cp.Name,
		Zone:      cp.Zone,
		Reason:    reason,
		Message:   message,
	}
}
