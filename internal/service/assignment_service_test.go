package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/domain"
)

// mockChokepointRepo is an in-memory ChokePointRepository. TryReserveSlot
// applies the same conditional increment the real store does, and
// failReservations can force the next reservations to lose as if a
// concurrent order got there first.
type mockChokepointRepo struct {
	points           []*domain.ChokePoint
	failReservations int
	reserveCalls     []string
	createErr        error
}

func (m *mockChokepointRepo) FindAll(ctx context.Context) ([]*domain.ChokePoint, error) {
	return m.points, nil
}

func (m *mockChokepointRepo) FindByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error) {
	var out []*domain.ChokePoint
	for _, cp := range m.points {
		if cp.Zone == zone {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *mockChokepointRepo) FindByID(ctx context.Context, id string) (*domain.ChokePoint, error) {
	for _, cp := range m.points {
		if cp.ID == id {
			return cp, nil
		}
	}
	return nil, nil
}

func (m *mockChokepointRepo) FindByNameAndZone(ctx context.Context, name, zone string) (*domain.ChokePoint, error) {
	for _, cp := range m.points {
		if cp.Name == name && cp.Zone == zone {
			return cp, nil
		}
	}
	return nil, nil
}

func (m *mockChokepointRepo) FindPeersInZone(ctx context.Context, zone, excludeID string) ([]*domain.ChokePoint, error) {
	var out []*domain.ChokePoint
	for _, cp := range m.points {
		if cp.Zone == zone && cp.ID != excludeID {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *mockChokepointRepo) TryReserveSlot(ctx context.Context, chokepointID, label string) (bool, error) {
	m.reserveCalls = append(m.reserveCalls, chokepointID+"/"+label)
	if m.failReservations > 0 {
		m.failReservations--
		return false, nil
	}
	for _, cp := range m.points {
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

func (m *mockChokepointRepo) Create(ctx context.Context, cp *domain.ChokePoint) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.points = append(m.points, cp)
	return nil
}

func slot(label string, max, current int) *domain.TimeSlot {
	return &domain.TimeSlot{Label: label, MaxOrders: max, CurrentOrders: current}
}

func testZonePoints() []*domain.ChokePoint {
	return []*domain.ChokePoint{
		{
			ID:   "cp-1",
			Zone: "South Dallas",
			Name: "DART Ledbetter Station",
			TimeSlots: []*domain.TimeSlot{
				slot("5-6 PM", 10, 2),
				slot("6-7 PM", 10, 1),
			},
		},
		{
			ID:   "cp-2",
			Zone: "South Dallas",
			Name: "Loop 12 & I-35",
			TimeSlots: []*domain.TimeSlot{
				slot("5-6 PM", 8, 3),
			},
		},
	}
}

func TestAssignPreferredSlot(t *testing.T) {
	repo := &mockChokepointRepo{points: testZonePoints()}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), repo.points[0], "6-7 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonPreferred, outcome.Reason)
	assert.Equal(t, "6-7 PM", outcome.TimeSlot)
	assert.Equal(t, "DART Ledbetter Station", outcome.PointName)
	assert.Equal(t, MsgPreferredAssigned, outcome.Message)
	assert.Equal(t, 2, repo.points[0].TimeSlots[1].CurrentOrders)
}

func TestAssignPreferredFullFallsToSamePoint(t *testing.T) {
	points := testZonePoints()
	points[0].TimeSlots[0].CurrentOrders = 10
	repo := &mockChokepointRepo{points: points}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), points[0], "5-6 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonAlternateSlot, outcome.Reason)
	assert.Equal(t, "6-7 PM", outcome.TimeSlot)
	assert.Equal(t, "DART Ledbetter Station", outcome.PointName)
	assert.Equal(t, MsgAlternateAssigned, outcome.Message)
}

func TestAssignUnknownLabelFallsToSamePoint(t *testing.T) {
	repo := &mockChokepointRepo{points: testZonePoints()}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), repo.points[0], "9-10 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonAlternateSlot, outcome.Reason)
	assert.Equal(t, "5-6 PM", outcome.TimeSlot, "same-point scan runs in declaration order")
}

func TestAssignEmptyLabelTakesFirstAvailable(t *testing.T) {
	repo := &mockChokepointRepo{points: testZonePoints()}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), repo.points[0], "")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonAlternateSlot, outcome.Reason)
	assert.Equal(t, "5-6 PM", outcome.TimeSlot)
}

func TestAssignPointFullRedirectsToPeer(t *testing.T) {
	points := testZonePoints()
	points[0].TimeSlots[0].CurrentOrders = 10
	points[0].TimeSlots[1].CurrentOrders = 10
	repo := &mockChokepointRepo{points: points}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), points[0], "5-6 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonRedirected, outcome.Reason)
	assert.Equal(t, "Loop 12 & I-35", outcome.PointName)
	assert.Equal(t, "5-6 PM", outcome.TimeSlot)
	assert.Equal(t, MsgRedirected, outcome.Message)
}

func TestAssignZoneExhausted(t *testing.T) {
	points := testZonePoints()
	points[0].TimeSlots[0].CurrentOrders = 10
	points[0].TimeSlots[1].CurrentOrders = 10
	points[1].TimeSlots[0].CurrentOrders = 8
	repo := &mockChokepointRepo{points: points}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), points[0], "5-6 PM")
	require.NoError(t, err)

	assert.False(t, outcome.Assigned)
	assert.Equal(t, MsgZoneExhausted, outcome.Message)
	assert.Equal(t, "South Dallas", outcome.Zone)
	require.Len(t, outcome.Alternatives, 1)
	assert.Equal(t, "Loop 12 & I-35", outcome.Alternatives[0].Name)

	// counters untouched on exhaustion
	assert.Equal(t, 10, points[0].TimeSlots[0].CurrentOrders)
	assert.Equal(t, 8, points[1].TimeSlots[0].CurrentOrders)
}

func TestAssignLostRaceMovesToNextCandidate(t *testing.T) {
	// The slot looks available in memory but the reservation loses, as
	// when a concurrent order takes the last spot between read and write.
	repo := &mockChokepointRepo{points: testZonePoints(), failReservations: 1}
	svc := NewAssignmentService(repo)

	outcome, err := svc.Assign(context.Background(), repo.points[0], "5-6 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonAlternateSlot, outcome.Reason)
	assert.Equal(t, "6-7 PM", outcome.TimeSlot)
	assert.Equal(t, []string{"cp-1/5-6 PM", "cp-1/6-7 PM"}, repo.reserveCalls)
}

func TestAssignSingleSlotPointNoSelfRetry(t *testing.T) {
	points := testZonePoints()
	repo := &mockChokepointRepo{points: points, failReservations: 1}
	svc := NewAssignmentService(repo)

	// cp-2 has only the preferred slot; losing it must go straight to
	// peers, not retry the same slot
	outcome, err := svc.Assign(context.Background(), points[1], "5-6 PM")
	require.NoError(t, err)

	assert.True(t, outcome.Assigned)
	assert.Equal(t, domain.ReasonRedirected, outcome.Reason)
	assert.Equal(t, "DART Ledbetter Station", outcome.PointName)
}
