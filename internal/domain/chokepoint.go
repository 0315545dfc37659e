package domain

import "time"

// TimeSlot is a labeled, capacity-bounded reservation bucket belonging to
// one chokepoint. The label is an opaque token ("5-6 PM"); it is never
// parsed as a time range. CurrentOrders only ever increases.
type TimeSlot struct {
	ID            string `json:"-"`
	Label         string `json:"time"`
	MaxOrders     int    `json:"maxOrders"`
	CurrentOrders int    `json:"currentOrders"`
	SortOrder     int    `json:"-"`
}

// Available reports whether the slot can accept another order
func (s *TimeSlot) Available() bool {
	return s.CurrentOrders < s.MaxOrders
}

// ChokePoint is a physical pickup location with time-slot capacity.
// A chokepoint belongs to exactly one zone; zone membership does not
// change after creation.
type ChokePoint struct {
	ID           string      `json:"id"`
	Zone         string      `json:"zone"`
	Name         string      `json:"name"`
	Coordinates  Coordinates `json:"coordinates"`
	TrafficScore int         `json:"trafficScore"`
	TimeSlots    []*TimeSlot `json:"availableTimeSlots"`
	CreatedAt    time.Time   `json:"-"`
}

// SlotByLabel returns the slot whose label exactly equals label, or nil.
// An empty label never matches: the reschedule flow passes "" to mean
// "pick any slot", which must not accidentally hit a real slot.
func (c *ChokePoint) SlotByLabel(label string) *TimeSlot {
	if label == "" {
		return nil
	}
	for _, s := range c.TimeSlots {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// FirstAvailableSlot returns the first slot with spare capacity in
// declaration order, or nil if the chokepoint is fully booked
func (c *ChokePoint) FirstAvailableSlot() *TimeSlot {
	for _, s := range c.TimeSlots {
		if s.Available() {
			return s
		}
	}
	return nil
}
