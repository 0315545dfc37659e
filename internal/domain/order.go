package domain

import "time"

// EnrouteOrder binds a user to an assigned chokepoint slot. It is written
// once after a successful assignment; the only later mutation is the
// reschedule bookkeeping (point, slot and counter), capped at one
// reschedule per order.
type EnrouteOrder struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	PointName       string      `json:"pointName"`
	Zone            string      `json:"zone"`
	Coordinates     Coordinates `json:"coordinates"`
	TimeSlot        string      `json:"timeSlot"`
	RescheduleCount int         `json:"rescheduleCount"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// MaxReschedules is the per-order reschedule cap
const MaxReschedules = 1

// CanReschedule reports whether the order may still be rescheduled
func (o *EnrouteOrder) CanReschedule() bool {
	return o.RescheduleCount < MaxReschedules
}
