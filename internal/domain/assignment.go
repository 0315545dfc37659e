package domain

// AssignmentReason describes which step of the assignment cascade produced
// the reservation
type AssignmentReason string

const (
	// ReasonPreferred means the exact requested slot was reserved
	ReasonPreferred AssignmentReason = "preferred"
	// ReasonAlternateSlot means another slot at the requested chokepoint
	// was reserved
	ReasonAlternateSlot AssignmentReason = "alternate-slot-same-point"
	// ReasonRedirected means a slot at a peer chokepoint in the same zone
	// was reserved
	ReasonRedirected AssignmentReason = "redirected"
)

// Alternative describes a peer chokepoint offered to the user when the
// requested zone is exhausted
type Alternative struct {
	Name        string      `json:"name"`
	Zone        string      `json:"zone"`
	Coordinates Coordinates `json:"coordinates"`
	TimeSlots   []*TimeSlot `json:"availableTimeSlots"`
}

// AssignmentOutcome is the result of running the assignment cascade.
// Exhaustion (Assigned == false) is a normal outcome, not an error:
// Alternatives carries the full peer list so the caller can offer the
// user a different pickup point.
type AssignmentOutcome struct {
	Assigned     bool             `json:"assigned"`
	TimeSlot     string           `json:"timeSlot,omitempty"`
	PointID      string           `json:"-"`
	PointName    string           `json:"point,omitempty"`
	Zone         string           `json:"zone,omitempty"`
	Reason       AssignmentReason `json:"reason,omitempty"`
	Message      string           `json:"message"`
	Alternatives []*Alternative   `json:"alternatives,omitempty"`
}
