package dto

import "github.com/enroute-labs/enroute-api/internal/domain"

// EnrouteOrderRequest is the body of POST /api/orders/enroute. The target
// chokepoint may be given either by id or by (pointName, zone).
type EnrouteOrderRequest struct {
	UserID       string  `json:"userId" binding:"required"`
	ChokepointID string  `json:"chokepointId"`
	PointName    string  `json:"pointName"`
	Zone         string  `json:"zone"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	TimeSlot     string  `json:"timeSlot"`
}

// Validate validates the EnrouteOrderRequest
func (r *EnrouteOrderRequest) Validate() (bool, string) {
	if r.UserID == "" {
		return false, "User ID is required"
	}
	if r.ChokepointID == "" && (r.PointName == "" || r.Zone == "") {
		return false, "Either chokepointId or pointName and zone are required"
	}
	return true, ""
}

// OrderDetails is the confirmation payload for a placed enroute order
type OrderDetails struct {
	OrderID    string `json:"orderId"`
	Chokepoint string `json:"chokepoint"`
	Zone       string `json:"zone"`
	TimeSlot   string `json:"timeSlot"`
}

// EnrouteOrderResponse is returned on successful placement or reschedule
type EnrouteOrderResponse struct {
	Message      string       `json:"message"`
	OrderDetails OrderDetails `json:"orderDetails"`
}

// ExhaustedResponse is returned when no slot is available in the zone
type ExhaustedResponse struct {
	Message      string                `json:"message"`
	Alternatives []*domain.Alternative `json:"alternatives"`
}
