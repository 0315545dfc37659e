package dto

// DetectZoneRequest is the body of POST /api/location/detect-zone.
// Pointers distinguish missing coordinates from zero values.
type DetectZoneRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Validate validates the DetectZoneRequest
func (r *DetectZoneRequest) Validate() (bool, string) {
	if r.Lat == nil || r.Lng == nil {
		return false, "Invalid coordinates"
	}
	return true, ""
}

// ZoneResponse is the zone lookup payload
type ZoneResponse struct {
	Zone string `json:"zone"`
}
