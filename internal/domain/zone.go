package domain

import "math"

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKM returns the haversine distance to other in kilometers
func (c Coordinates) DistanceKM(other Coordinates) float64 {
	const earthRadius = 6371.0

	lat1 := c.Lat * math.Pi / 180
	lng1 := c.Lng * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	lng2 := other.Lng * math.Pi / 180

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bounds is a rectangular coordinate bound
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether the point lies inside the bounds.
// All four edges are inclusive.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// Zone is a static named geographic rectangle used to group chokepoints.
// The zone table is fixed at process start; resolution walks it in
// declaration order and the first match wins, so overlapping bounds are
// resolved by position in the list.
type Zone struct {
	Name   string `json:"name"`
	Bounds Bounds `json:"bounds"`
}

// DefaultZones returns the built-in delivery zone table
func DefaultZones() []Zone {
	return []Zone{
		{
			Name: "South Dallas",
			Bounds: Bounds{
				MinLat: 32.67,
				MaxLat: 32.72,
				MinLng: -96.85,
				MaxLng: -96.75,
			},
		},
		{
			Name: "North Dallas",
			Bounds: Bounds{
				MinLat: 32.86,
				MaxLat: 32.95,
				MinLng: -96.82,
				MaxLng: -96.70,
			},
		},
		{
			Name: "Oak Cliff",
			Bounds: Bounds{
				MinLat: 32.70,
				MaxLat: 32.76,
				MinLng: -96.90,
				MaxLng: -96.85,
			},
		},
	}
}
