package service

import (
	"context"
	"errors"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/repository"
)

// ErrZoneNotFound is returned when no zone contains the coordinates
var ErrZoneNotFound = errors.New("zone not found")

// ZoneService resolves delivery zones from coordinates
type ZoneService struct {
	zones      []domain.Zone
	chokepoint repository.ChokePointRepository
}

// NewZoneService creates a ZoneService over the built-in zone table
func NewZoneService(chokepoint repository.ChokePointRepository) *ZoneService {
	return &ZoneService{
		zones:      domain.DefaultZones(),
		chokepoint: chokepoint,
	}
}

// ResolveZone returns the name of the first zone whose bounds contain the
// point. Checks run in zone table order; edges are inclusive.
func (s *ZoneService) ResolveZone(lat, lng float64) (string, error) {
	for _, z := range s.zones {
		if z.Bounds.Contains(lat, lng) {
			return z.Name, nil
		}
	}
	return "", ErrZoneNotFound
}

// Zones returns the zone table
func (s *ZoneService) Zones() []domain.Zone {
	return s.zones
}

// NearestChokepoint returns the chokepoint closest to the point by
// haversine distance, across all zones. Returns nil when none exist.
func (s *ZoneService) NearestChokepoint(ctx context.Context, lat, lng float64) (*domain.ChokePoint, error) {
	points, err := s.chokepoint.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	from := domain.Coordinates{Lat: lat, Lng: lng}
	var nearest *domain.ChokePoint
	var best float64

	for _, cp := range points {
		d := from.DistanceKM(cp.Coordinates)
		if nearest == nil || d < best {
			nearest = cp
			best = d
		}
	}
	return nearest, nil
}
