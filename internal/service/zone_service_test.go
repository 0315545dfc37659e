package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enroute-labs/enroute-api/internal/domain"
)

func TestResolveZone(t *testing.T) {
	svc := NewZoneService(&mockChokepointRepo{})

	tests := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{"south dallas interior", 32.6889, -96.8207, "South Dallas"},
		{"north dallas interior", 32.90, -96.75, "North Dallas"},
		{"oak cliff interior", 32.74, -96.88, "Oak Cliff"},
		{"south dallas min corner", 32.67, -96.85, "South Dallas"},
		{"south dallas max corner", 32.72, -96.75, "South Dallas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone, err := svc.ResolveZone(tt.lat, tt.lng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, zone)
		})
	}
}

func TestResolveZoneOutsideAllBounds(t *testing.T) {
	svc := NewZoneService(&mockChokepointRepo{})

	_, err := svc.ResolveZone(40.7128, -74.0060)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestResolveZoneOverlapFirstMatchWins(t *testing.T) {
	// South Dallas and Oak Cliff overlap on lat 32.70-32.72, lng -96.85.
	// South Dallas comes first in the zone table so it wins.
	svc := NewZoneService(&mockChokepointRepo{})

	zone, err := svc.ResolveZone(32.71, -96.85)
	require.NoError(t, err)
	assert.Equal(t, "South Dallas", zone)
}

func TestNearestChokepoint(t *testing.T) {
	repo := &mockChokepointRepo{points: []*domain.ChokePoint{
		{ID: "cp-1", Name: "Far", Coordinates: domain.Coordinates{Lat: 32.95, Lng: -96.70}},
		{ID: "cp-2", Name: "Near", Coordinates: domain.Coordinates{Lat: 32.68, Lng: -96.82}},
	}}
	svc := NewZoneService(repo)

	cp, err := svc.NearestChokepoint(context.Background(), 32.6766, -96.8236)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "Near", cp.Name)
}

func TestNearestChokepointEmpty(t *testing.T) {
	svc := NewZoneService(&mockChokepointRepo{})

	cp, err := svc.NearestChokepoint(context.Background(), 32.68, -96.82)
	require.NoError(t, err)
	assert.Nil(t, cp)
}
