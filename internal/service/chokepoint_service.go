package service

import (
	"context"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/repository"
)

// ChokepointService serves chokepoint listings
type ChokepointService struct {
	chokepoints repository.ChokePointRepository
}

// NewChokepointService creates a ChokepointService
func NewChokepointService(chokepoints repository.ChokePointRepository) *ChokepointService {
	return &ChokepointService{chokepoints: chokepoints}
}

// ListByZone returns the chokepoints serving a zone, with their live slot
// tables. The match is a case-insensitive substring so "south" finds
// "South Dallas". An empty list is a valid answer.
func (s *ChokepointService) ListByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error) {
	return s.chokepoints.FindByZone(ctx, zone)
}
