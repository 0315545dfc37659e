package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/pkg/logger"
	"github.com/enroute-labs/enroute-api/pkg/redis"
)

const zoneCacheKeyPrefix = "chokepoints:zone:"

// CachedChokePointRepository decorates a ChokePointRepository with a Redis
// cache on the zone listing, which is the hot read path. Writes go straight
// through and invalidate the affected zone so stale slot counters never
// outlive a reservation by more than the invalidation round trip.
type CachedChokePointRepository struct {
	inner ChokePointRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedChokePointRepository creates a caching decorator around inner
func NewCachedChokePointRepository(inner ChokePointRepository, cache *redis.Client, ttl time.Duration) *CachedChokePointRepository {
	return &CachedChokePointRepository{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func zoneCacheKey(zone string) string {
	return zoneCacheKeyPrefix + strings.ToLower(zone)
}

// FindAll delegates to the inner repository
func (r *CachedChokePointRepository) FindAll(ctx context.Context) ([]*domain.ChokePoint, error) {
	return r.inner.FindAll(ctx)
}

// FindByZone returns the cached zone listing when present, falling back to
// the inner repository and populating the cache on miss. Cache failures
// degrade to the inner repository rather than failing the request.
func (r *CachedChokePointRepository) FindByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error) {
	key := zoneCacheKey(zone)

	cached, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var points []*domain.ChokePoint
		if jsonErr := json.Unmarshal([]byte(cached), &points); jsonErr == nil {
			return points, nil
		}
		// corrupt entry, drop it and fall through
		r.cache.Del(ctx, key)
	} else if err != goredis.Nil {
		logger.Get().Warn("chokepoint cache read failed",
			zap.String("key", key),
			zap.Error(err))
	}

	points, err := r.inner.FindByZone(ctx, zone)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(points); jsonErr == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			logger.Get().Warn("chokepoint cache write failed",
				zap.String("key", key),
				zap.Error(setErr))
		}
	}
	return points, nil
}

// FindByID delegates to the inner repository
func (r *CachedChokePointRepository) FindByID(ctx context.Context, id string) (*domain.ChokePoint, error) {
	return r.inner.FindByID(ctx, id)
}

// FindByNameAndZone delegates to the inner repository
func (r *CachedChokePointRepository) FindByNameAndZone(ctx context.Context, name, zone string) (*domain.ChokePoint, error) {
	return r.inner.FindByNameAndZone(ctx, name, zone)
}

// FindPeersInZone delegates to the inner repository
func (r *CachedChokePointRepository) FindPeersInZone(ctx context.Context, zone, excludeID string) ([]*domain.ChokePoint, error) {
	return r.inner.FindPeersInZone(ctx, zone, excludeID)
}

// TryReserveSlot delegates to the inner repository and invalidates the
// zone listing when the reservation lands, since the slot counters it
// carries just changed
func (r *CachedChokePointRepository) TryReserveSlot(ctx context.Context, chokepointID, label string) (bool, error) {
	reserved, err := r.inner.TryReserveSlot(ctx, chokepointID, label)
	if err != nil || !reserved {
		return reserved, err
	}

	cp, findErr := r.inner.FindByID(ctx, chokepointID)
	if findErr != nil || cp == nil {
		logger.Get().Warn("chokepoint cache invalidation skipped",
			zap.String("chokepoint_id", chokepointID),
			zap.Error(findErr))
		return reserved, nil
	}
	if delErr := r.cache.Del(ctx, zoneCacheKey(cp.Zone)).Err(); delErr != nil {
		logger.Get().Warn("chokepoint cache invalidation failed",
			zap.String("zone", cp.Zone),
			zap.Error(delErr))
	}
	return reserved, nil
}

// Create delegates to the inner repository and invalidates the zone listing
func (r *CachedChokePointRepository) Create(ctx context.Context, cp *domain.ChokePoint) error {
	if err := r.inner.Create(ctx, cp); err != nil {
		return err
	}
	if delErr := r.cache.Del(ctx, zoneCacheKey(cp.Zone)).Err(); delErr != nil {
		logger.Get().Warn("chokepoint cache invalidation failed",
			zap.String("zone", cp.Zone),
			zap.Error(delErr))
	}
	return nil
}
