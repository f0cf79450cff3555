package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
)

const placementKeyPrefix = "growth:quadrant:" // growth:quadrant:{user_id}

// CacheRepository keeps computed placements in redis so the dashboard does
// not recompute the fan-out on every poll. Placements are derived data; the
// TTL is the only invalidation.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &CacheRepository{client: client, ttl: ttl}
}

// Get returns the cached placement, or nil on a miss.
func (r *CacheRepository) Get(ctx context.Context, userID string) (*domain.Placement, error) {
	data, err := r.client.Get(ctx, placementKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get placement: %w", err)
	}

	var placement domain.Placement
	if err := json.Unmarshal([]byte(data), &placement); err != nil {
		return nil, fmt.Errorf("unmarshal placement: %w", err)
	}
	return &placement, nil
}

// Set caches a placement under the configured TTL.
func (r *CacheRepository) Set(ctx context.Context, userID string, placement *domain.Placement) error {
	data, err := json.Marshal(placement)
	if err != nil {
		return fmt.Errorf("marshal placement: %w", err)
	}

	if err := r.client.Set(ctx, placementKeyPrefix+userID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set placement: %w", err)
	}
	return nil
}
