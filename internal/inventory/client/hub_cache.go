package client

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/pkg/logger"
)

// CachedHubDirectory caches hub metadata lookups in Redis. Only hub
// display data is cached; stock quantities never pass through here.
type CachedHubDirectory struct {
	inner domain.HubDirectory
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedHubDirectory wraps a hub directory with a Redis cache. A nil
// Redis client disables caching.
func NewCachedHubDirectory(inner domain.HubDirectory, redisClient *redis.Client, ttl time.Duration) *CachedHubDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedHubDirectory{inner: inner, redis: redisClient, ttl: ttl}
}

func cacheKey(hubID string) string {
	return "hub:" + hubID
}

// Get fetches hub metadata, preferring the cache
func (c *CachedHubDirectory) Get(ctx context.Context, hubID string) (*domain.Hub, error) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, cacheKey(hubID)).Bytes()
		if err == nil {
			var hub domain.Hub
			if err := json.Unmarshal(data, &hub); err == nil {
				return &hub, nil
			}
		}
	}

	hub, err := c.inner.Get(ctx, hubID)
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		data, err := json.Marshal(hub)
		if err == nil {
			if err := c.redis.Set(ctx, cacheKey(hubID), data, c.ttl).Err(); err != nil {
				logger.Logger.Warn().
					Err(err).
					Str("hub_id", hubID).
					Msg("Failed to cache hub metadata")
			}
		}
	}

	return hub, nil
}

// Exists reports whether the hub id is known, using the cached lookup
func (c *CachedHubDirectory) Exists(ctx context.Context, hubID string) (bool, error) {
	_, err := c.Get(ctx, hubID)
	if errors.Is(err, ErrHubNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ domain.HubDirectory = (*CachedHubDirectory)(nil)
