package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cargo-route-service/internal/domain"
)

const routeKeyPrefix = "routes:"

// Redis-backed cache for computed route results.
//
// Keys are request digests produced by the API layer; values are JSON-encoded
// RouteResults with a TTL. A failed Redis round trip is reported to the
// caller, who is expected to log it and recompute (the cache is never a
// source of truth).
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

// Get fetches a cached route result, reporting whether the key was present.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (*domain.RouteResult, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	if key == "" {
		return nil, false, errors.New("route cache get: key must not be empty")
	}

	payload, err := c.Client.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache get %q: %w", key, err)
	}

	var result domain.RouteResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt entry behaves like a miss; the next Put overwrites it.
		return nil, false, fmt.Errorf("route cache get %q: decode: %w", key, err)
	}

	return &result, true, nil
}

// Put stores a route result under key with the configured TTL.
func (c *RedisRouteCache) Put(ctx context.Context, key string, result *domain.RouteResult) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	if key == "" {
		return errors.New("route cache put: key must not be empty")
	}

	if result == nil {
		return errors.New("route cache put: result must not be nil")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("route cache put %q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, routeKeyPrefix+key, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("route cache put %q: %w", key, err)
	}

	return nil
}
