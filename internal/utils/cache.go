package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error inspection
	"time"          // Time durations

	"github.com/redis/go-redis/v9"   // Redis client
	"github.com/sirupsen/logrus"     // Logging
	"golang.org/x/sync/singleflight" // Coalesces concurrent cache misses
)

// Cache keys
const (
	StatsCacheKey    = "admin:stats"     // Dashboard figures
	RequestKeyPrefix = "ledger:request:" // Idempotency keys of money writes
	StatsCacheTTL    = 60 * time.Second
	RequestKeyTTL    = 24 * time.Hour
)

// Cache is a Redis-backed JSON cache. A nil client disables caching:
// reads always miss and request keys are always granted.
type Cache struct {
	rdb   *redis.Client
	group singleflight.Group
}

// NewCache wraps rdb, which may be nil
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool { return c != nil && c.rdb != nil }

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores a value in Redis with a specified TTL
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Delete removes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// ClaimKey atomically claims key for ttl; false means it was already claimed
func (c *Cache) ClaimKey(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if !c.Enabled() {
		return true, nil
	}
	return c.rdb.SetNX(ctx, key, 1, ttl).Result()
}

// Remember returns the cached value under key, or calls load once per key across
// concurrent callers and caches its result. The bool reports a cache hit.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, bool, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	} else if found {
		return cached, true, nil
	}

	// Waiters share this load, so it ignores the first caller's cancellation
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(key, func() (any, error) {
		fresh, err := load(shared)
		if err != nil {
			return fresh, err
		}
		if err := c.Set(shared, key, fresh, ttl); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
		}
		return fresh, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}
