package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"bucketlist/internal/middleware"
	"bucketlist/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Cache is a JSON cache-aside layer over Redis. A Cache with a nil client is a no-op.
type Cache struct {
	client *redis.Client
}

// New wraps client. client may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	ctx, span := observability.StartRedisSpan(ctx, "get")
	s, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.EndSpan(span, nil)
		return false, nil
	}
	observability.EndSpan(span, err)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, span := observability.StartRedisSpan(ctx, "set")
	err = c.client.Set(ctx, key, b, ttl).Err()
	observability.EndSpan(span, err)
	return err
}

// Aside tries Redis first. On a miss it calls fetch, which must populate dest,
// then stores dest with ttl. Redis failures degrade to calling fetch.
func (c *Cache) Aside(ctx context.Context, name, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := c.GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		middleware.CacheLookups.WithLabelValues(name, "error").Inc()
		middleware.Logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	case found:
		middleware.CacheLookups.WithLabelValues(name, "hit").Inc()
		return nil
	case c.Enabled():
		middleware.CacheLookups.WithLabelValues(name, "miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	// best-effort
	if err := c.SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// Invalidate deletes keys. Failures are logged and otherwise ignored.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed",
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}
