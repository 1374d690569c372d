package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
)

// RedisCache shares search outcomes between server instances. Redis
// failures degrade to computing the outcome directly; they are logged, not
// returned.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	prefix  string
	metrics *obs.Metrics
	logger  *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, prefix string, m *obs.Metrics, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, ttl: ttl, prefix: prefix, metrics: m, logger: logger}
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, fn func(ctx context.Context) (Outcome, error)) (Outcome, error) {
	if c.client == nil {
		return fn(ctx)
	}
	full := c.key(key)

	b, err := c.client.Get(ctx, full).Bytes()
	switch {
	case err == nil:
		var out Outcome
		if err := json.Unmarshal(b, &out); err == nil {
			if c.metrics != nil {
				c.metrics.IncCacheHits()
			}
			return out, nil
		}
		c.logger.Warn("discarding undecodable cache entry", "key", full)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("redis get failed", "key", full, "error", err)
	}

	out, err := fn(ctx)
	if err != nil {
		return Outcome{}, err
	}

	payload, err := json.Marshal(out)
	if err != nil {
		c.logger.Warn("encode cache entry failed", "key", full, "error", err)
		return out, nil
	}
	if err := c.client.Set(ctx, full, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", "key", full, "error", err)
	}
	return out, nil
}
