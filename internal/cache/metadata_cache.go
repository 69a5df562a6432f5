package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"lexihub/internal/config"

	"github.com/redis/go-redis/v9"
)

// MetadataCache is a small JSON cache in front of the dashboard aggregation
// queries. When Redis is not configured every call is a miss and the service
// keeps working against the database directly.
type MetadataCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewMetadataCache(cfg *config.Config, logger *slog.Logger) *MetadataCache {
	cache := &MetadataCache{ttl: cfg.CacheTTL, logger: logger}
	if cfg.RedisURL == "" {
		logger.Info("redis not configured, metadata cache disabled")
		return cache
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid redis url, metadata cache disabled", "error", err)
		return cache
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	cache.client = redis.NewClient(opts)
	return cache
}

// Get unmarshals the cached value for key into dest and reports whether it
// was found.
func (c *MetadataCache) Get(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring", "key", key, "error", err)
		return false
	}
	return true
}

// Set stores val under key for the configured TTL. Failures are logged and
// swallowed.
func (c *MetadataCache) Set(ctx context.Context, key string, val any) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops a key, used after writes that change the dashboard.
func (c *MetadataCache) Invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
