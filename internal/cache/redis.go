// Package cache implements an optional redis read-through cache for
// resolved short links. Every failure degrades to a storage read; the
// cache is never load-bearing.
package cache

import (
	"PressLink-Backend/internal/config"
	"PressLink-Backend/internal/domain"
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "presslink:shortlink:"

// LinkCache caches short links by short id as JSON with a TTL. The cached
// click counter is allowed to be stale; resolution only needs the link id
// and article id.
type LinkCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// New connects to redis and returns the cache, or nil (disabled) when the
// server is unreachable.
func New(cfg *config.Redis, log *zap.Logger) *LinkCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Address,
		DB:   cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, resolve cache disabled", zap.String("address", cfg.Address), zap.Error(err))
		return nil
	}

	log.Info("resolve cache enabled", zap.String("address", cfg.Address), zap.Duration("ttl", cfg.TTL))

	return &LinkCache{
		rdb: rdb,
		ttl: cfg.TTL,
		log: log,
	}
}

// Get returns the cached link for a short id. A nil receiver, a miss and a
// redis error all report a miss.
func (c *LinkCache) Get(ctx context.Context, shortID string) (*domain.ShortLink, bool) {
	if c == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, keyPrefix+shortID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", zap.String("short_id", shortID), zap.Error(err))
		}
		return nil, false
	}

	var link domain.ShortLink
	if err := json.Unmarshal(payload, &link); err != nil {
		c.log.Warn("cache payload corrupt, evicting", zap.String("short_id", shortID), zap.Error(err))
		c.rdb.Del(ctx, keyPrefix+shortID)
		return nil, false
	}

	return &link, true
}

// Set stores the link under its short id. Errors are logged and dropped.
func (c *LinkCache) Set(ctx context.Context, link *domain.ShortLink) {
	if c == nil {
		return
	}

	payload, err := json.Marshal(link)
	if err != nil {
		c.log.Warn("failed to marshal link for cache", zap.String("short_id", link.ShortID), zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, keyPrefix+link.ShortID, payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("short_id", link.ShortID), zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *LinkCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
