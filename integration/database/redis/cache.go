package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/panelhouse/core/logger"
)

// Cache is a byte cache shared between application instances.
type Cache struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	scanBatch int64
	logger    *slog.Logger
}

type CacheOption func(*Cache)

func WithKeyPrefix(prefix string) CacheOption {
	return func(c *Cache) { c.prefix = prefix }
}

// WithTTL sets the expiry of stored values. Zero keeps them until evicted.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

func WithScanBatchSize(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.scanBatch = int64(n)
		}
	}
}

func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCache(client redis.UniversalClient, opts ...CacheOption) *Cache {
	c := &Cache{
		client:    client,
		ttl:       30 * time.Second,
		scanBatch: 500,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. Redis failures count as misses.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false
	case err != nil:
		c.logger.WarnContext(ctx, "redis cache read failed",
			logger.Component("redis"), slog.String("key", key), logger.Error(err))
		return nil, false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if err := c.client.Set(ctx, c.prefix+key, val, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "redis cache write failed",
			logger.Component("redis"), slog.String("key", key), logger.Error(err))
	}
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := escapeGlob(c.prefix+prefix) + "*"
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, c.scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// escapeGlob quotes the SCAN MATCH metacharacters.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
