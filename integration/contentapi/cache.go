package contentapi

import (
	"context"
	"time"

	"github.com/dmitrymomot/panelhouse/core/cache"
)

// Cache stores raw GET response bodies. Implementations decide expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	DeletePrefix(ctx context.Context, prefix string) error
}

// MemoryCache is a process-local LRU cache.
type MemoryCache struct {
	lru *cache.LRUCache[string, []byte]
}

// NewMemoryCache keeps up to size bodies for ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRUCache(size, cache.WithTTL[string, []byte](ttl))}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) {
	c.lru.Put(key, value)
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	cache.RemovePrefix(c.lru, prefix)
	return nil
}

// Len reports the number of cached bodies.
func (c *MemoryCache) Len() int { return c.lru.Len() }
