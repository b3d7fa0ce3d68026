package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/cache"
)

func TestLRUCacheEviction(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.NewLRUCache[string, int](2, cache.WithEvictCallback[string, int](func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	_, ok := c.Get("a")
	require.True(t, ok)
	c.Put("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b was least recently used")
	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())

	c.Put("a", 10)
	v, _ := c.Get("a")
	assert.Equal(t, 10, v)

	v, ok = c.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	_, ok = c.Remove("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, evicted, "explicit removal is not an eviction")
}

func TestLRUCacheTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := cache.NewLRUCache[string, string](10,
		cache.WithTTL[string, string](time.Minute),
		cache.WithClock[string, string](clock),
	)
	c.Put("comic:a", "one")

	now = now.Add(59 * time.Second)
	_, ok := c.Get("comic:a")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("comic:a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestRemovePrefix(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](10)
	c.Put("comics:list", 1)
	c.Put("comics:get:a", 2)
	c.Put("posts:list", 3)

	assert.Equal(t, 2, cache.RemovePrefix(c, "comics:"))
	_, ok := c.Get("posts:list")
	assert.True(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestLRUCacheConcurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[int, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				c.Put(g*1000+i, i)
				c.Get(g*1000 + i)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 64, c.Len())
}

func TestNewLRUCacheMinimumCapacity(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[string, int](0)
	c.Put("a", 1)
	c.Put("b", 2)
	assert.Equal(t, 1, c.Len())
}
