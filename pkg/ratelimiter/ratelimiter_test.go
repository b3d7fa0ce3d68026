package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.TokenBucket, *ratelimiter.MemoryStore, *clock) {
	t.Helper()
	clk := &clock{now: time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)}
	store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clk.Now), ratelimiter.WithIdleTimeout(time.Hour))
	tb, err := ratelimiter.NewTokenBucket(store, cfg, ratelimiter.WithNow(clk.Now))
	require.NoError(t, err)
	return tb, store, clk
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
		ok   bool
	}{
		{"per minute", ratelimiter.PerMinute(10), true},
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}, false},
		{"zero rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}, false},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
			}
		})
	}

	_, err := ratelimiter.NewTokenBucket(nil, ratelimiter.PerMinute(1))
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestTokenBucket(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tb, _, clk := newLimiter(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: 10 * time.Second})

	for i := range 3 {
		res, err := tb.Allow(ctx, "ip-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed(), "request %d", i)
		assert.Equal(t, 2-i, res.Remaining)
		assert.Zero(t, res.RetryAfter())
	}

	res, err := tb.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 10*time.Second, res.RetryAfter())
	assert.Equal(t, 3, res.Limit)

	other, err := tb.Allow(ctx, "ip-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys have separate buckets")

	clk.Advance(10 * time.Second)
	res, err = tb.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	clk.Advance(time.Hour)
	res, err = tb.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill stops at capacity")

	require.NoError(t, tb.Reset(ctx, "ip-1"))
	res, err = tb.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestAllowN(t *testing.T) {
	t.Parallel()
	tb, _, _ := newLimiter(t, ratelimiter.PerMinute(5))

	_, err := tb.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = tb.AllowN(context.Background(), "k", 6)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := tb.AllowN(context.Background(), "k", 4)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	res, err = tb.AllowN(context.Background(), "k", 2)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	res, err = tb.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "a denied request takes nothing")
}

func TestMemoryStoreDropsIdleBuckets(t *testing.T) {
	t.Parallel()
	tb, store, clk := newLimiter(t, ratelimiter.PerMinute(5))
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		_, err := tb.Allow(ctx, k)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())

	clk.Advance(2 * time.Hour)
	_, err := tb.Allow(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentAllow(t *testing.T) {
	t.Parallel()
	tb, _, _ := newLimiter(t, ratelimiter.PerMinute(50))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := tb.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
