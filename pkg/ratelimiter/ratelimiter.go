package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config sizes a token bucket.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

// PerMinute allows n requests a minute with bursts of up to n.
func PerMinute(n int) Config {
	return Config{Capacity: n, RefillRate: n, RefillInterval: time.Minute}
}

// Validate reports configurations that cannot refill.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidConfig)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive", ErrInvalidConfig)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time

	now time.Time
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long a denied caller should wait. Zero when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(r.now), 0)
}

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens takes tokens from key's bucket after refilling it. A negative
	// remaining count means the bucket was already empty; nothing is taken then.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// TokenBucket is a Limiter backed by a Store.
type TokenBucket struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// Option configures a TokenBucket.
type Option func(*TokenBucket)

// WithNow replaces time.Now when computing retry delays.
func WithNow(now func() time.Time) Option {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket validates cfg and returns a limiter.
func NewTokenBucket(store Store, cfg Config, opts ...Option) (*TokenBucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tb := &TokenBucket{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(tb)
	}
	return tb, nil
}

func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	return tb.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens at once.
func (tb *TokenBucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 || n > tb.cfg.Capacity {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}
	remaining, resetAt, err := tb.store.ConsumeTokens(ctx, key, n, tb.cfg)
	if err != nil {
		return nil, err
	}
	return &Result{Limit: tb.cfg.Capacity, Remaining: remaining, ResetAt: resetAt, now: tb.now()}, nil
}

// Reset forgets key's bucket.
func (tb *TokenBucket) Reset(ctx context.Context, key string) error {
	return tb.store.Reset(ctx, key)
}
