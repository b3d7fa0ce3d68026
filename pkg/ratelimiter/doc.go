// Package ratelimiter implements token bucket rate limiting.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request consumes one token; a request that finds the
// bucket empty is denied until the next refill.
//
//	limiter, err := ratelimiter.NewTokenBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	res, err := limiter.Allow(ctx, clientIP)
//	if !res.Allowed() {
//		// retry after res.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process memory and drops idle buckets while it
// serves requests, so it needs no background goroutine.
package ratelimiter
