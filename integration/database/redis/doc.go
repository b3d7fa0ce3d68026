// Package redis connects to Redis and exposes it as a shared response cache.
//
// Connect parses the URL, retries the initial ping with exponential backoff and
// returns a ready *redis.Client. Healthcheck wraps a ping for readiness probes.
//
// Cache stores byte values under a key prefix with a TTL and satisfies the
// content API client's cache contract, so several application instances can
// share cached listings:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	cache := redis.NewCache(client, redis.WithKeyPrefix("ph:content:"), redis.WithTTL(cfg.CacheTTL))
//	api, err := contentapi.New(apiCfg, contentapi.WithCache(cache))
//
// Cache errors are logged and treated as misses. DeletePrefix walks matching
// keys with SCAN in ScanBatchSize steps and never blocks the server with KEYS.
package redis
