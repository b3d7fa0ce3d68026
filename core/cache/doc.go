// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	c := cache.NewLRUCache[string, []byte](512, cache.WithTTL[string, []byte](time.Minute))
//	c.Put("comics:list", body)
//	if body, ok := c.Get("comics:list"); ok {
//		...
//	}
//	c.RemovePrefix("comics:")
package cache
