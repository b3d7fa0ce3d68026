// Package contentapi is the client of the external REST content API that owns
// all comics, posts and users.
//
// GET requests are retried with exponential backoff on network errors, 429 and
// 5xx responses, coalesced with singleflight when identical requests are in
// flight, and cached when a Cache is configured and the call carries no access
// token. Mutations invalidate cached entries of the affected collection.
//
//	client, err := contentapi.New(cfg, contentapi.WithCache(contentapi.NewMemoryCache(512, time.Minute)))
//	comic, err := client.GetComic(ctx, "night-shift")
//	if errors.Is(err, contentapi.ErrNotFound) { ... }
//
// The access token of the signed-in user travels in the context:
//
//	ctx = contentapi.WithToken(ctx, token)
//	err = client.DeleteComic(ctx, id)
package contentapi
