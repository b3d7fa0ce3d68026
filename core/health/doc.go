// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*router.Context])
//	r.Get("/ready", health.Readiness[*router.Context](log,
//		health.Check{Name: "content_api", Fn: api.Ping},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
package health
