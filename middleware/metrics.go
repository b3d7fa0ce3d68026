package middleware

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// HTTPObserver records served requests. *metrics.Metrics implements it.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics records method, route pattern, status and duration of every request.
func Metrics[C handler.Context](obs HTTPObserver) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
				var err error
				if resp != nil {
					err = resp(wrapped, r)
				}
				status := wrapped.statusCode
				if err != nil && !wrapped.headerWritten {
					status = errorStatus(err)
				}
				obs.ObserveHTTP(r.Method, r.Pattern, status, time.Since(start))
				return err
			}
		}
	}
}
