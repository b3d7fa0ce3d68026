// Package handler defines the request-processing contracts shared by the router,
// the middleware and every page of the application: a generic request context,
// a deferred response renderer and the handler/middleware function shapes.
package handler

import "net/http"

// Response renders an HTTP response. It sets headers, the status code and writes
// the body. A returned error is passed to the router's error handler.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request using the application context type C.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders an error that occurred while handling a request.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a handler with cross-cutting behaviour.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// FromHTTP adapts a standard http.Handler, such as promhttp or a file server,
// into a HandlerFunc.
func FromHTTP[C Context](h http.Handler) HandlerFunc[C] {
	return func(ctx C) Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			h.ServeHTTP(w, r)
			return nil
		}
	}
}
