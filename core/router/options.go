package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// Option configures a router during creation.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets the error handler used for handler errors, panics,
// unknown routes and disallowed methods.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.shared.errorHandler = h
		}
	}
}

// WithMiddleware adds router-wide middleware.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets the function creating a C for every request.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		m.shared.newContext = f
	}
}

// WithLogger sets the logger used for panics that cannot be rendered.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.shared.logger = logger
		}
	}
}
