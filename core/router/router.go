// Package router provides a generic HTTP router built on the pattern matching of
// net/http. It adds typed request contexts, middleware chaining, inline groups,
// prefixed sub-routes, panic recovery and a pluggable error handler.
//
// Patterns use the net/http syntax with a few conveniences:
//
//	r.Get("/", home)                    // exact root, registered as "/{$}"
//	r.Get("/comics/{slug}", comic)      // path parameter, ctx.Param("slug")
//	r.Get("/static/*", files)           // trailing wildcard, ctx.Param("*")
package router

import (
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// Router is the routing interface used by the application.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for the listed methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
	Route(prefix string, fn func(r Router[C])) Router[C]

	Routes() []Route
}

// Route describes a registered route.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. A context factory is required unless C is *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
