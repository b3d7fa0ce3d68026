package router

import (
	"context"
	"net/http"
	"time"
)

// Context is the default request context. It delegates context.Context methods
// to the request's context.
type Context struct {
	w http.ResponseWriter
	r *http.Request
}

// NewContext creates a Context for the given writer and request.
// Application context factories typically embed the result.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

func (c *Context) Deadline() (deadline time.Time, ok bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}                   { return c.r.Context().Done() }
func (c *Context) Err() error                              { return c.r.Context().Err() }
func (c *Context) Value(key any) any                       { return c.r.Context().Value(key) }

// Request returns the current request. It reflects values stored with SetValue.
func (c *Context) Request() *http.Request { return c.r }

// ResponseWriter returns the response writer.
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns a path parameter. The trailing wildcard is available as "*".
func (c *Context) Param(key string) string {
	if key == "*" {
		key = wildcardParam
	}
	return c.r.PathValue(key)
}

// SetValue stores a request-scoped value visible through Value and the
// request's context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
