package handler

import (
	"context"
	"net/http"
)

// Context is the contract every request context satisfies.
// The router's default implementation is router.Context; the web application
// embeds it into its own context type.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
