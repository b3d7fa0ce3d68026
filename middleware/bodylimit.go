package middleware

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/response"
)

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// MaxSize is the maximum allowed size in bytes (default: 1MB)
	MaxSize int64

	// ContentTypeLimit allows setting different limits per media type
	// Example: {"multipart/form-data": 64 * MB}
	ContentTypeLimit map[string]int64
}

// BodyLimit creates a body limit middleware with the given size limit.
func BodyLimit[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose Content-Length exceeds the limit
// and caps the body reader for the rest.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = MB
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			maxSize := cfg.MaxSize
			if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
				if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
					maxSize = limit
				}
			}

			if n, err := strconv.ParseInt(req.Header.Get("Content-Length"), 10, 64); err == nil && n > maxSize {
				return response.Error(response.ErrEntityTooLarge.
					WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %s", formatBytes(maxSize))).
					WithDetails(map[string]any{"limit": maxSize, "size": n}))
			}

			if req.Body != nil {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, maxSize)
			}
			return next(ctx)
		}
	}
}

// formatBytes formats bytes into a human-readable string
func formatBytes(bytes int64) string {
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
