// Package response builds handler.Response values: plain text, HTML, JSON,
// templ components, bytes, redirects and structured HTTP errors.
package response

import (
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// Render executes resp against the context's writer, falling back to a plain
// 500 when the response itself fails.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// String creates a text/plain response with 200 OK.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with the given status.
func StringWithStatus(content string, status int) handler.Response {
	return Bytes([]byte(content), "text/plain; charset=utf-8", status)
}

// HTML creates a text/html response with 200 OK.
func HTML(content string) handler.Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with the given status.
func HTMLWithStatus(content string, status int) handler.Response {
	return Bytes([]byte(content), "text/html; charset=utf-8", status)
}

// Bytes writes content with the given content type and status.
// A zero status means 200 OK.
func Bytes(content []byte, contentType string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) == 0 {
			return nil
		}
		_, err := w.Write(content)
		return err
	}
}

// NoContent creates a 204 response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status writes only a status code.
func Status(code int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		return nil
	}
}

// Error propagates err to the router's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}

// WithHeader decorates resp with a response header.
func WithHeader(resp handler.Response, key, value string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(key, value)
		return resp(w, r)
	}
}
