package binder

import "net/http"

// Query binds URL query parameters using `query` tags.
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), nil, ErrFailedToParseQuery)
	}
}
