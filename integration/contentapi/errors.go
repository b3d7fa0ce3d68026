package contentapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("contentapi: not found")
	ErrUnauthorized = errors.New("contentapi: unauthorized")
	ErrForbidden    = errors.New("contentapi: forbidden")
	ErrConflict     = errors.New("contentapi: conflict")
	ErrInvalid      = errors.New("contentapi: invalid request")
	ErrUnavailable  = errors.New("contentapi: unavailable")
	ErrMissingURL   = errors.New("contentapi: base URL is required")
)

// APIError is a non-2xx answer of the content API.
type APIError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contentapi: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("contentapi: %d %s", e.Status, e.Message)
}

// StatusCode lets the router's error handler answer with the API's status.
// Upstream failures become 502 so they are not confused with our own 500s.
func (e *APIError) StatusCode() int {
	if e.Status >= http.StatusInternalServerError {
		return http.StatusBadGateway
	}
	return e.Status
}

// Is matches the package sentinels by status.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrInvalid:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case ErrUnavailable:
		return retryableStatus(e.Status)
	}
	return false
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
