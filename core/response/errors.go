package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// HTTPError is an error rendered as an HTTP response.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

func (e HTTPError) Error() string { return e.Message }

// StatusCode lets the router's default error handler pick up the status.
func (e HTTPError) StatusCode() int { return e.Status }

// WithMessage returns a copy with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy with the given details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy recording err as the cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

var (
	ErrBadRequest           = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized         = newHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden            = newHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound             = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed     = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict             = newHTTPError(http.StatusConflict, "conflict")
	ErrEntityTooLarge       = newHTTPError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrUnsupportedMediaType = newHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity  = newHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrTooManyRequests      = newHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError  = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrBadGateway           = newHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable   = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout       = newHTTPError(http.StatusGatewayTimeout, "gateway_timeout")
)

var httpErrorsByStatus = map[int]HTTPError{
	http.StatusBadRequest:            ErrBadRequest,
	http.StatusUnauthorized:          ErrUnauthorized,
	http.StatusForbidden:             ErrForbidden,
	http.StatusNotFound:              ErrNotFound,
	http.StatusMethodNotAllowed:      ErrMethodNotAllowed,
	http.StatusConflict:              ErrConflict,
	http.StatusRequestEntityTooLarge: ErrEntityTooLarge,
	http.StatusUnsupportedMediaType:  ErrUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrUnprocessableEntity,
	http.StatusTooManyRequests:       ErrTooManyRequests,
	http.StatusInternalServerError:   ErrInternalServerError,
	http.StatusBadGateway:            ErrBadGateway,
	http.StatusServiceUnavailable:    ErrServiceUnavailable,
	http.StatusGatewayTimeout:        ErrGatewayTimeout,
}

type statusCoder interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError. Errors exposing
// StatusCode() keep their status; everything else becomes a 500.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
		if base.Message == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}

// JSONErrorHandler renders errors as JSON bodies.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
