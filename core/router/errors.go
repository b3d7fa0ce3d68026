package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

var (
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilSubrouter     = errors.New("nil subrouter")

	ErrNotFound         = statusError{status: http.StatusNotFound, msg: "not found"}
	ErrMethodNotAllowed = statusError{status: http.StatusMethodNotAllowed, msg: "method not allowed"}
	ErrNilResponse      = statusError{status: http.StatusInternalServerError, msg: "nil response"}
)

// statusError is a routing error carrying its HTTP status.
type statusError struct {
	status int
	msg    string
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.status }

type statusCoder interface {
	StatusCode() int
}

// defaultErrorHandler writes a plain-text error unless a response is already out.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(w, err.Error(), status)
}

// PanicError is passed to the error handler when a handler panics.
type PanicError interface {
	error
	Value() any
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
