package middleware

import (
	"errors"
	"net/http"
)

type statusCoder interface {
	StatusCode() int
}

// errorStatus is the status the router's error handler will write for err.
func errorStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
