package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/integration/storage/s3"
	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/theme"
	"github.com/dmitrymomot/panelhouse/web/views"
)

// httpError maps application errors onto HTTP errors with messages fit for
// visitors. Server side failures never expose their cause.
func httpError(err error) response.HTTPError {
	var he response.HTTPError
	switch {
	case errors.As(err, &he):
	case errors.Is(err, contentapi.ErrNotFound):
		he = response.ErrNotFound.WithMessage("We couldn't find that page.")
	case errors.Is(err, contentapi.ErrUnauthorized):
		he = response.ErrUnauthorized.WithMessage("Please sign in to continue.")
	case errors.Is(err, contentapi.ErrForbidden):
		he = response.ErrForbidden.WithMessage("You don't have access to this page.")
	case errors.Is(err, contentapi.ErrConflict):
		he = response.ErrConflict.WithMessage(apiMessage(err, "This conflicts with existing content."))
	case errors.Is(err, contentapi.ErrInvalid):
		he = response.ErrUnprocessableEntity.WithMessage(apiMessage(err, "The request was rejected."))
	case errors.Is(err, contentapi.ErrUnavailable):
		he = response.ErrBadGateway.WithMessage("The content service is unavailable. Please try again shortly.")
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		he = response.ErrUnsupportedMediaType
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParseQuery), errors.Is(err, device.ErrInvalidProbe),
		errors.Is(err, theme.ErrInvalidPreference):
		he = response.ErrBadRequest.WithMessage(err.Error())
	case errors.Is(err, s3.ErrFileTooLarge):
		he = response.ErrEntityTooLarge.WithMessage("The file is too large.")
	case errors.Is(err, s3.ErrEmptyFile), errors.Is(err, s3.ErrUnsupportedType), errors.Is(err, s3.ErrInvalidPDF):
		he = response.ErrUnprocessableEntity.WithMessage(err.Error())
	default:
		he = response.AsHTTPError(err)
	}
	if he.Status >= http.StatusInternalServerError {
		he.Details = nil
		if he.Status == http.StatusInternalServerError {
			he.Message = "Something went wrong on our side."
		}
	}
	return he
}

// handleError renders JSON for /api routes and the error page elsewhere.
// The logging middleware records the error itself.
func (a *App) handleError(ctx *router.Context, err error) {
	he := httpError(err)
	r := ctx.Request()
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.Contains(r.Header.Get("Accept"), "application/json") {
		response.Render(ctx, response.JSONWithStatus(he, he.Status))
		return
	}
	p := a.page(ctx, http.StatusText(he.Status))
	response.Render(ctx, response.TemplWithStatus(views.ErrorPage(p, he.Status, he.Message), he.Status))
}
