package web

import (
	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

// formatResult is the answer of the format endpoint.
type formatResult struct {
	Selection format.Selection `json:"selection"`
	Profile   device.Profile   `json:"profile"`
}

// selectFormat takes the browser's probe, remembers it in the probe cookie
// and answers with the selection for the posted viewport.
func (a *App) selectFormat(ctx *router.Context) handler.Response {
	var probe device.Probe
	if err := binder.JSON()(ctx.Request(), &probe); err != nil {
		return response.Error(err)
	}
	if err := probe.Validate(); err != nil {
		return response.Error(err)
	}

	c, err := a.visibleComic(ctx)
	if err != nil {
		return response.Error(err)
	}

	if err := a.cookies.Set(ctx.ResponseWriter(), device.ProbeCookie, probe.String(),
		cookie.WithMaxAge(a.cfg.ProbeCookieDays*24*60*60),
		cookie.WithHTTPOnly(false),
	); err != nil {
		a.logger.WarnContext(ctx, "probe cookie not stored", logger.Component("device"), logger.Error(err))
	}

	profile := device.FromProbe(probe, a.cfg.Device)
	return response.WithHeader(
		response.JSON(formatResult{Selection: a.choose(ctx, c, profile), Profile: profile}),
		"Cache-Control", "no-store",
	)
}
