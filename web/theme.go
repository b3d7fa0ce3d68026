package web

import (
	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/pkg/theme"
)

type themeForm struct {
	Preference string `form:"preference"`
	Next       string `form:"next"`
}

// setTheme stores the visitor's preference and returns to the page the
// switch was submitted from.
func (a *App) setTheme(ctx *router.Context) handler.Response {
	var f themeForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	pref, err := theme.ParsePreference(f.Preference)
	if err != nil {
		return response.Error(err)
	}
	if st := middleware.GetTheme(ctx); st != nil {
		if err := st.Set(pref); err != nil {
			return response.Error(err)
		}
	}
	return redirect(safeNext(f.Next, "/"))
}
