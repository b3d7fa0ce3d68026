package web

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/web/views"
)

// page collects the layout data of the current request and consumes the
// pending flash message.
func (a *App) page(ctx *router.Context, title string) views.Page {
	r := ctx.Request()
	p := views.Page{
		AppName: a.cfg.AppName,
		Title:   title,
		Path:    r.URL.RequestURI(),
	}
	if st := middleware.GetTheme(ctx); st != nil {
		p.Theme, p.Preference = st.Mode(), st.Preference()
	}
	if u, ok := middleware.GetPrincipal(ctx); ok {
		p.User = &views.User{Name: u.Name, Role: u.Role}
	}
	if f, ok := a.cookies.PopFlash(ctx.ResponseWriter(), r); ok {
		p.Flash = &f
	}
	if a.cfg.BaseURL != "" {
		p.Canonical = strings.TrimSuffix(a.cfg.BaseURL, "/") + r.URL.Path
	}
	return p
}

func (a *App) flash(ctx *router.Context, kind cookie.FlashKind, msg string) {
	if err := a.cookies.SetFlash(ctx.ResponseWriter(), cookie.Flash{Kind: kind, Message: msg}); err != nil {
		a.logger.WarnContext(ctx, "flash not stored", logger.Error(err))
	}
}

// authed attaches the visitor's access token to ctx for content API calls.
func authed(ctx context.Context) context.Context {
	token, _ := middleware.GetAccessToken(ctx)
	return contentapi.WithToken(ctx, token)
}

func canEdit(ctx context.Context) bool {
	u, ok := middleware.GetPrincipal(ctx)
	return ok && (u.Role == contentapi.RoleAdmin || u.Role == contentapi.RoleEditor)
}

// resolve returns the URL of an asset, or "" when it cannot be resolved.
func (a *App) resolve(ctx context.Context, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := a.assets.Resolve(ctx, ref)
	if err != nil {
		a.logger.WarnContext(ctx, "asset not resolved", logger.Component("assets"), logger.Error(err))
		return ""
	}
	return u
}

func (a *App) resolveAll(ctx context.Context, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if u := a.resolve(ctx, ref); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// listQuery is the pagination and filter query of listings.
type listQuery struct {
	Page int    `query:"page"`
	Tag  string `query:"tag"`
}

func (q listQuery) page() int { return max(q.Page, 1) }

// pagerFor links pages of base, keeping the tag filter.
func pagerFor[T any](base string, p contentapi.Page[T], tag string) views.Pager {
	return views.Pager{
		Page:  max(p.Page, 1),
		Pages: p.Pages(),
		URL: func(n int) string {
			q := url.Values{}
			q.Set("page", strconv.Itoa(n))
			if tag != "" {
				q.Set("tag", tag)
			}
			return base + "?" + q.Encode()
		},
	}
}

// safeNext accepts local paths only.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

func redirect(to string) handler.Response {
	return response.RedirectSeeOther(to)
}

func notFound() handler.Response {
	return response.Error(response.ErrNotFound.WithMessage("We couldn't find that page."))
}
