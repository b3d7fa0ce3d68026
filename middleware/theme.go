package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/pkg/theme"
)

// themeMaxAge keeps the preference for a year.
const themeMaxAge = 365 * 24 * 60 * 60

// CookieThemeStore persists the theme preference in a signed cookie.
type CookieThemeStore struct {
	Cookies *cookie.Manager
}

func (s CookieThemeStore) Load(r *http.Request) (string, error) {
	return s.Cookies.GetSigned(r, theme.Cookie)
}

func (s CookieThemeStore) Save(w http.ResponseWriter, value string) error {
	return s.Cookies.SetSigned(w, theme.Cookie, value, cookie.WithMaxAge(themeMaxAge), cookie.WithHTTPOnly(false))
}

// Theme resolves the visitor's theme once per request and stores the state
// cell in the context. Handlers read it with theme.FromContext or change it
// with State.Set.
func Theme[C handler.Context](store theme.Store) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			state := theme.Resolve(ctx.ResponseWriter(), ctx.Request(), store)
			ctx.SetValue(themeContextKey{}, state)
			ctx.ResponseWriter().Header().Add("Vary", theme.HeaderPrefersColorScheme)
			return next(ctx)
		}
	}
}

type themeContextKey struct{}

// GetTheme returns the state stored by Theme, or a light system state for
// requests the middleware did not see.
func GetTheme(ctx context.Context) *theme.State {
	if s, ok := ctx.Value(themeContextKey{}).(*theme.State); ok {
		return s
	}
	if s := theme.FromContext(ctx); s != nil {
		return s
	}
	return theme.Resolve(nil, &http.Request{Header: http.Header{}}, nil)
}
