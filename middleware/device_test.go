package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/theme"
)

func TestDevice(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.Device[*router.Context](middleware.DeviceConfig{}))
	var got device.Profile
	r.Get("/", func(ctx *router.Context) handler.Response {
		got = middleware.GetDevice(ctx)
		return response.String("ok")
	})

	tests := []struct {
		name   string
		setup  func(*http.Request)
		class  device.Class
		source device.Source
	}{
		{
			name:   "profile_cookie",
			setup:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: device.ProbeCookie, Value: "800x1280@2t"}) },
			class:  device.ClassTablet,
			source: device.SourceProbe,
		},
		{
			name:   "client_hints",
			setup:  func(r *http.Request) { r.Header.Set("Sec-CH-Viewport-Width", "375") },
			class:  device.ClassMobile,
			source: device.SourceHints,
		},
		{
			name: "user_agent",
			setup: func(r *http.Request) {
				r.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148")
			},
			class:  device.ClassMobile,
			source: device.SourceUserAgent,
		},
		{
			name:   "nothing",
			setup:  func(*http.Request) {},
			class:  device.ClassDesktop,
			source: device.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Del("User-Agent")
			tt.setup(req)
			w := serve(r, req)

			assert.Equal(t, tt.class, got.Class)
			assert.Equal(t, tt.source, got.Source)
			assert.Equal(t, device.AcceptCH, w.Header().Get("Accept-CH"))
			vary := strings.Join(w.Header().Values("Vary"), ", ")
			for _, h := range []string{"Cookie", "Sec-CH-Viewport-Width", "Sec-CH-Viewport-Height", "Sec-CH-DPR", "Sec-CH-UA-Mobile", "User-Agent"} {
				assert.Contains(t, vary, h)
			}
		})
	}
}

func TestGetDeviceWithoutMiddleware(t *testing.T) {
	t.Parallel()

	p := middleware.GetDevice(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.Equal(t, device.ClassDesktop, p.Class)
	assert.Equal(t, device.SourceDefault, p.Source)
}

func TestTheme(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	store := middleware.CookieThemeStore{Cookies: cookies}

	r := router.New[*router.Context]()
	r.Use(middleware.Theme[*router.Context](store))
	r.Get("/", func(ctx *router.Context) handler.Response {
		return response.String(string(middleware.GetTheme(ctx).Mode()))
	})
	r.Post("/theme", func(ctx *router.Context) handler.Response {
		if err := middleware.GetTheme(ctx).Set(theme.Preference(ctx.Request().FormValue("theme"))); err != nil {
			return response.Error(response.ErrBadRequest.WithError(err))
		}
		return response.RedirectSeeOther("/")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(theme.HeaderPrefersColorScheme, "dark")
	assert.Equal(t, "dark", serve(r, req).Body.String(), "system preference follows the client hint")

	w := serve(r, httptest.NewRequest(http.MethodPost, "/theme?theme=light", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	saved := w.Result().Cookies()
	require.Len(t, saved, 1)
	assert.False(t, saved[0].HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(theme.HeaderPrefersColorScheme, "dark")
	req.AddCookie(saved[0])
	assert.Equal(t, "light", serve(r, req).Body.String(), "stored preference wins")

	assert.Equal(t, http.StatusBadRequest, serve(r, httptest.NewRequest(http.MethodPost, "/theme?theme=neon", nil)).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: theme.Cookie, Value: "dark"})
	assert.Equal(t, "light", serve(r, req).Body.String(), "unsigned cookies are ignored")
}
