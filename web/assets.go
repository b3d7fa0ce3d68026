package web

import (
	"context"
	"embed"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/core/static"
)

// StaticAssets resolves references against a fixed base URL. It serves
// deployments without S3 where assets sit behind a CDN or a static host.
type StaticAssets struct {
	BaseURL string
}

func (s StaticAssets) Resolve(_ context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "data:") {
		return ref, nil
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(ref, "/"), nil
}

// Origin returns the scheme and host of an absolute base URL, or "".
func Origin(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

const assetCacheControl = "public, max-age=3600"

//go:embed assets
var embedded embed.FS

func (a *App) embeddedAssets() handler.HandlerFunc[*router.Context] {
	return static.FS[*router.Context](embedded,
		static.WithSubFS("assets"),
		static.WithFSStripPrefix("/assets"),
		static.WithCacheControl(assetCacheControl),
	)
}

func (a *App) highlightStylesheet(*router.Context) handler.Response {
	return response.WithHeader(response.Bytes(a.highlightCSS, "text/css; charset=utf-8", http.StatusOK), "Cache-Control", assetCacheControl)
}
