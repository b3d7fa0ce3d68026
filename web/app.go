package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/cache"
	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/health"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/integration/storage/s3"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/pkg/format"
	"github.com/dmitrymomot/panelhouse/pkg/markdown"
	"github.com/dmitrymomot/panelhouse/pkg/metrics"
	"github.com/dmitrymomot/panelhouse/pkg/ratelimiter"
)

// ContentAPI is the part of the content API client the application uses.
type ContentAPI interface {
	ListComics(ctx context.Context, opts contentapi.ListOptions) (contentapi.Page[contentapi.Comic], error)
	GetComic(ctx context.Context, ref string) (contentapi.Comic, error)
	CreateComic(ctx context.Context, in contentapi.Comic) (contentapi.Comic, error)
	UpdateComic(ctx context.Context, id string, in contentapi.Comic) (contentapi.Comic, error)
	DeleteComic(ctx context.Context, id string) error

	ListPosts(ctx context.Context, opts contentapi.ListOptions) (contentapi.Page[contentapi.Post], error)
	GetPost(ctx context.Context, ref string) (contentapi.Post, error)
	CreatePost(ctx context.Context, in contentapi.Post) (contentapi.Post, error)
	UpdatePost(ctx context.Context, id string, in contentapi.Post) (contentapi.Post, error)
	DeletePost(ctx context.Context, id string) error

	Stats(ctx context.Context) (contentapi.Stats, error)
	Login(ctx context.Context, in contentapi.Credentials) (contentapi.Session, error)
	Register(ctx context.Context, in contentapi.Registration) (contentapi.Session, error)
	Me(ctx context.Context) (contentapi.User, error)
	Ping(ctx context.Context) error
}

// AssetResolver turns asset references from the content API into URLs.
type AssetResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Uploader stores admin uploads.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (s3.Asset, error)
}

var (
	ErrMissingContent = errors.New("web: content API is required")
	ErrMissingCookies = errors.New("web: cookie manager is required")
	ErrMissingAssets  = errors.New("web: asset resolver is required")
)

// Deps are the collaborators of App. Uploads and Metrics are optional.
type Deps struct {
	Config  Config
	Content ContentAPI
	Assets  AssetResolver
	Uploads Uploader
	Cookies *cookie.Manager
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Checks are extra readiness checks; the content API is always checked.
	Checks []health.Check
	// AssetOrigins are allowed by the content security policy.
	AssetOrigins []string
}

// App serves the application.
type App struct {
	cfg          Config
	content      ContentAPI
	assets       AssetResolver
	uploads      Uploader
	cookies      *cookie.Manager
	metrics      *metrics.Metrics
	logger       *slog.Logger
	checks       []health.Check
	assetOrigins []string

	selector     *format.Selector
	compiler     *markdown.Compiler
	sessions     *middleware.Sessions
	posts        *cache.LRUCache[string, *markdown.Document]
	highlightCSS []byte
	authLimit    ratelimiter.Limiter
	formatLimit  ratelimiter.Limiter
}

// New validates deps and prepares the application.
func New(deps Deps) (*App, error) {
	switch {
	case deps.Content == nil:
		return nil, ErrMissingContent
	case deps.Cookies == nil:
		return nil, ErrMissingCookies
	case deps.Assets == nil:
		return nil, ErrMissingAssets
	}
	cfg := deps.Config.withDefaults()
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	a := &App{
		cfg:          cfg,
		content:      deps.Content,
		assets:       deps.Assets,
		uploads:      deps.Uploads,
		cookies:      deps.Cookies,
		metrics:      deps.Metrics,
		logger:       log,
		checks:       deps.Checks,
		assetOrigins: deps.AssetOrigins,
		selector:     format.New(format.WithTabletPDFMinWidth(cfg.TabletPDFMinWidth)),
		posts: cache.NewLRUCache(cfg.PostCacheSize,
			cache.WithTTL[string, *markdown.Document](cfg.PostCacheTTL)),
	}

	var compilerOpts []markdown.Option
	if cfg.HighlightStyle != "" {
		compilerOpts = append(compilerOpts, markdown.WithStyle(cfg.HighlightStyle))
	}
	a.compiler = markdown.New(compilerOpts...)
	var css bytes.Buffer
	err := a.compiler.HighlightCSS(&css)
	if err != nil {
		return nil, err
	}
	a.highlightCSS = css.Bytes()

	limits := ratelimiter.NewMemoryStore()
	if a.authLimit, err = ratelimiter.NewTokenBucket(limits, ratelimiter.PerMinute(cfg.AuthRateLimit)); err != nil {
		return nil, err
	}
	if a.formatLimit, err = ratelimiter.NewTokenBucket(limits, ratelimiter.PerMinute(cfg.FormatRateLimit)); err != nil {
		return nil, err
	}

	a.sessions = middleware.NewSessions(middleware.SessionConfig{
		Cookies:         deps.Cookies,
		Resolve:         a.resolveSession,
		IsUnauthorized:  func(err error) bool { return errors.Is(err, contentapi.ErrUnauthorized) },
		RevalidateAfter: cfg.SessionRecheck,
		Logger:          log,
	})
	return a, nil
}

func (a *App) resolveSession(ctx context.Context, token string) (middleware.Principal, error) {
	u, err := a.content.Me(contentapi.WithToken(ctx, token))
	if err != nil {
		return middleware.Principal{}, err
	}
	return principalOf(u), nil
}

func principalOf(u contentapi.User) middleware.Principal {
	return middleware.Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Handler builds the router with the full middleware stack.
func (a *App) Handler() http.Handler {
	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](a.handleError),
		router.WithLogger[*router.Context](a.logger),
	)

	ops := func(ctx handler.Context) bool {
		switch ctx.Request().URL.Path {
		case "/live", "/ready", "/metrics":
			return true
		}
		return false
	}
	assets := func(ctx handler.Context) bool {
		return ops(ctx) || strings.HasPrefix(ctx.Request().URL.Path, "/assets/")
	}

	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.ClientIP[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{Logger: a.logger, Skip: ops}),
	)
	if a.metrics != nil {
		r.Use(middleware.Metrics[*router.Context](a.metrics))
	}
	security := middleware.PublishingSecurity(a.assetOrigins...)
	security.IsDevelopment = strings.HasPrefix(a.cfg.BaseURL, "http://")
	r.Use(
		middleware.SecurityHeadersWithConfig[*router.Context](security),
		middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
			ContentTypeLimit: map[string]int64{"multipart/form-data": a.cfg.MaxUploadSize + middleware.MB},
		}),
		middleware.Device[*router.Context](middleware.DeviceConfig{Skip: assets, Thresholds: a.cfg.Device, Logger: a.logger}),
		middleware.Theme[*router.Context](middleware.CookieThemeStore{Cookies: a.cookies}),
		middleware.Load[*router.Context](a.sessions),
	)

	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](a.logger, append([]health.Check{
		{Name: "contentapi", Fn: a.content.Ping},
	}, a.checks...)...))
	if a.metrics != nil {
		r.Get("/metrics", handler.FromHTTP[*router.Context](a.metrics.Handler()))
	}

	r.Get("/assets/highlight.css", a.highlightStylesheet)
	r.Get("/assets/*", a.embeddedAssets())

	r.Get("/", a.home)
	r.Get("/comics", a.comics)
	r.Get("/comics/{slug}", a.comic)
	r.Get("/comics/{slug}/read", a.reader)
	r.Get("/comics/{slug}/qr.png", a.comicQR)
	r.With(limit("format:", a.formatLimit)).Post("/api/comics/{slug}/format", a.selectFormat)
	r.Get("/blog", a.blog)
	r.Get("/blog/{slug}", a.post)
	r.Post("/theme", a.setTheme)

	guest := r.With(middleware.RequireGuest(middleware.GuardConfig[*router.Context]{
		ErrorHandler: func(*router.Context, error) handler.Response { return redirect("/") },
	}))
	guest.Get("/login", a.loginPage)
	guest.Get("/signup", a.signupPage)
	authLimited := guest.With(limit("auth:", a.authLimit))
	authLimited.Post("/login", a.login)
	authLimited.Post("/signup", a.signup)
	r.Post("/logout", a.logout)

	r.Route("/admin", func(admin router.Router[*router.Context]) {
		admin.Use(middleware.RequireAuth(middleware.GuardConfig[*router.Context]{
			Roles:        []string{contentapi.RoleAdmin, contentapi.RoleEditor},
			ErrorHandler: a.denyAdmin,
		}))
		admin.Get("/", a.dashboard)

		admin.Get("/comics", a.adminComics)
		admin.Get("/comics/new", a.newComic)
		admin.Post("/comics/new", a.createComic)
		admin.Get("/comics/{id}/edit", a.editComic)
		admin.Post("/comics/{id}/edit", a.updateComic)
		admin.Post("/comics/{id}/delete", a.deleteComic)

		admin.Get("/posts", a.adminPosts)
		admin.Get("/posts/new", a.newPost)
		admin.Post("/posts/new", a.createPost)
		admin.Post("/posts/preview", a.previewPost)
		admin.Get("/posts/{id}/edit", a.editPost)
		admin.Post("/posts/{id}/edit", a.updatePost)
		admin.Post("/posts/{id}/delete", a.deletePost)

		admin.Post("/uploads", a.upload)
	})

	return r
}

func limit(scope string, l ratelimiter.Limiter) handler.Middleware[*router.Context] {
	return middleware.RateLimit[*router.Context](middleware.RateLimitConfig{Limiter: l, Scope: scope})
}

func (a *App) denyAdmin(ctx *router.Context, err error) handler.Response {
	if errors.Is(err, middleware.ErrNotAuthenticated) {
		return redirect("/login?next=" + url.QueryEscape(ctx.Request().URL.RequestURI()))
	}
	return response.Error(response.ErrForbidden.WithMessage("Your account cannot open the admin area."))
}
