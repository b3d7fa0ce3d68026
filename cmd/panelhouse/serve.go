package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/panelhouse/core/config"
	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/health"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/server"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/integration/database/redis"
	"github.com/dmitrymomot/panelhouse/integration/storage/s3"
	"github.com/dmitrymomot/panelhouse/pkg/metrics"
	"github.com/dmitrymomot/panelhouse/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg Config) error {
	log := newLogger(cfg)
	m := metrics.New()

	var (
		cache  contentapi.Cache
		checks []health.Check
	)
	if cfg.Redis.Enabled() {
		rc, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		cache = redis.NewCache(rc,
			redis.WithKeyPrefix(cfg.Redis.KeyPrefix),
			redis.WithTTL(cfg.Content.CacheTTL),
			redis.WithScanBatchSize(cfg.Redis.ScanBatchSize),
			redis.WithCacheLogger(log),
		)
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(rc)})
		log.InfoContext(ctx, "content cache", logger.Component("redis"))
	} else {
		cache = contentapi.NewMemoryCache(cfg.Content.CacheSize, cfg.Content.CacheTTL)
	}

	content, err := contentapi.New(cfg.Content,
		contentapi.WithCache(cache),
		contentapi.WithObserver(m),
		contentapi.WithLogger(log),
	)
	if err != nil {
		return err
	}

	deps := web.Deps{
		Config:  cfg.Web,
		Content: content,
		Metrics: m,
		Logger:  log,
	}
	if cfg.S3.Enabled() {
		st, err := s3.New(ctx, cfg.S3)
		if err != nil {
			return err
		}
		deps.Assets, deps.Uploads = st, st
		checks = append(checks, health.Check{Name: "s3", Fn: st.Healthcheck})
		deps.AssetOrigins = origins(st.URL(""))
	} else {
		deps.Assets = web.StaticAssets{BaseURL: cfg.Web.AssetsBaseURL}
		deps.AssetOrigins = origins(cfg.Web.AssetsBaseURL)
		log.WarnContext(ctx, "S3 is not configured; uploads are disabled", logger.Component("uploads"))
	}
	deps.Checks = checks

	if deps.Cookies, err = cookie.NewFromConfig(cfg.Cookies); err != nil {
		return fmt.Errorf("cookies: %w", err)
	}

	app, err := web.New(deps)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "starting",
		slog.String("addr", cfg.Server.Addr),
		slog.String("content_api", cfg.Content.BaseURL),
		slog.String("version", version),
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, app.Handler()))
	return g.Wait()
}

// origins collects the distinct absolute origins of urls.
func origins(urls ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, u := range urls {
		if o := web.Origin(u); o != "" && !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}
