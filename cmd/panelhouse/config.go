package main

import (
	"log/slog"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/server"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/integration/database/redis"
	"github.com/dmitrymomot/panelhouse/integration/storage/s3"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/web"
)

// Config is the complete environment configuration of the server.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	Server  server.Config
	Cookies cookie.Config
	Content contentapi.Config
	Redis   redis.Config
	S3      s3.Config
	Web     web.Config
}

func (c Config) development() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

const (
	logFileMaxSizeMB  = 100
	logFileMaxBackups = 5
)

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithContextExtractors(middleware.RequestIDLogExtractor),
	}
	if cfg.development() {
		opts = append(opts, logger.WithDevelopment(cfg.Web.AppName))
	} else {
		opts = append(opts, logger.WithProduction(cfg.Web.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFileOutput(cfg.LogFile, logFileMaxSizeMB, logFileMaxBackups))
	}
	return logger.New(opts...)
}
