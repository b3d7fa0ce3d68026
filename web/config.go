package web

import (
	"time"

	"github.com/dmitrymomot/panelhouse/pkg/device"
)

// Config is the application configuration loaded from the environment.
type Config struct {
	AppName       string `env:"APP_NAME" envDefault:"panelhouse"`
	BaseURL       string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	AssetsBaseURL string `env:"ASSETS_BASE_URL" envDefault:"/media"`

	TabletPDFMinWidth int `env:"FORMAT_TABLET_PDF_MIN_WIDTH" envDefault:"0"`
	Device            device.Thresholds

	PageSize        int           `env:"PAGE_SIZE" envDefault:"12"`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE" envDefault:"52428800"`
	SessionRecheck  time.Duration `env:"SESSION_REVALIDATE_AFTER" envDefault:"5m"`
	PostCacheSize   int           `env:"POST_CACHE_SIZE" envDefault:"256"`
	PostCacheTTL    time.Duration `env:"POST_CACHE_TTL" envDefault:"5m"`
	HighlightStyle  string        `env:"HIGHLIGHT_STYLE" envDefault:"github"`
	ProbeCookieDays int           `env:"DEVICE_PROBE_COOKIE_DAYS" envDefault:"30"`

	// Requests per minute and client IP.
	AuthRateLimit   int `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	FormatRateLimit int `env:"FORMAT_RATE_LIMIT" envDefault:"120"`
}

func (c Config) withDefaults() Config {
	if c.AppName == "" {
		c.AppName = "panelhouse"
	}
	if c.PageSize <= 0 {
		c.PageSize = 12
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = 50 << 20
	}
	if c.PostCacheSize <= 0 {
		c.PostCacheSize = 256
	}
	if c.ProbeCookieDays <= 0 {
		c.ProbeCookieDays = 30
	}
	if c.AuthRateLimit <= 0 {
		c.AuthRateLimit = 10
	}
	if c.FormatRateLimit <= 0 {
		c.FormatRateLimit = 120
	}
	if c.Device == (device.Thresholds{}) {
		c.Device = device.DefaultThresholds()
	}
	return c
}
