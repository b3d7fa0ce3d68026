package contentapi

import "time"

// Config is the content API connection.
type Config struct {
	BaseURL string        `env:"CONTENT_API_URL" envDefault:"http://localhost:8081/v1"`
	Timeout time.Duration `env:"CONTENT_API_TIMEOUT" envDefault:"5s"`
	Retries int           `env:"CONTENT_API_RETRIES" envDefault:"2"`
	// CacheTTL and CacheSize size the in-memory cache used when no redis is configured.
	CacheTTL  time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"30s"`
	CacheSize int           `env:"CONTENT_CACHE_SIZE" envDefault:"512"`
}
