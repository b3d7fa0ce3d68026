// Package config loads environment variables into structs with caarlos0/env.
// A .env file in the working directory is read once before the first load.
//
//	type Content struct {
//		BaseURL string        `env:"CONTENT_API_URL,required"`
//		Timeout time.Duration `env:"CONTENT_API_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg Content
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches the first successful result per struct type, so every component
// asking for the same type observes the same values. Parse skips the cache and
// suits commands that read configuration more than once, such as tests.
package config
