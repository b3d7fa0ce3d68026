package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrInvalidTarget = errors.New("config: target must be a non-nil pointer to a struct")
	ErrParse         = errors.New("config: failed to parse environment")
)

var (
	dotenvOnce sync.Once
	cacheMu    sync.RWMutex
	cache      = map[reflect.Type]any{}
)

// loadDotenv reads .env from the working directory once. A missing file is fine.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load fills cfg from the environment. The first successful load of a type is
// cached and copied into later targets of the same type.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrInvalidTarget
	}
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return errors.Join(ErrParse, fmt.Errorf("%s: %w", typ.Name(), err))
	}
	cache[typ] = fresh
	*cfg = fresh
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the environment without touching the cache.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return ErrInvalidTarget
	}
	loadDotenv()
	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParse, err)
	}
	return nil
}

// reset drops cached configurations. Used by tests.
func reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = map[reflect.Type]any{}
}
