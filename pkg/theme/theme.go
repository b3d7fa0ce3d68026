// Package theme owns the colour scheme preference of a visitor: an explicit
// light or dark choice persisted in a cookie, or "system", which follows the
// browser's reported preference.
package theme

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
)

// Preference is what the visitor asked for.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"
)

// Mode is the scheme actually rendered.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Cookie stores the persisted preference.
const Cookie = "ph_theme"

// HeaderPrefersColorScheme is the client hint carrying the system preference.
const HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

var ErrInvalidPreference = errors.New("theme: preference must be light, dark or system")

// ParsePreference validates s.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return p, nil
	}
	return "", ErrInvalidPreference
}

// Store persists a preference. core/cookie.Manager satisfies it through an
// adapter in the middleware package.
type Store interface {
	Load(r *http.Request) (string, error)
	Save(w http.ResponseWriter, value string) error
}

// State is the resolved theme of one request. It is safe for concurrent use
// and is the only place the preference is read or written during a request.
type State struct {
	mu         sync.RWMutex
	preference Preference
	system     Mode
	store      Store
	w          http.ResponseWriter
}

// Resolve builds the state for r: the stored preference when valid, otherwise
// system, with the system mode taken from the client hint (light when absent).
func Resolve(w http.ResponseWriter, r *http.Request, store Store) *State {
	s := &State{preference: PreferenceSystem, system: ModeLight, store: store, w: w}
	if strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderPrefersColorScheme)), "dark") {
		s.system = ModeDark
	}
	if store != nil {
		if raw, err := store.Load(r); err == nil {
			if p, err := ParsePreference(raw); err == nil {
				s.preference = p
			}
		}
	}
	return s
}

// Preference returns the visitor's choice.
func (s *State) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preference
}

// Mode returns the scheme to render.
func (s *State) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.preference {
	case PreferenceDark:
		return ModeDark
	case PreferenceLight:
		return ModeLight
	}
	return s.system
}

// Set validates, stores and persists p.
func (s *State) Set(p Preference) error {
	p, err := ParsePreference(string(p))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil && s.w != nil {
		if err := s.store.Save(s.w, string(p)); err != nil {
			return err
		}
	}
	s.preference = p
	return nil
}

type ctxKey struct{}

// WithState stores s in ctx.
func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's state, or nil.
func FromContext(ctx context.Context) *State {
	s, _ := ctx.Value(ctxKey{}).(*State)
	return s
}

// ModeFromContext returns the mode to render, light when no state is present.
func ModeFromContext(ctx context.Context) Mode {
	if s := FromContext(ctx); s != nil {
		return s.Mode()
	}
	return ModeLight
}
