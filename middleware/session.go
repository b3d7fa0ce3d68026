package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
)

// SessionCookie holds the encrypted access token and the cached principal.
const SessionCookie = "ph_session"

var (
	ErrNotAuthenticated     = errors.New("middleware: authentication required")
	ErrAlreadyAuthenticated = errors.New("middleware: already signed in")
	ErrInsufficientRole     = errors.New("middleware: role not permitted")
)

// Principal is the signed-in user.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionResolver exchanges an access token for its principal. It must
// return an error satisfying IsUnauthorized for revoked or expired tokens.
type SessionResolver func(ctx context.Context, token string) (Principal, error)

type sessionPayload struct {
	Token     string    `json:"t"`
	Principal Principal `json:"p"`
	Checked   int64     `json:"c"`
}

type sessionKey struct{}

type sessionValue struct {
	token     string
	principal Principal
}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Cookies encrypts the session cookie (required)
	Cookies *cookie.Manager
	// Resolve revalidates the token against the content API (required)
	Resolve SessionResolver
	// IsUnauthorized reports whether a Resolve error means the token is dead
	IsUnauthorized func(err error) bool
	// RevalidateAfter is how long a cached principal is trusted (default: 5m)
	RevalidateAfter time.Duration
	// MaxAge of the session cookie in seconds (default: 7 days)
	MaxAge int
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// Now is the clock (default: time.Now)
	Now func() time.Time
}

// Sessions owns the session cookie: it is the entry point for signing in
// and out and the source of the loading middleware.
type Sessions struct {
	cfg SessionConfig
}

// NewSessions validates cfg and fills defaults.
func NewSessions(cfg SessionConfig) *Sessions {
	if cfg.Cookies == nil || cfg.Resolve == nil {
		panic("session middleware: cookies and resolver are required")
	}
	if cfg.IsUnauthorized == nil {
		cfg.IsUnauthorized = func(error) bool { return false }
	}
	if cfg.RevalidateAfter <= 0 {
		cfg.RevalidateAfter = 5 * time.Minute
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7 * 24 * 60 * 60
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sessions{cfg: cfg}
}

// SignIn stores token and principal in the session cookie.
func (s *Sessions) SignIn(w http.ResponseWriter, token string, p Principal) error {
	return s.write(w, sessionPayload{Token: token, Principal: p, Checked: s.cfg.Now().Unix()})
}

// SignOut removes the session cookie.
func (s *Sessions) SignOut(w http.ResponseWriter) {
	s.cfg.Cookies.Delete(w, SessionCookie)
}

func (s *Sessions) write(w http.ResponseWriter, p sessionPayload) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.cfg.Cookies.SetEncrypted(w, SessionCookie, string(raw), cookie.WithMaxAge(s.cfg.MaxAge))
}

// Load reads the session cookie into the context. A broken or revoked
// session is cleared; an unreachable content API keeps the cached principal.
func Load[C handler.Context](s *Sessions) handler.Middleware[C] {
	cfg := s.cfg
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			raw, err := cfg.Cookies.GetEncrypted(ctx.Request(), SessionCookie)
			if errors.Is(err, cookie.ErrNotFound) {
				return next(ctx)
			}
			var p sessionPayload
			if err == nil {
				err = json.Unmarshal([]byte(raw), &p)
			}
			if err != nil || p.Token == "" {
				cfg.Logger.WarnContext(ctx, "dropping unreadable session", logger.Component("session"), logger.Error(err))
				s.SignOut(ctx.ResponseWriter())
				return next(ctx)
			}

			now := cfg.Now()
			if now.Sub(time.Unix(p.Checked, 0)) >= cfg.RevalidateAfter {
				principal, err := cfg.Resolve(ctx, p.Token)
				switch {
				case err == nil:
					p.Principal, p.Checked = principal, now.Unix()
					if err := s.write(ctx.ResponseWriter(), p); err != nil {
						cfg.Logger.ErrorContext(ctx, "refresh session cookie", logger.Component("session"), logger.Error(err))
					}
				case cfg.IsUnauthorized(err):
					cfg.Logger.InfoContext(ctx, "session revoked", logger.Component("session"), logger.UserID(p.Principal.ID))
					s.SignOut(ctx.ResponseWriter())
					return next(ctx)
				default:
					cfg.Logger.WarnContext(ctx, "session revalidation failed", logger.Component("session"), logger.Error(err))
				}
			}

			ctx.SetValue(sessionKey{}, sessionValue{token: p.Token, principal: p.Principal})
			return next(ctx)
		}
	}
}

// GetPrincipal returns the signed-in user.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	v, ok := ctx.Value(sessionKey{}).(sessionValue)
	return v.principal, ok
}

// GetAccessToken returns the content API token of the signed-in user.
func GetAccessToken(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionKey{}).(sessionValue)
	return v.token, ok
}

// GuardConfig configures RequireAuth and RequireGuest.
type GuardConfig[C handler.Context] struct {
	// Roles permitted; empty allows every signed-in user
	Roles []string
	// ErrorHandler renders a denial (default: 401/403 error responses)
	ErrorHandler func(ctx C, err error) handler.Response
}

// RequireAuth denies requests without a session, or whose role is not listed.
// It must run after Load.
func RequireAuth[C handler.Context](cfg GuardConfig[C]) handler.Middleware[C] {
	deny := denial(cfg.ErrorHandler)
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			p, ok := GetPrincipal(ctx)
			if !ok {
				return deny(ctx, ErrNotAuthenticated)
			}
			if len(cfg.Roles) > 0 && !slices.Contains(cfg.Roles, p.Role) {
				return deny(ctx, ErrInsufficientRole)
			}
			return next(ctx)
		}
	}
}

// RequireGuest denies requests that already carry a session.
func RequireGuest[C handler.Context](cfg GuardConfig[C]) handler.Middleware[C] {
	deny := denial(cfg.ErrorHandler)
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if _, ok := GetPrincipal(ctx); ok {
				return deny(ctx, ErrAlreadyAuthenticated)
			}
			return next(ctx)
		}
	}
}

func denial[C handler.Context](h func(C, error) handler.Response) func(C, error) handler.Response {
	if h != nil {
		return h
	}
	return func(_ C, err error) handler.Response {
		switch {
		case errors.Is(err, ErrNotAuthenticated):
			return response.Error(response.ErrUnauthorized.WithError(err))
		default:
			return response.Error(response.ErrForbidden.WithError(err))
		}
	}
}
