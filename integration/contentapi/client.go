package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/panelhouse/core/logger"
)

// maxBodySize bounds responses read from the API.
const maxBodySize = 8 << 20

// Observer receives call and cache metrics. *metrics.Metrics implements it.
type Observer interface {
	ObserveContentAPI(op, result string, d time.Duration)
	CacheHit()
	CacheMiss()
}

type nopObserver struct{}

func (nopObserver) ObserveContentAPI(string, string, time.Duration) {}
func (nopObserver) CacheHit()                                      {}
func (nopObserver) CacheMiss()                                     {}

// Client talks to the content API. It is safe for concurrent use.
type Client struct {
	base          *url.URL
	http          *http.Client
	retries       int
	retryInterval time.Duration
	cache         Cache
	group         singleflight.Group
	logger        *slog.Logger
	observer      Observer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout bounds every attempt.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache caches anonymous GET responses.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithRetryInterval sets the first backoff interval (default 200ms).
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.retryInterval = d }
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrMissingURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("contentapi: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	c := &Client{
		base:          base,
		http:          &http.Client{Timeout: cfg.Timeout},
		retries:       max(cfg.Retries, 0),
		retryInterval: 200 * time.Millisecond,
		logger:        slog.New(slog.DiscardHandler),
		observer:      nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	once   bool // disables retries
}

func (r call) key() string {
	if len(r.query) == 0 {
		return r.path
	}
	return r.path + "?" + r.query.Encode()
}

// get serves a GET from the cache, a coalesced in-flight call, or the API.
func (c *Client) get(ctx context.Context, r call, out any) error {
	r.method = http.MethodGet
	key := r.key()
	token := tokenFrom(ctx)
	cacheable := c.cache != nil && token == ""

	if cacheable {
		if body, ok := c.cache.Get(ctx, key); ok {
			c.observer.CacheHit()
			return decode(body, out)
		}
		c.observer.CacheMiss()
	}

	flight := key
	if token != "" {
		flight = token + "\x00" + key
	}
	// The shared call outlives any single caller's cancellation; the HTTP
	// client timeout still bounds each attempt. Callers stop waiting as
	// soon as their own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flight, func() (any, error) {
		body, err := c.do(shared, r)
		if err == nil && cacheable {
			c.cache.Set(shared, key, body)
		}
		return body, err
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return decode(res.Val.([]byte), out)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send performs a mutation and drops cached entries under the given prefixes.
func (c *Client) send(ctx context.Context, r call, out any, invalidate ...string) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	c.invalidate(ctx, invalidate...)
	return decode(body, out)
}

func (c *Client) invalidate(ctx context.Context, prefixes ...string) {
	if c.cache == nil {
		return
	}
	for _, p := range prefixes {
		if err := c.cache.DeletePrefix(ctx, p); err != nil {
			c.logger.WarnContext(ctx, "content cache invalidation failed",
				logger.Component("contentapi"), slog.String("prefix", p), logger.Error(err))
		}
	}
}

// do runs r with retries. Only idempotent methods are retried.
func (c *Client) do(ctx context.Context, r call) ([]byte, error) {
	var payload []byte
	if r.body != nil {
		var err error
		if payload, err = json.Marshal(r.body); err != nil {
			return nil, fmt.Errorf("contentapi: encode %s: %w", r.op, err)
		}
	}

	u := c.base.JoinPath(r.path)
	u.RawQuery = r.query.Encode()
	token := tokenFrom(ctx)
	retry := r.method != http.MethodPost && !r.once

	start := time.Now()
	attempt := 0
	var body []byte
	operation := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, r.method, u.String(), bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "panelhouse")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			err = fmt.Errorf("%w: %s %s: %v", ErrUnavailable, r.method, r.path, err)
			if !retry {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return fmt.Errorf("%w: read %s: %v", ErrUnavailable, r.path, err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body = data
			return nil
		}

		apiErr := parseError(resp.StatusCode, data)
		if retry && retryableStatus(resp.StatusCode) {
			return apiErr
		}
		return backoff.Permanent(apiErr)
	}

	var retries uint64
	if retry {
		retries = uint64(c.retries)
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxElapsedTime = 0
	err := backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx),
		func(err error, wait time.Duration) {
			c.logger.WarnContext(ctx, "content api call failed, retrying",
				logger.Component("contentapi"),
				logger.Action(r.op),
				logger.RetryCount(attempt),
				slog.Duration("wait", wait),
				logger.Error(err),
			)
		},
	)

	c.observer.ObserveContentAPI(r.op, result(err), time.Since(start))
	if err != nil {
		c.logger.DebugContext(ctx, "content api call failed",
			logger.Component("contentapi"), logger.Action(r.op), logger.Error(err))
		return nil, err
	}
	return body, nil
}

func result(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return "not_found"
	case errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError:
		return "client_error"
	case errors.As(err, &apiErr):
		return "server_error"
	default:
		return "network_error"
	}
}

func parseError(status int, data []byte) *APIError {
	e := &APIError{Status: status}
	var payload struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Error   string         `json:"error"`
		Fields  map[string]any `json:"fields"`
	}
	if json.Unmarshal(data, &payload) == nil {
		e.Code, e.Message, e.Fields = payload.Code, payload.Message, payload.Fields
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("contentapi: decode response: %w", err)
	}
	return nil
}
