package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

// wildcardParam names the net/http wildcard behind a trailing "/*".
const wildcardParam = "wildcard"

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// table is the state shared by a router and all of its groups and sub-routes.
type table[C handler.Context] struct {
	mux          *http.ServeMux
	routes       []Route
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
}

// mux is a view over the shared table with its own prefix and middleware.
type mux[C handler.Context] struct {
	shared      *table[C]
	parent      *mux[C]
	prefix      string
	middlewares []handler.Middleware[C]
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		shared: &table[C]{
			mux:          http.NewServeMux(),
			errorHandler: defaultErrorHandler[C],
			logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.shared.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.shared.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	return m
}

// ServeHTTP dispatches the request to the matching route or reports
// ErrNotFound / ErrMethodNotAllowed through the error handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	if _, pattern := m.shared.mux.Handler(r); pattern != "" {
		m.shared.mux.ServeHTTP(ww, r)
		return
	}

	ctx := m.shared.newContext(ww, r)
	if allowed := m.allowedMethods(r); len(allowed) > 0 {
		ww.Header().Set("Allow", strings.Join(allowed, ", "))
		m.shared.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}
	m.shared.errorHandler(ctx, ErrNotFound)
}

func (m *mux[C]) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range knownMethods {
		if method == r.Method {
			continue
		}
		probe := *r
		probe.Method = method
		if _, pattern := m.shared.mux.Handler(&probe); pattern != "" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C])    { m.handle(http.MethodGet, pattern, h) }
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C])   { m.handle(http.MethodPost, pattern, h) }
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C])    { m.handle(http.MethodPut, pattern, h) }
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C])  { m.handle(http.MethodPatch, pattern, h) }
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) { m.handle(http.MethodDelete, pattern, h) }
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) { m.handle("", pattern, h) }

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(knownMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to this router view. Middleware applies to every
// route registered on the view, including routes registered before the call.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		shared:      m.shared,
		parent:      m,
		prefix:      m.prefix,
		middlewares: slices.Clone(middlewares),
	}
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	g := m.With()
	if fn != nil {
		fn(g)
	}
	return g
}

func (m *mux[C]) Route(prefix string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, prefix))
	}
	if prefix == "" || prefix[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, prefix))
	}

	sub := &mux[C]{
		shared: m.shared,
		parent: m,
		prefix: joinPath(m.prefix, strings.TrimSuffix(prefix, "/")),
	}
	fn(sub)
	return sub
}

func (m *mux[C]) Routes() []Route {
	return slices.Clone(m.shared.routes)
}

func (m *mux[C]) handle(method, pattern string, h handler.HandlerFunc[C]) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	full := joinPath(m.prefix, pattern)
	key := muxPattern(full)
	if method != "" {
		key = method + " " + key
	}

	m.shared.mux.Handle(key, m.endpoint(h))

	if method == "" {
		method = "*"
	}
	m.shared.routes = append(m.shared.routes, Route{Method: method, Pattern: full})
}

func (m *mux[C]) endpoint(h handler.HandlerFunc[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.shared.newContext(ww, r)

		defer func() {
			if p := recover(); p != nil {
				perr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					m.shared.logger.Error("panic after response written",
						"value", perr.value,
						"stack", string(perr.stack),
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				m.shared.errorHandler(ctx, perr)
			}
		}()

		fn := h
		if mws := m.collectMiddlewares(); len(mws) > 0 {
			fn = chain(mws, h)
		}

		resp := fn(ctx)
		if resp == nil {
			m.shared.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp(ww, ctx.Request()); err != nil {
			m.shared.errorHandler(ctx, err)
		}
	})
}

// collectMiddlewares returns middleware from the root view down to m.
func (m *mux[C]) collectMiddlewares() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for cur := m; cur != nil; cur = cur.parent {
		if len(cur.middlewares) > 0 {
			all = append(slices.Clone(cur.middlewares), all...)
		}
	}
	return all
}

func joinPath(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	if pattern == "/" {
		return prefix
	}
	return prefix + pattern
}

// muxPattern converts a router pattern to net/http syntax: a trailing slash
// matches exactly and a trailing "*" captures the rest of the path.
func muxPattern(p string) string {
	switch {
	case strings.HasSuffix(p, "/*"):
		return p[:len(p)-1] + "{" + wildcardParam + "...}"
	case strings.HasSuffix(p, "/"):
		return p + "{$}"
	default:
		return p
	}
}
