package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
)

func TestTextResponses(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		build       func() handler.Response
	}{
		{
			name: "string", status: http.StatusOK, contentType: "text/plain; charset=utf-8", body: "hello",
			build: func() handler.Response { return response.String("hello") },
		},
		{
			name: "string_with_status", status: http.StatusAccepted, contentType: "text/plain; charset=utf-8", body: "queued",
			build: func() handler.Response { return response.StringWithStatus("queued", http.StatusAccepted) },
		},
		{
			name: "html", status: http.StatusOK, contentType: "text/html; charset=utf-8", body: "<p>hi</p>",
			build: func() handler.Response { return response.HTML("<p>hi</p>") },
		},
		{
			name: "bytes_zero_status", status: http.StatusOK, contentType: "image/png", body: "PNG",
			build: func() handler.Response { return response.Bytes([]byte("PNG"), "image/png", 0) },
		},
		{
			name: "no_content", status: http.StatusNoContent,
			build: func() handler.Response { return response.NoContent() },
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			require.NoError(t, tt.build()(w, req))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	t.Run("nil_without_status_is_no_content", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.JSONWithStatus(nil, 0)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("encodes_value", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.JSONWithStatus(map[string]string{"kind": "pdf"}, http.StatusCreated)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"kind":"pdf"}`, w.Body.String())
	})
}

type componentFunc func(ctx context.Context, w io.Writer) error

func (f componentFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

func TestTemplBuffersOutput(t *testing.T) {
	t.Parallel()

	ok := componentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>reader</h1>")
		return err
	})
	failing := componentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<h1>partial")
		return errors.New("broken")
	})

	w := httptest.NewRecorder()
	require.NoError(t, response.TemplWithStatus(ok, http.StatusNotFound)(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "<h1>reader</h1>", w.Body.String())

	w = httptest.NewRecorder()
	err := response.Templ(failing)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Error(t, err)
	assert.Empty(t, w.Body.String(), "nothing is written when the component fails")

	assert.Nil(t, response.Templ(nil))
}

func TestRedirects(t *testing.T) {
	t.Parallel()

	t.Run("see_other", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, response.RedirectSeeOther("/admin")(w, httptest.NewRequest(http.MethodPost, "/login", nil)))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	})

	t.Run("htmx", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set(response.HeaderHXRequest, "true")
		w := httptest.NewRecorder()
		require.NoError(t, response.Redirect("/admin")(w, req))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/admin", w.Header().Get(response.HeaderHXLocation))
	})

	t.Run("back_same_host", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		req.Header.Set("Referer", "http://example.com/blog/hello?x=1")
		w := httptest.NewRecorder()
		require.NoError(t, response.RedirectBack("/")(w, req))
		assert.Equal(t, "/blog/hello?x=1", w.Header().Get("Location"))
	})

	t.Run("back_foreign_host", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		req.Header.Set("Referer", "https://evil.test/phish")
		w := httptest.NewRecorder()
		require.NoError(t, response.RedirectBack("/")(w, req))
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

type teapotError struct{}

func (teapotError) Error() string   { return "short and stout" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, response.ErrNotFound, response.AsHTTPError(response.ErrNotFound))

	wrapped := response.AsHTTPError(fmt.Errorf("loading: %w", response.ErrForbidden))
	assert.Equal(t, http.StatusForbidden, wrapped.Status)

	plain := response.AsHTTPError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, "db down", plain.Details["cause"])

	custom := response.AsHTTPError(teapotError{})
	assert.Equal(t, http.StatusTeapot, custom.Status)
	assert.Equal(t, "error", custom.Code)
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context](router.WithErrorHandler(response.JSONErrorHandler[*router.Context]))
	r.Get("/comic", func(ctx *router.Context) handler.Response {
		return response.Error(response.ErrNotFound.WithMessage("comic not found"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/comic", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["code"])
	assert.Equal(t, "comic not found", body["message"])
}
