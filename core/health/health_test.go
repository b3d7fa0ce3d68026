package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/health"
	"github.com/dmitrymomot/panelhouse/core/router"
)

func TestLiveness(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/live", health.Liveness[*router.Context])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks []health.Check
		status int
		want   map[string]string
	}{
		{
			name:   "all_ok",
			checks: []health.Check{{Name: "content_api", Fn: ok}, {Name: "redis", Fn: ok}},
			status: http.StatusOK,
			want:   map[string]string{"content_api": "ok", "redis": "ok"},
		},
		{
			name:   "one_down",
			checks: []health.Check{{Name: "content_api", Fn: ok}, {Name: "redis", Fn: down}},
			status: http.StatusServiceUnavailable,
			want:   map[string]string{"content_api": "ok", "redis": "error"},
		},
		{
			name:   "nil_check_skipped",
			checks: []health.Check{{Name: "redis"}},
			status: http.StatusOK,
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			r.Get("/ready", health.Readiness[*router.Context](log, tt.checks...))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.status, w.Code)

			var report health.Report
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
			if len(tt.want) == 0 {
				assert.Empty(t, report.Checks)
			} else {
				assert.Equal(t, tt.want, report.Checks)
			}
		})
	}
}
