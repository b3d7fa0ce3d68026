package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/metrics"
)

func TestObserve(t *testing.T) {
	t.Parallel()
	m := metrics.New()

	m.ObserveHTTP(http.MethodGet, "GET /comics/{slug}", 200, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "GET /comics/{slug}", 200, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", 404, time.Millisecond)
	m.ObserveSelection("pdf", "desktop", false)
	m.ObserveSelection("images", "mobile", true)
	m.ObserveContentAPI("GetComic", "ok", 5*time.Millisecond)
	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()

	n, err := testutil.GatherAndCount(m.Registry(),
		"panelhouse_http_requests_total",
		"panelhouse_format_selections_total",
		"panelhouse_content_api_requests_total",
		"panelhouse_content_cache_lookups_total",
	)
	require.NoError(t, err)
	// two http series, two selection series, one api series, two cache series
	assert.Equal(t, 7, n)
}

func TestHandler(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.ObserveSelection("unavailable", "tablet", false)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `panelhouse_format_selections_total{class="tablet",fallback="false",kind="unavailable"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
