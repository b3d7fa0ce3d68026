package contentapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

type fakeAPI struct {
	*httptest.Server
	hits atomic.Int32
}

func newFakeAPI(t *testing.T, h http.HandlerFunc) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func newClient(t *testing.T, url string, opts ...contentapi.Option) *contentapi.Client {
	t.Helper()
	opts = append([]contentapi.Option{contentapi.WithRetryInterval(time.Millisecond)}, opts...)
	c, err := contentapi.New(contentapi.Config{BaseURL: url + "/v1", Timeout: 2 * time.Second, Retries: 2}, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewValidatesURL(t *testing.T) {
	t.Parallel()

	_, err := contentapi.New(contentapi.Config{})
	assert.ErrorIs(t, err, contentapi.ErrMissingURL)

	for _, u := range []string{"ftp://api", "not a url", "http://"} {
		_, err := contentapi.New(contentapi.Config{BaseURL: u})
		assert.Error(t, err, u)
	}
}

func TestGetComic(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/v1/comics/night-shift":
			writeJSON(w, 200, map[string]any{
				"id": "c1", "slug": "night-shift", "title": "Night Shift", "status": "published",
				"format": map[string]any{"pdf": "ns.pdf", "preferredFormat": "auto", "qualityTiers": map[string]any{"low": []string{"p1-lo"}}},
			})
		default:
			writeJSON(w, 404, map[string]string{"code": "not_found", "message": "comic not found"})
		}
	})
	c := newClient(t, api.URL)

	comic, err := c.GetComic(context.Background(), "night-shift")
	require.NoError(t, err)
	assert.Equal(t, "Night Shift", comic.Title)
	assert.Equal(t, "ns.pdf", comic.Format.PDF)
	assert.Equal(t, format.PreferAuto, comic.Format.Preferred)
	assert.Equal(t, []string{"p1-lo"}, comic.Format.QualityTiers[format.TierLow])

	_, err = c.GetComic(context.Background(), "missing")
	require.ErrorIs(t, err, contentapi.ErrNotFound)
	var apiErr *contentapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "comic not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode())
	assert.NotErrorIs(t, err, contentapi.ErrUnavailable)
}

func TestRetries(t *testing.T) {
	t.Parallel()

	t.Run("recovers_from_5xx", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				writeJSON(w, 503, map[string]string{"error": "warming up"})
				return
			}
			writeJSON(w, 200, map[string]any{"comics": 3})
		})
		stats, err := newClient(t, api.URL).Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Comics)
		assert.EqualValues(t, 3, calls.Load())
	})

	t.Run("gives_up", func(t *testing.T) {
		t.Parallel()
		api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 500, nil)
		})
		_, err := newClient(t, api.URL).Stats(context.Background())
		require.ErrorIs(t, err, contentapi.ErrUnavailable)
		var apiErr *contentapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode())
		assert.EqualValues(t, 3, api.hits.Load(), "one call plus two retries")
	})

	t.Run("no_retry_on_4xx", func(t *testing.T) {
		t.Parallel()
		api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 422, map[string]any{"message": "slug taken", "fields": map[string]string{"slug": "taken"}})
		})
		_, err := newClient(t, api.URL).UpdateComic(context.Background(), "c1", contentapi.Comic{Slug: "x"})
		assert.ErrorIs(t, err, contentapi.ErrInvalid)
		assert.EqualValues(t, 1, api.hits.Load())
	})

	t.Run("post_not_retried", func(t *testing.T) {
		t.Parallel()
		api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 503, nil)
		})
		_, err := newClient(t, api.URL).CreatePost(context.Background(), contentapi.Post{Title: "x"})
		assert.ErrorIs(t, err, contentapi.ErrUnavailable)
		assert.EqualValues(t, 1, api.hits.Load())
	})

	t.Run("network_error", func(t *testing.T) {
		t.Parallel()
		api := newFakeAPI(t, func(http.ResponseWriter, *http.Request) {})
		url := api.URL
		api.Close()
		err := newClient(t, url).Ping(context.Background())
		assert.ErrorIs(t, err, contentapi.ErrUnavailable)
	})
}

func TestCacheAndInvalidation(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/comics":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			writeJSON(w, 200, map[string]any{"items": []map[string]string{{"slug": "a"}}, "page": 2, "perPage": 10, "total": 25})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/comics":
			writeJSON(w, 201, map[string]string{"id": "c9", "slug": "new"})
		default:
			writeJSON(w, 404, nil)
		}
	})
	cache := contentapi.NewMemoryCache(16, time.Minute)
	c := newClient(t, api.URL, contentapi.WithCache(cache))
	ctx := context.Background()
	opts := contentapi.ListOptions{Page: 2, PerPage: 10}

	page, err := c.ListComics(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pages())
	assert.True(t, page.HasNext())
	_, err = c.ListComics(ctx, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 1, api.hits.Load(), "second listing served from cache")

	_, err = c.ListComics(contentapi.WithToken(ctx, "tok"), opts)
	require.NoError(t, err)
	assert.EqualValues(t, 2, api.hits.Load(), "authenticated calls bypass the cache")

	created, err := c.CreateComic(contentapi.WithToken(ctx, "tok"), contentapi.Comic{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)
	assert.Zero(t, cache.Len())

	_, err = c.ListComics(ctx, opts)
	require.NoError(t, err)
	assert.EqualValues(t, 4, api.hits.Load())
}

func TestCoalescesConcurrentGets(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, 200, map[string]string{"slug": "a", "title": "A"})
	})
	c := newClient(t, api.URL)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			comic, err := c.GetComic(context.Background(), "a")
			if err == nil && comic.Title != "A" {
				err = errors.New("unexpected comic " + comic.Title)
			}
			errs <- err
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestCancelledCallerLeavesSharedGet(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, 200, map[string]string{"slug": "a", "title": "A"})
	})
	c := newClient(t, api.URL, contentapi.WithCache(contentapi.NewMemoryCache(16, time.Minute)))

	waiter := make(chan error, 1)
	go func() {
		comic, err := c.GetComic(context.Background(), "a")
		if err == nil && comic.Title != "A" {
			err = errors.New("unexpected comic " + comic.Title)
		}
		waiter <- err
	}()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	start := time.Now()
	_, err := c.GetComic(ctx, "a")
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	require.NoError(t, <-waiter)

	_, err = c.GetComic(context.Background(), "a")
	require.NoError(t, err)
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestAuth(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			var in contentapi.Credentials
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Password != "secret" {
				writeJSON(w, 401, map[string]string{"message": "invalid credentials"})
				return
			}
			writeJSON(w, 200, map[string]any{"accessToken": "tok-1", "user": map[string]string{"id": "u1", "role": "editor"}})
		case "/v1/auth/register":
			writeJSON(w, 201, map[string]any{"user": map[string]string{"id": "u2"}})
		case "/v1/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				writeJSON(w, 401, nil)
				return
			}
			writeJSON(w, 200, map[string]string{"id": "u1", "name": "Ana", "role": "editor"})
		}
	})
	c := newClient(t, api.URL)
	ctx := context.Background()

	s, err := c.Login(ctx, contentapi.Credentials{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.Token)
	assert.Equal(t, contentapi.RoleEditor, s.User.Role)

	_, err = c.Login(ctx, contentapi.Credentials{Email: "a@example.com", Password: "nope"})
	assert.ErrorIs(t, err, contentapi.ErrUnauthorized)

	_, err = c.Register(ctx, contentapi.Registration{Email: "b@example.com"})
	assert.ErrorIs(t, err, contentapi.ErrUnavailable, "a registration without token is unusable")

	hits := api.hits.Load()
	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, contentapi.ErrUnauthorized)
	assert.Equal(t, hits, api.hits.Load(), "no call without a token")

	me, err := c.Me(contentapi.WithToken(ctx, "tok-1"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)

	_, err = c.Me(contentapi.WithToken(ctx, "expired"))
	assert.ErrorIs(t, err, contentapi.ErrUnauthorized)
}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
	hits    int
	misses  int
}

func (o *recordingObserver) ObserveContentAPI(op, result string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, op+":"+result)
}
func (o *recordingObserver) CacheHit()  { o.mu.Lock(); o.hits++; o.mu.Unlock() }
func (o *recordingObserver) CacheMiss() { o.mu.Lock(); o.misses++; o.mu.Unlock() }

func TestObserver(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/posts/missing" {
			writeJSON(w, 404, nil)
			return
		}
		writeJSON(w, 200, map[string]string{"slug": "hello"})
	})
	obs := &recordingObserver{}
	c := newClient(t, api.URL, contentapi.WithObserver(obs), contentapi.WithCache(contentapi.NewMemoryCache(4, time.Minute)))

	_, _ = c.GetPost(context.Background(), "hello")
	_, _ = c.GetPost(context.Background(), "hello")
	_, _ = c.GetPost(context.Background(), "missing")

	assert.Equal(t, []string{"GetPost:ok", "GetPost:not_found"}, obs.results)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 2, obs.misses)
}
