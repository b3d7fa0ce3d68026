package static_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/core/static"
)

func TestFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"public/app.css":       {Data: []byte("body{}")},
		"public/js/reader.js":  {Data: []byte("(function(){})()")},
		"public/js/index.html": {Data: []byte("<p>hi</p>")},
		"secret.txt":           {Data: []byte("nope")},
	}
	r := router.New[*router.Context]()
	r.Get("/assets/*", static.FS[*router.Context](fsys,
		static.WithSubFS("public"),
		static.WithFSStripPrefix("/assets"),
		static.WithCacheControl("public, max-age=60"),
	))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/assets/app.css", http.StatusOK, "body{}"},
		{"/assets/js/reader.js", http.StatusOK, "(function(){})()"},
		{"/assets/js/", http.StatusNotFound, ""},
		{"/assets/js", http.StatusNotFound, ""},
		{"/assets/missing.css", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
				assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestFSPanicsOnBadSubPath(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		static.FS[*router.Context](fstest.MapFS{}, static.WithSubFS("../x"))
	})
}
