package static

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/dmitrymomot/panelhouse/core/handler"
)

type fsConfig struct {
	stripPrefix  string
	subPath      string
	cacheControl string
}

// FSOption configures FS.
type FSOption func(*fsConfig)

// WithFSStripPrefix removes prefix from the URL path before the lookup, so
// "/assets/app.css" with prefix "/assets" serves "app.css".
func WithFSStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) { c.stripPrefix = prefix }
}

// WithSubFS serves the subdirectory path of the filesystem.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) { c.subPath = path }
}

// WithCacheControl sets the Cache-Control header of served files.
func WithCacheControl(value string) FSOption {
	return func(c *fsConfig) { c.cacheControl = value }
}

// FS serves files from fsys. Range requests and conditional requests are
// handled by http.FileServer.
//
// Panics at startup if the sub path is invalid or the root cannot be opened.
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	cfg := &fsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		fsys = sub
	}
	if _, err := fsys.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	var files http.Handler = http.FileServer(noListing{fs: http.FS(fsys)})
	if cfg.stripPrefix != "" {
		files = http.StripPrefix(cfg.stripPrefix, files)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if cfg.cacheControl != "" {
				w.Header().Set("Cache-Control", cfg.cacheControl)
			}
			files.ServeHTTP(w, r)
			return nil
		}
	}
}

// noListing hides directories, including those with an index.html.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	if strings.HasSuffix(name, "/") {
		return nil, fs.ErrNotExist
	}
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
