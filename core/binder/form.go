package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultMaxMemory is the in-memory part of a multipart form; the rest
// spills to temporary files.
const DefaultMaxMemory = 10 << 20

// Form binds url-encoded and multipart forms using `form` tags for values and
// `file` tags for uploads (*multipart.FileHeader or a slice of them).
// Callers own r.MultipartForm cleanup.
func Form() Binder {
	return func(r *http.Request, v any) error {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			return fmt.Errorf("%w: expected a form", ErrMissingContentType)
		}
		mt, params, err := mime.ParseMediaType(ct)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}

		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindValues(v, "form", r.PostForm, nil, ErrFailedToParseForm)

		case "multipart/form-data":
			if b := params["boundary"]; b == "" || len(b) > 70 {
				return fmt.Errorf("%w: invalid boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			return bindValues(v, "form", r.MultipartForm.Value, r.MultipartForm.File, ErrFailedToParseForm)

		default:
			return fmt.Errorf("%w: got %s, expected a form", ErrUnsupportedMediaType, mt)
		}
	}
}

// sanitizeFilename keeps only the base name of an uploaded file.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.ReplaceAll(filepath.Base(name), "\x00", "")
	switch name {
	case "", ".", "..", "/":
		return "unnamed"
	}
	return name
}

func sanitizeFiles(headers []*multipart.FileHeader) []*multipart.FileHeader {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}
	return headers
}
