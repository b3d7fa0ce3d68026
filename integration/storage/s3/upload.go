package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dmitrymomot/panelhouse/pkg/slug"
)

// allowedTypes maps accepted MIME types to the stored extension.
var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"image/avif":      ".avif",
}

// Asset describes an inspected or stored upload.
type Asset struct {
	Key         string `json:"key,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Pages       int    `json:"pages,omitempty"`
}

// IsPDF reports whether the asset is a PDF document.
func (a Asset) IsPDF() bool { return a.ContentType == "application/pdf" }

// Inspect sniffs data and validates it as an image or a readable PDF.
func Inspect(data []byte) (Asset, error) {
	if len(data) == 0 {
		return Asset{}, ErrEmptyFile
	}
	mt := mimetype.Detect(data)
	contentType := baseType(mt.String())
	if _, ok := allowedTypes[contentType]; !ok {
		return Asset{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	a := Asset{ContentType: contentType, Size: int64(len(data))}
	if a.IsPDF() {
		pages, err := api.PageCount(bytes.NewReader(data), nil)
		if err != nil {
			return Asset{}, errors.Join(ErrInvalidPDF, err)
		}
		if pages < 1 {
			return Asset{}, fmt.Errorf("%w: no pages", ErrInvalidPDF)
		}
		a.Pages = pages
	}
	return a, nil
}

// Upload validates r and stores it under a dated key derived from name.
func (s *Storage) Upload(ctx context.Context, name string, r io.Reader) (Asset, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxUploadSize+1))
	if err != nil {
		return Asset{}, fmt.Errorf("s3: read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadSize {
		return Asset{}, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxUploadSize)
	}

	a, err := Inspect(data)
	if err != nil {
		return Asset{}, err
	}
	a.Key = s.uploadKey(name, allowedTypes[a.ContentType])
	if err := s.Put(ctx, a.Key, bytes.NewReader(data), a.ContentType); err != nil {
		return Asset{}, err
	}
	if a.URL, err = s.Resolve(ctx, a.Key); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (s *Storage) uploadKey(name, ext string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(name, "\\", "/")), path.Ext(name))
	if slug.Make(base) == "" {
		base = "asset"
	}
	stem := slug.Make(base, slug.MaxLength(48), slug.WithSuffix(6))
	now := s.now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s%s", s.uploadPrefix, now.Year(), int(now.Month()), stem, ext)
}

func baseType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.TrimSpace(contentType)
}

func isNotFound(err error) bool { return errors.Is(err, ErrFileNotFound) }
