package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/binder"
)

type postForm struct {
	Title    string   `form:"title"`
	Body     string   `form:"body,raw"`
	Tags     []string `form:"tags"`
	Draft    bool     `form:"draft"`
	Pages    *int     `form:"pages"`
	Ignored  string   `form:"-"`
	Untagged string
}

func TestFormURLEncoded(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"title":    {"Hello\r\nWorld"},
		"body":     {"# Heading\n\nParagraph"},
		"tags":     {"go, web", "comics"},
		"draft":    {"on"},
		"pages":    {"12"},
		"Ignored":  {"x"},
		"Untagged": {"y"},
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/posts/new", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f postForm
	require.NoError(t, binder.Form()(req, &f))

	assert.Equal(t, "HelloWorld", f.Title)
	assert.Equal(t, "# Heading\n\nParagraph", f.Body)
	assert.Equal(t, []string{"go", "web", "comics"}, f.Tags)
	assert.True(t, f.Draft)
	require.NotNil(t, f.Pages)
	assert.Equal(t, 12, *f.Pages)
	assert.Empty(t, f.Ignored)
	assert.Empty(t, f.Untagged)
}

func TestFormErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		target      any
		wantErr     error
	}{
		{name: "missing_content_type", body: "a=b", target: &postForm{}, wantErr: binder.ErrMissingContentType},
		{name: "json_is_not_a_form", contentType: "application/json", body: "{}", target: &postForm{}, wantErr: binder.ErrUnsupportedMediaType},
		{name: "bad_int", contentType: "application/x-www-form-urlencoded", body: "pages=many", target: &postForm{}, wantErr: binder.ErrFailedToParseForm},
		{name: "non_pointer", contentType: "application/x-www-form-urlencoded", body: "title=x", target: postForm{}, wantErr: binder.ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			assert.ErrorIs(t, binder.Form()(req, tt.target), tt.wantErr)
		})
	}
}

type uploadForm struct {
	Folder string                `form:"folder"`
	File   *multipart.FileHeader `file:"file"`
}

func TestFormMultipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("folder", "comics"))
	fw, err := mw.CreateFormFile("file", "../../etc/cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var f uploadForm
	require.NoError(t, binder.Form()(req, &f))
	t.Cleanup(func() { _ = req.MultipartForm.RemoveAll() })

	assert.Equal(t, "comics", f.Folder)
	require.NotNil(t, f.File)
	assert.Equal(t, "cover.png", f.File.Filename)
}

type listQuery struct {
	Page int    `query:"page"`
	Tag  string `query:"tag"`
}

func TestQuery(t *testing.T) {
	t.Parallel()

	var q listQuery
	req := httptest.NewRequest(http.MethodGet, "/comics?page=3&tag=noir", nil)
	require.NoError(t, binder.Query()(req, &q))
	assert.Equal(t, listQuery{Page: 3, Tag: "noir"}, q)

	req = httptest.NewRequest(http.MethodGet, "/comics?page=x", nil)
	assert.ErrorIs(t, binder.Query()(req, &q), binder.ErrFailedToParseQuery)
}

type viewportBody struct {
	ViewportWidth int     `json:"viewportWidth"`
	PixelRatio    float64 `json:"pixelRatio"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     error
	}{
		{name: "ok", contentType: "application/json; charset=utf-8", body: `{"viewportWidth":390,"pixelRatio":3}`},
		{name: "unknown_field", contentType: "application/json", body: `{"width":1}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "empty", contentType: "application/json", body: ``, wantErr: binder.ErrFailedToParseJSON},
		{name: "trailing", contentType: "application/json", body: `{} {}`, wantErr: binder.ErrFailedToParseJSON},
		{name: "wrong_type", contentType: "text/plain", body: `{}`, wantErr: binder.ErrUnsupportedMediaType},
		{name: "missing_type", body: `{}`, wantErr: binder.ErrMissingContentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/comics/a/format", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var p viewportBody
			err := binder.JSON()(req, &p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, viewportBody{ViewportWidth: 390, PixelRatio: 3}, p)
		})
	}
}
