package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/core/sanitizer"
)

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type meta struct {
		Author string `sanitize:"single_line"`
	}
	type input struct {
		Title  string   `sanitize:"single_line,max:12"`
		Email  string   `sanitize:"email"`
		Slug   string   `sanitize:"trim_lower"`
		Bio    string   `sanitize:"text"`
		Pages  string   `sanitize:"lines"`
		Tags   []string `sanitize:"trim,lower"`
		Note   *string  `sanitize:"trim"`
		Raw    string
		Skip   string `sanitize:"-"`
		Meta   meta
		MetaP  *meta
		Unused string `sanitize:"no_such_sanitizer"`
	}

	note := "  keep me  "
	in := input{
		Title:  "  Night\n  Shift:\tthe finale  ",
		Email:  "  Ana@Example.COM ",
		Slug:   " Night-Shift ",
		Bio:    "<p>Hello <b>world</b> &amp; friends</p><script>x</script>",
		Pages:  "  p1.jpg\r\n\n  p2.jpg  \n",
		Tags:   []string{" Noir ", "SCI-FI"},
		Note:   &note,
		Raw:    "  untouched  ",
		Skip:   "  skipped  ",
		Meta:   meta{Author: " Ana\n Lee "},
		MetaP:  &meta{Author: "  Bo  "},
		Unused: "  as is ",
	}
	require.NoError(t, sanitizer.SanitizeStruct(&in))

	assert.Equal(t, "Night Shift:", in.Title)
	assert.Equal(t, "ana@example.com", in.Email)
	assert.Equal(t, "night-shift", in.Slug)
	assert.Equal(t, "Hello world & friends", in.Bio)
	assert.Equal(t, "p1.jpg\np2.jpg", in.Pages)
	assert.Equal(t, []string{"noir", "sci-fi"}, in.Tags)
	assert.Equal(t, "keep me", note)
	assert.Equal(t, "  untouched  ", in.Raw)
	assert.Equal(t, "  skipped  ", in.Skip)
	assert.Equal(t, "Ana Lee", in.Meta.Author)
	assert.Equal(t, "Bo", in.MetaP.Author)
	assert.Equal(t, "  as is ", in.Unused)
}

func TestSanitizeStructTargets(t *testing.T) {
	t.Parallel()

	type input struct{ A string }
	var nilPtr *input
	for _, target := range []any{input{}, nilPtr, new(int), nil} {
		assert.ErrorIs(t, sanitizer.SanitizeStruct(target), sanitizer.ErrInvalidTarget)
	}
}

func TestRegisterSanitizer(t *testing.T) {
	t.Parallel()

	sanitizer.RegisterSanitizer("hashtag_free", func(s string) string {
		return strings.ReplaceAll(s, "#", "")
	})
	in := struct {
		Tag string `sanitize:"trim,hashtag_free"`
	}{Tag: " #noir "}
	require.NoError(t, sanitizer.SanitizeStruct(&in))
	assert.Equal(t, "noir", in.Tag)
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", sanitizer.MaxLength("héllo", 4))
	assert.Equal(t, "héllo", sanitizer.MaxLength("héllo", 10))
	assert.Empty(t, sanitizer.MaxLength("héllo", 0))
}
