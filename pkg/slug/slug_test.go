package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/panelhouse/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		opts []slug.Option
		want string
	}{
		{"ascii", "Hello, World!", nil, "hello-world"},
		{"diacritics", "Café & Restaurant", nil, "cafe-restaurant"},
		{"eszett", "Straße in München", nil, "strasse-in-munchen"},
		{"ligatures", "Æsir Øresund", nil, "aesir-oresund"},
		{"non_latin_dropped", "Москва 2024", nil, "2024"},
		{"trims_separators", "  --Night   Shift--  ", nil, "night-shift"},
		{"max_length_word_boundary", "Very long title that exceeds", []slug.Option{slug.MaxLength(15)}, "very-long-title"},
		{"max_length_mid_word", "Very long title", []slug.Option{slug.MaxLength(7)}, "very"},
		{"separator", "Document Title", []slug.Option{slug.Separator("_")}, "document_title"},
		{"keep_case", "Product Name", []slug.Option{slug.Lowercase(false)}, "Product-Name"},
		{"replace", "C++ & Go", []slug.Option{slug.CustomReplace(map[string]string{"C++": "cpp", "&": "and"})}, "cpp-and-go"},
		{"strip", "Price: $100.00", []slug.Option{slug.StripChars("$:.")}, "price-10000"},
		{"empty", "!!!", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.in, tt.opts...))
		})
	}
}

func TestMakeSuffix(t *testing.T) {
	t.Parallel()

	s := slug.Make("Long Article Title", slug.MaxLength(20), slug.WithSuffix(6))
	assert.LessOrEqual(t, len(s), 20)
	assert.True(t, strings.HasPrefix(s, "long-"), s)
	assert.True(t, slug.Valid(s), s)

	other := slug.Make("Long Article Title", slug.MaxLength(20), slug.WithSuffix(6))
	assert.NotEqual(t, s, other)

	assert.Len(t, slug.Make("", slug.WithSuffix(8)), 8)
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"night-shift", "a", "issue-12"} {
		assert.True(t, slug.Valid(s), s)
	}
	for _, s := range []string{"", "Night", "-a", "a-", "a--b", "../etc", "a_b"} {
		assert.False(t, slug.Valid(s), s)
	}
}
