package markdown_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/panelhouse/pkg/markdown"
)

func compile(t *testing.T, c *markdown.Compiler, src string) *markdown.Document {
	t.Helper()
	doc, err := c.Compile([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestFrontMatter(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, "---\r\ntitle: Launch notes\r\ndescription: What shipped\r\ndate: 2025-03-01\r\ntags: [news, comics]\r\ndraft: true\r\ncover: /img/cover.png\r\n---\r\nHello.\r\n")
	assert.Equal(t, "Launch notes", doc.Meta.Title)
	assert.Equal(t, "What shipped", doc.Meta.Description)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), doc.Meta.Date)
	assert.Equal(t, []string{"news", "comics"}, doc.Meta.Tags)
	assert.True(t, doc.Meta.Draft)
	assert.Equal(t, "/img/cover.png", doc.Meta.Cover)
	assert.Contains(t, doc.HTML, "<p>Hello.</p>")

	_, err := c.Compile([]byte("---\ntitle: never closed\n\nbody"))
	assert.ErrorIs(t, err, markdown.ErrUnterminatedFrontMatter)

	_, err = c.Compile([]byte("---\ntitle: [broken\n---\nbody"))
	assert.ErrorIs(t, err, markdown.ErrInvalidFrontMatter)

	plain := compile(t, c, "# Plain title\n\nno front matter")
	assert.Equal(t, "Plain title", plain.Meta.Title)
}

func TestOutlineAndReadingTime(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, "## Getting Started\n\ntext\n\n### Install\n\nmore\n\n#### Deep\n\n## Usage\n")
	assert.Equal(t, []markdown.Heading{
		{Level: 2, ID: "getting-started", Text: "Getting Started"},
		{Level: 3, ID: "install", Text: "Install"},
		{Level: 2, ID: "usage", Text: "Usage"},
	}, doc.Outline)
	assert.Contains(t, doc.HTML, `id="getting-started"`)

	long := compile(t, c, strings.Repeat("word ", 450))
	assert.Equal(t, 450, long.Words)
	assert.Equal(t, 3, long.ReadingTime)

	empty := compile(t, c, "")
	assert.Zero(t, empty.ReadingTime)
}

func TestCallout(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	tests := []struct {
		name     string
		src      string
		contains []string
	}{
		{
			name:     "inline_markdown",
			src:      `<Callout type="warning">Be **careful** here.</Callout>`,
			contains: []string{`class="callout callout-warning"`, `<p class="callout-title">Warning</p>`, "<strong>careful</strong>"},
		},
		{
			name:     "multiline_with_title",
			src:      "<Callout type=\"tip\" title=\"Pro move\">\n- one\n- two\n</Callout>",
			contains: []string{`callout-tip`, "Pro move", "<li>one</li>"},
		},
		{
			name:     "unknown_type_is_info",
			src:      `<Callout type="shout">hey</Callout>`,
			contains: []string{`callout-info`, ">Info<"},
		},
		{
			name:     "nested",
			src:      "<Callout type=\"info\">\nouter\n<Callout type=\"tip\">inner</Callout>\n</Callout>",
			contains: []string{"callout-info", "callout-tip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := compile(t, c, tt.src)
			for _, want := range tt.contains {
				assert.Contains(t, doc.HTML, want)
			}
			assert.NotContains(t, strings.ToLower(doc.HTML), "<callout")
		})
	}
}

func TestComicEmbed(t *testing.T) {
	t.Parallel()

	c := markdown.New(markdown.WithComicResolver(func(slug string) (markdown.ComicEmbed, bool) {
		if slug != "night-shift" {
			return markdown.ComicEmbed{}, false
		}
		return markdown.ComicEmbed{Title: "Night Shift", Cover: "https://cdn.example.com/ns.jpg"}, true
	}))

	doc := compile(t, c, "Read this:\n\n<ComicEmbed slug=\"night-shift\" />\n\n<ComicEmbed slug=\"missing\"/>\n\n<ComicEmbed slug=\"../etc\" />\n")
	assert.Contains(t, doc.HTML, `href="/comics/night-shift/read"`)
	assert.Contains(t, doc.HTML, "<figcaption>Night Shift</figcaption>")
	assert.Contains(t, doc.HTML, `src="https://cdn.example.com/ns.jpg"`)
	assert.Equal(t, []string{"night-shift"}, doc.Comics)
	assert.Equal(t, "https://cdn.example.com/ns.jpg", doc.FirstImage)
	assert.Equal(t, 1, strings.Count(doc.HTML, "comic-embed"))
}

func TestYouTube(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, `<YouTube id="dQw4w9WgXcQ" title="Trailer" />`)
	assert.Contains(t, doc.HTML, `src="https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"`)
	assert.Contains(t, doc.HTML, `class="video-embed"`)

	bad := compile(t, c, `<YouTube id="javascript:alert(1)" />`)
	assert.NotContains(t, bad.HTML, "iframe")

	raw := compile(t, c, `<iframe src="https://evil.example.com/x"></iframe>`)
	assert.NotContains(t, raw.HTML, "evil.example.com")
}

func TestSanitizes(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, "Hi <script>alert(1)</script>\n\n<img src=\"x\" onerror=\"alert(1)\">\n\n[x](javascript:alert(1))\n")
	assert.NotContains(t, doc.HTML, "<script")
	assert.NotContains(t, doc.HTML, "onerror")
	assert.NotContains(t, doc.HTML, "javascript:")
}

func TestCodeBlocks(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, "```go\nfunc main() {}\n```\n")
	assert.Contains(t, doc.HTML, `class="chroma"`)

	literal := compile(t, c, "```\n<Callout type=\"tip\">not a component</Callout>\n```\n")
	assert.NotContains(t, literal.HTML, "callout-tip")
	assert.Contains(t, literal.HTML, "&lt;Callout")

	var css strings.Builder
	require.NoError(t, c.HighlightCSS(&css))
	assert.Contains(t, css.String(), ".chroma")
}

func TestGFMExtensions(t *testing.T) {
	t.Parallel()
	c := markdown.New()

	doc := compile(t, c, "Text[^1] with ~~strike~~ :smile:\n\n- [x] done\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n[^1]: The note.\n")
	assert.Contains(t, doc.HTML, `id="fn:1"`)
	assert.Contains(t, doc.HTML, "<del>strike</del>")
	assert.Contains(t, doc.HTML, `type="checkbox"`)
	assert.Contains(t, doc.HTML, "<table>")
	assert.NotContains(t, doc.HTML, ":smile:")
}
