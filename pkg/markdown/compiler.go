package markdown

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

// Heading is one entry of a post outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Document is a compiled post.
type Document struct {
	Meta Meta
	// HTML is sanitized and safe to embed.
	HTML        string
	Outline     []Heading
	FirstImage  string
	Words       int
	ReadingTime int
	Comics      []string
}

// Compiler turns markdown sources into Documents. It is safe for concurrent use.
type Compiler struct {
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	highlight *highlighter
	resolve   ComicResolver
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithComicResolver resolves <ComicEmbed> slugs. Unresolved slugs are dropped.
func WithComicResolver(r ComicResolver) Option {
	return func(c *Compiler) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithStyle selects the chroma style of the highlight stylesheet.
func WithStyle(name string) Option {
	return func(c *Compiler) { c.highlight = newHighlighter(name) }
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.Typographer,
				emoji.Emoji,
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			// Raw HTML is needed for components; the output is sanitized afterwards.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy:    newPolicy(),
		highlight: newHighlighter(DefaultStyle),
		resolve:   defaultComicResolver,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile parses front matter and renders the body.
func (c *Compiler) Compile(src []byte) (*Document, error) {
	return c.CompileWith(src, c.resolve)
}

// CompileWith is Compile with a per-call comic resolver, typically one bound
// to a request context.
func (c *Compiler) CompileWith(src []byte, resolve ComicResolver) (*Document, error) {
	if resolve == nil {
		resolve = c.resolve
	}
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	var rendered bytes.Buffer
	if err := c.md.Convert([]byte(normalizeComponents(string(body))), &rendered); err != nil {
		return nil, fmt.Errorf("markdown: render: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&rendered)
	if err != nil {
		return nil, fmt.Errorf("markdown: parse rendered html: %w", err)
	}
	comics := rewriteComponents(doc, resolve)
	c.highlight.highlight(doc)

	raw, err := doc.Find("body").Html()
	if err != nil {
		return nil, fmt.Errorf("markdown: serialize: %w", err)
	}
	safe := c.policy.Sanitize(raw)

	out, err := goquery.NewDocumentFromReader(strings.NewReader(safe))
	if err != nil {
		return nil, fmt.Errorf("markdown: parse sanitized html: %w", err)
	}

	words := countWords(out.Find("body").Text())
	d := &Document{
		Meta:        meta,
		HTML:        safe,
		Outline:     outline(out),
		FirstImage:  out.Find("img").First().AttrOr("src", ""),
		Words:       words,
		ReadingTime: readingTime(words),
		Comics:      comics,
	}
	if d.Meta.Cover == "" {
		d.Meta.Cover = d.FirstImage
	}
	if d.Meta.Title == "" {
		d.Meta.Title = strings.TrimSpace(out.Find("h1").First().Text())
	}
	return d, nil
}

// HighlightCSS writes the code highlighting stylesheet.
func (c *Compiler) HighlightCSS(w io.Writer) error {
	return c.highlight.CSS(w)
}

func outline(doc *goquery.Document) []Heading {
	var hs []Heading
	doc.Find("h2[id], h3[id]").Each(func(_ int, s *goquery.Selection) {
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		hs = append(hs, Heading{Level: level, ID: s.AttrOr("id", ""), Text: strings.TrimSpace(s.Text())})
	})
	return hs
}

func countWords(text string) int {
	return len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '\'' && r != '-')
	}))
}

// readingTime rounds up to whole minutes; any text takes at least one.
func readingTime(words int) int {
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / WordsPerMinute))
}
