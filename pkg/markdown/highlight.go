package markdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used for the highlight stylesheet.
const DefaultStyle = "github"

type highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newHighlighter(style string) *highlighter {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &highlighter{
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4)),
		style:     s,
	}
}

// highlight replaces fenced code blocks tagged with a known language by
// chroma markup. Untagged or unknown blocks keep their escaped text.
func (h *highlighter) highlight(doc *goquery.Document) {
	doc.Find("pre > code").Each(func(_ int, code *goquery.Selection) {
		lang := language(code.AttrOr("class", ""))
		if lang == "" {
			return
		}
		lexer := lexers.Get(lang)
		if lexer == nil {
			return
		}
		it, err := chroma.Coalesce(lexer).Tokenise(nil, code.Text())
		if err != nil {
			return
		}
		var buf bytes.Buffer
		if err := h.formatter.Format(&buf, h.style, it); err != nil {
			return
		}
		code.Parent().ReplaceWithHtml(buf.String())
	})
}

// CSS writes the stylesheet matching the highlight classes.
func (h *highlighter) CSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

func language(class string) string {
	for _, c := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok {
			return strings.ToLower(lang)
		}
	}
	return ""
}
