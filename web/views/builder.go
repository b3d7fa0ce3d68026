package views

import (
	"context"
	"io"
	"slices"
	"strconv"

	"github.com/a-h/templ"
)

// builder writes markup and remembers the first write error.
type builder struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(b *builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{ctx: ctx, w: w}
		fn(b)
		return b.err
	})
}

func (b *builder) raw(s string) {
	if b.err == nil {
		_, b.err = io.WriteString(b.w, s)
	}
}

func (b *builder) text(s string) { b.raw(templ.EscapeString(s)) }

func (b *builder) int(n int) { b.raw(itoa(n)) }

func itoa(n int) string { return strconv.Itoa(n) }

// flag is a boolean attribute, written bare when on.
type flag struct {
	name string
	on   bool
}

// open writes a start tag. attrs alternate names and values; empty values are
// skipped.
func (b *builder) open(tag string, attrs ...string) {
	b.openFlagged(tag, nil, attrs...)
}

// openFlagged is open with boolean attributes written after attrs.
func (b *builder) openFlagged(tag string, flags []flag, attrs ...string) {
	b.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, val := attrs[i], attrs[i+1]
		if val == "" {
			continue
		}
		switch name {
		case "href", "src", "action", "data", "poster":
			val = string(templ.URL(val))
		}
		b.raw(" " + name + `="` + templ.EscapeString(val) + `"`)
	}
	for _, f := range flags {
		if f.on {
			b.raw(" " + f.name)
		}
	}
	b.raw(">")
}

func (b *builder) close(tag string) { b.raw("</" + tag + ">") }

// el writes an element holding escaped text.
func (b *builder) el(tag, text string, attrs ...string) {
	b.open(tag, attrs...)
	b.text(text)
	b.close(tag)
}

func (b *builder) render(c templ.Component) {
	if b.err == nil && c != nil {
		b.err = c.Render(b.ctx, b.w)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
