package views

import (
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

// ComicCard is a comic in a listing. Cover is a resolved URL.
type ComicCard struct {
	Slug   string
	Title  string
	Author string
	Cover  string
	Tags   []string
}

// PostCard is a post in a listing.
type PostCard struct {
	Slug    string
	Title   string
	Excerpt string
	Cover   string
	Date    time.Time
	Tags    []string
}

// Home is the landing page with the latest comics and posts.
func Home(p Page, comics []ComicCard, posts []PostCard) templ.Component {
	return Layout(p, component(func(b *builder) {
		b.raw(`<section class="hero">`)
		b.el("h1", p.AppName)
		b.el("p", "Comics and stories, sized for the screen you read on.")
		b.raw("</section>")

		b.raw(`<section><h2>Latest comics</h2>`)
		comicGrid(b, comics)
		b.el("a", "All comics →", "href", "/comics", "class", "more")
		b.raw("</section>")

		b.raw(`<section><h2>From the blog</h2>`)
		postList(b, posts)
		b.el("a", "All posts →", "href", "/blog", "class", "more")
		b.raw("</section>")
	}))
}

// ComicList is the paginated comics listing, optionally filtered by tag.
func ComicList(p Page, comics []ComicCard, pg Pager, tag string) templ.Component {
	return Layout(p, component(func(b *builder) {
		if tag != "" {
			b.el("h1", "Comics tagged #"+tag)
		} else {
			b.el("h1", "Comics")
		}
		comicGrid(b, comics)
		pager(b, pg)
	}))
}

func comicGrid(b *builder, comics []ComicCard) {
	if len(comics) == 0 {
		b.el("p", "Nothing published yet.", "class", "empty")
		return
	}
	b.raw(`<ul class="grid">`)
	for _, c := range comics {
		b.raw(`<li class="card">`)
		b.open("a", "href", "/comics/"+c.Slug)
		if c.Cover != "" {
			b.open("img", "src", c.Cover, "alt", c.Title, "loading", "lazy")
		}
		b.el("h3", c.Title)
		b.close("a")
		if c.Author != "" {
			b.el("p", "by "+c.Author, "class", "muted")
		}
		b.raw("</li>")
	}
	b.raw("</ul>")
}

// ComicView is the comic detail page model.
type ComicView struct {
	ComicCard
	Description string
	Pages       int
	PublishedAt time.Time
	ReadURL     string
	QRURL       string
}

// ComicDetail shows a comic with links to the reader.
func ComicDetail(p Page, c ComicView) templ.Component {
	return Layout(p, component(func(b *builder) {
		b.raw(`<article class="comic-detail">`)
		if c.Cover != "" {
			b.open("img", "src", c.Cover, "alt", c.Title, "class", "cover")
		}
		b.raw("<div>")
		b.el("h1", c.Title)
		if c.Author != "" {
			b.el("p", "by "+c.Author, "class", "muted")
		}
		if !c.PublishedAt.IsZero() {
			b.open("time", "datetime", c.PublishedAt.Format(time.RFC3339))
			b.text(c.PublishedAt.Format("2 January 2006"))
			b.close("time")
		}
		if c.Pages > 0 {
			b.open("p", "class", "muted")
			b.int(c.Pages)
			b.text(" pages")
			b.close("p")
		}
		b.el("p", c.Description)
		tags(b, "/comics", c.Tags)
		b.el("a", "Read now", "href", c.ReadURL, "class", "button primary")
		b.raw(`<figure class="qr">`)
		b.open("img", "src", c.QRURL, "alt", "QR code linking to the reader", "width", "160", "height", "160")
		b.el("figcaption", "Continue on your phone")
		b.raw("</figure>")
		b.raw("</div></article>")
	}))
}

// ReaderView is the reader page model. Selection refs are resolved URLs.
type ReaderView struct {
	Slug      string
	Title     string
	Selection format.Selection
	Profile   device.Profile
	// Endpoint receives the browser's device probe.
	Endpoint string
}

// Reader renders the selected representation: an embedded PDF, an ordered
// image strip, or the unavailable placeholder.
func Reader(p Page, v ReaderView) templ.Component {
	return Layout(p, component(func(b *builder) {
		b.open("section", "class", "reader",
			"data-endpoint", v.Endpoint,
			"data-kind", string(v.Selection.Kind),
			"data-tier", string(v.Selection.Tier),
			"data-class", string(v.Profile.Class))
		b.raw(`<header class="reader-bar">`)
		b.el("a", "← "+v.Title, "href", "/comics/"+v.Slug)
		b.raw("</header>")

		switch v.Selection.Kind {
		case format.KindPDF:
			b.open("object", "data", v.Selection.Ref, "type", "application/pdf", "class", "reader-pdf")
			b.el("a", "Download the PDF", "href", v.Selection.Ref)
			b.close("object")
		case format.KindImages:
			b.raw(`<ol class="reader-pages">`)
			for i, ref := range v.Selection.Refs {
				b.raw("<li>")
				loading := "lazy"
				if i == 0 {
					loading = "eager"
				}
				b.open("img", "src", ref, "alt", pageAlt(v.Title, i+1), "loading", loading, "decoding", "async")
				b.raw("</li>")
			}
			b.raw("</ol>")
		default:
			b.raw(`<div class="unavailable" role="alert">`)
			b.el("h2", "Content unavailable")
			b.el("p", "This comic has no readable pages yet. Please check back later.")
			b.raw("</div>")
		}
		b.close("section")
	}))
}

func pageAlt(title string, n int) string {
	return title + ", page " + itoa(n)
}
