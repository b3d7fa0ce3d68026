package views

import (
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/panelhouse/pkg/markdown"
)

// BlogList is the paginated post listing.
func BlogList(p Page, posts []PostCard, pg Pager, tag string) templ.Component {
	return Layout(p, component(func(b *builder) {
		if tag != "" {
			b.el("h1", "Posts tagged #"+tag)
		} else {
			b.el("h1", "Blog")
		}
		postList(b, posts)
		pager(b, pg)
	}))
}

func postList(b *builder, posts []PostCard) {
	if len(posts) == 0 {
		b.el("p", "No posts yet.", "class", "empty")
		return
	}
	b.raw(`<ul class="post-list">`)
	for _, post := range posts {
		b.raw("<li>")
		b.open("a", "href", "/blog/"+post.Slug)
		b.el("h3", post.Title)
		b.close("a")
		if !post.Date.IsZero() {
			b.open("time", "datetime", post.Date.Format(time.RFC3339))
			b.text(post.Date.Format("Jan 2, 2006"))
			b.close("time")
		}
		if post.Excerpt != "" {
			b.el("p", post.Excerpt)
		}
		b.raw("</li>")
	}
	b.raw("</ul>")
}

// PostView is a compiled post.
type PostView struct {
	Slug     string
	Title    string
	Author   string
	Date     time.Time
	Tags     []string
	Cover    string
	Document *markdown.Document
}

// BlogPost renders a compiled post with its outline.
func BlogPost(p Page, v PostView) templ.Component {
	return Layout(p, component(func(b *builder) {
		b.raw(`<article class="post">`)
		b.raw("<header>")
		b.el("h1", v.Title)
		b.raw(`<p class="muted">`)
		if v.Author != "" {
			b.text("by " + v.Author + " · ")
		}
		if !v.Date.IsZero() {
			b.open("time", "datetime", v.Date.Format(time.RFC3339))
			b.text(v.Date.Format("2 January 2006"))
			b.close("time")
			b.text(" · ")
		}
		b.int(max(v.Document.ReadingTime, 1))
		b.text(" min read")
		b.raw("</p>")
		tags(b, "/blog", v.Tags)
		b.raw("</header>")

		b.render(Outline(v.Document.Outline))
		b.raw(`<div class="prose">`)
		b.render(templ.Raw(v.Document.HTML))
		b.raw("</div></article>")
	}))
}

// Outline is the table of contents of a post.
func Outline(hs []markdown.Heading) templ.Component {
	return component(func(b *builder) {
		if len(hs) < 2 {
			return
		}
		b.raw(`<nav class="toc" aria-label="Contents"><h2>Contents</h2><ol>`)
		for _, h := range hs {
			b.open("li", "class", "toc-h"+itoa(h.Level))
			b.el("a", h.Text, "href", "#"+h.ID)
			b.close("li")
		}
		b.raw("</ol></nav>")
	})
}

// Preview is the admin markdown preview fragment.
func Preview(doc *markdown.Document) templ.Component {
	return component(func(b *builder) {
		b.raw(`<div class="preview">`)
		if doc.Meta.Title != "" {
			b.el("h1", doc.Meta.Title)
		}
		b.open("p", "class", "muted")
		b.int(doc.Words)
		b.text(" words · ")
		b.int(doc.ReadingTime)
		b.text(" min read")
		b.close("p")
		b.render(Outline(doc.Outline))
		b.raw(`<div class="prose">`)
		b.render(templ.Raw(doc.HTML))
		b.raw("</div></div>")
	})
}
