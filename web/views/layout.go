package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/pkg/theme"
)

// User is the signed-in visitor shown in the header.
type User struct {
	Name string
	Role string
}

// CanEdit reports whether the user may open the admin area.
func (u *User) CanEdit() bool {
	return u != nil && (u.Role == "admin" || u.Role == "editor")
}

// Page carries what every layout render needs.
type Page struct {
	AppName     string
	Title       string
	Description string
	// Path is the current request URI, used as the return target of forms.
	Path       string
	Theme      theme.Mode
	Preference theme.Preference
	User       *User
	Flash      *cookie.Flash
	// Scripts are extra script URLs loaded with defer.
	Scripts []string
	// Canonical is the absolute URL of the page when known.
	Canonical string
}

func (p Page) title() string {
	switch {
	case p.Title == "":
		return p.AppName
	case p.AppName == "":
		return p.Title
	}
	return p.Title + " · " + p.AppName
}

// Layout wraps body in the site chrome.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(b *builder) {
		b.raw("<!DOCTYPE html>")
		b.open("html", "lang", "en", "data-theme", string(p.Theme))
		b.raw("<head>")
		b.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.el("title", p.title())
		if p.Description != "" {
			b.open("meta", "name", "description", "content", p.Description)
		}
		if p.Canonical != "" {
			b.open("link", "rel", "canonical", "href", p.Canonical)
		}
		b.open("meta", "name", "color-scheme", "content", string(p.Theme))
		b.open("link", "rel", "stylesheet", "href", "/assets/app.css")
		b.open("link", "rel", "stylesheet", "href", "/assets/highlight.css")
		for _, s := range p.Scripts {
			b.openFlagged("script", []flag{{"defer", true}}, "src", s)
			b.close("script")
		}
		b.raw("</head><body>")

		header(b, p)
		if p.Flash != nil && p.Flash.Message != "" {
			b.open("div", "class", "flash flash-"+string(p.Flash.Kind), "role", "status")
			b.text(p.Flash.Message)
			b.close("div")
		}
		b.raw(`<main class="container">`)
		b.render(body)
		b.raw("</main>")
		b.open("footer", "class", "container")
		b.text("© " + p.AppName)
		b.close("footer")
		b.raw("</body></html>")
	})
}

func header(b *builder, p Page) {
	b.raw(`<header class="site-header container"><nav>`)
	b.el("a", p.AppName, "href", "/", "class", "brand")
	b.el("a", "Comics", "href", "/comics")
	b.el("a", "Blog", "href", "/blog")
	if p.User.CanEdit() {
		b.el("a", "Admin", "href", "/admin")
	}
	b.raw("</nav>")

	themeSwitch(b, p)

	b.raw(`<div class="account">`)
	if p.User != nil {
		b.el("span", p.User.Name, "class", "user")
		b.open("form", "method", "post", "action", "/logout", "class", "inline")
		b.el("button", "Sign out", "type", "submit")
		b.close("form")
	} else {
		b.el("a", "Sign in", "href", "/login")
		b.el("a", "Sign up", "href", "/signup", "class", "button")
	}
	b.raw("</div></header>")
}

func themeSwitch(b *builder, p Page) {
	b.open("form", "method", "post", "action", "/theme", "class", "theme-switch")
	b.open("input", "type", "hidden", "name", "next", "value", p.Path)
	b.open("select", "name", "preference", "aria-label", "Theme")
	for _, opt := range []theme.Preference{theme.PreferenceSystem, theme.PreferenceLight, theme.PreferenceDark} {
		b.openFlagged("option", []flag{{"selected", opt == p.Preference}}, "value", string(opt))
		b.text(string(opt))
		b.close("option")
	}
	b.close("select")
	b.el("button", "Apply", "type", "submit")
	b.close("form")
}

// Pager links the pages of a listing.
type Pager struct {
	Page  int
	Pages int
	// URL builds the link of page n.
	URL func(n int) string
}

func pager(b *builder, p Pager) {
	if p.Pages <= 1 || p.URL == nil {
		return
	}
	b.raw(`<nav class="pager" aria-label="Pagination">`)
	if p.Page > 1 {
		b.el("a", "← Newer", "href", p.URL(p.Page-1), "rel", "prev")
	}
	b.open("span")
	b.int(p.Page)
	b.text(" / ")
	b.int(p.Pages)
	b.close("span")
	if p.Page < p.Pages {
		b.el("a", "Older →", "href", p.URL(p.Page+1), "rel", "next")
	}
	b.raw("</nav>")
}

func tags(b *builder, base string, ts []string) {
	if len(ts) == 0 {
		return
	}
	b.raw(`<ul class="tags">`)
	for _, t := range ts {
		b.raw("<li>")
		b.el("a", "#"+t, "href", base+"?tag="+url.QueryEscape(t))
		b.raw("</li>")
	}
	b.raw("</ul>")
}
