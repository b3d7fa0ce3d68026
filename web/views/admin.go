package views

import (
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/pkg/format"
)

// Dashboard shows the content API statistics.
func Dashboard(p Page, s contentapi.Stats) templ.Component {
	return Layout(p, component(func(b *builder) {
		adminNav(b)
		b.el("h1", "Dashboard")
		b.raw(`<dl class="stats">`)
		stat(b, "Comics", s.Comics, s.PublishedComics)
		stat(b, "Posts", s.Posts, s.PublishedPosts)
		stat(b, "Users", s.Users, -1)
		stat(b, "Views", s.Views, -1)
		b.raw("</dl>")
		b.raw(`<p class="actions">`)
		b.el("a", "New comic", "href", "/admin/comics/new", "class", "button primary")
		b.el("a", "New post", "href", "/admin/posts/new", "class", "button")
		b.raw("</p>")
	}))
}

func stat(b *builder, label string, total, published int) {
	b.raw("<div>")
	b.el("dt", label)
	b.open("dd")
	b.int(total)
	if published >= 0 {
		b.el("small", " ("+itoa(published)+" published)")
	}
	b.close("dd")
	b.raw("</div>")
}

func adminNav(b *builder) {
	b.raw(`<nav class="admin-nav">`)
	b.el("a", "Dashboard", "href", "/admin")
	b.el("a", "Comics", "href", "/admin/comics")
	b.el("a", "Posts", "href", "/admin/posts")
	b.raw("</nav>")
}

// AdminComics lists comics with edit and delete actions.
func AdminComics(p Page, comics []contentapi.Comic, pg Pager) templ.Component {
	return Layout(p, component(func(b *builder) {
		adminNav(b)
		b.raw(`<div class="toolbar">`)
		b.el("h1", "Comics")
		b.el("a", "New comic", "href", "/admin/comics/new", "class", "button primary")
		b.raw("</div>")
		b.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Status</th><th>Format</th><th>Updated</th><th></th></tr></thead><tbody>`)
		for _, c := range comics {
			b.raw("<tr>")
			b.open("td")
			b.el("a", c.Title, "href", "/comics/"+c.Slug)
			b.close("td")
			b.el("td", c.Status, "class", "status-"+c.Status)
			b.el("td", formatSummary(c.Format))
			b.el("td", shortDate(c.UpdatedAt))
			rowActions(b, "/admin/comics/"+c.ID)
			b.raw("</tr>")
		}
		b.raw("</tbody></table>")
		pager(b, pg)
	}))
}

// AdminPosts lists posts with edit and delete actions.
func AdminPosts(p Page, posts []contentapi.Post, pg Pager) templ.Component {
	return Layout(p, component(func(b *builder) {
		adminNav(b)
		b.raw(`<div class="toolbar">`)
		b.el("h1", "Posts")
		b.el("a", "New post", "href", "/admin/posts/new", "class", "button primary")
		b.raw("</div>")
		b.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Status</th><th>Updated</th><th></th></tr></thead><tbody>`)
		for _, post := range posts {
			b.raw("<tr>")
			b.open("td")
			b.el("a", post.Title, "href", "/blog/"+post.Slug)
			b.close("td")
			b.el("td", post.Status, "class", "status-"+post.Status)
			b.el("td", shortDate(post.UpdatedAt))
			rowActions(b, "/admin/posts/"+post.ID)
			b.raw("</tr>")
		}
		b.raw("</tbody></table>")
		pager(b, pg)
	}))
}

func rowActions(b *builder, base string) {
	b.raw(`<td class="row-actions">`)
	b.el("a", "Edit", "href", base+"/edit")
	b.open("form", "method", "post", "action", base+"/delete", "class", "inline", "data-confirm", "Delete permanently?")
	b.el("button", "Delete", "type", "submit", "class", "danger")
	b.close("form")
	b.raw("</td>")
}

func formatSummary(m format.Manifest) string {
	s := string(m.Preferred.Normalize())
	if m.HasPDF() {
		s += " · pdf"
	}
	if m.HasImages() {
		s += " · images"
	}
	return s
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "–"
	}
	return t.Format("2006-01-02")
}

// ComicForm backs the comic editor. List fields hold one reference per line.
type ComicForm struct {
	ID          string            `form:"-"`
	Title       string            `form:"title" sanitize:"single_line" validate:"required;max:200"`
	Slug        string            `form:"slug" sanitize:"trim_lower" validate:"slug;max:80"`
	Description string            `form:"description,raw" sanitize:"trim,no_control" validate:"max:2000"`
	Author      string            `form:"author" sanitize:"single_line" validate:"max:120"`
	Cover       string            `form:"cover" sanitize:"trim"`
	Tags        string            `form:"tags" sanitize:"single_line" validate:"max:300"`
	Published   bool              `form:"published"`
	Preferred   string            `form:"preferred_format" sanitize:"trim_lower" validate:"in:auto,pdf,images"`
	PDF         string            `form:"pdf" sanitize:"trim"`
	Images      string            `form:"images,raw" sanitize:"lines"`
	TierLow     string            `form:"tier_low,raw" sanitize:"lines"`
	TierMedium  string            `form:"tier_medium,raw" sanitize:"lines"`
	TierHigh    string            `form:"tier_high,raw" sanitize:"lines"`
	Errors      map[string]string `form:"-"`
}

// ComicEditor renders the create or edit form.
func ComicEditor(p Page, f ComicForm) templ.Component {
	action := "/admin/comics/new"
	title := "New comic"
	if f.ID != "" {
		action = "/admin/comics/" + f.ID + "/edit"
		title = "Edit comic"
	}
	return Layout(p, component(func(b *builder) {
		adminNav(b)
		b.el("h1", title)
		formErrors(b, f.Errors)
		b.open("form", "method", "post", "action", action, "class", "editor")
		field(b, "Title", "text", "title", f.Title, true)
		field(b, "Slug", "text", "slug", f.Slug, false)
		textarea(b, "Description", "description", f.Description, 3)
		field(b, "Author", "text", "author", f.Author, false)
		field(b, "Cover", "text", "cover", f.Cover, false)
		field(b, "Tags (comma separated)", "text", "tags", f.Tags, false)
		checkbox(b, "Published", "published", f.Published)

		b.raw("<fieldset><legend>Format</legend>")
		b.open("label")
		b.el("span", "Preferred format")
		b.open("select", "name", "preferred_format")
		for _, pref := range []format.Preference{format.PreferAuto, format.PreferPDF, format.PreferImages} {
			b.openFlagged("option", []flag{{"selected", format.Preference(f.Preferred).Normalize() == pref}}, "value", string(pref))
			b.text(string(pref))
			b.close("option")
		}
		b.close("select")
		b.close("label")
		field(b, "PDF", "text", "pdf", f.PDF, false)
		textarea(b, "Images (one per line, in page order)", "images", f.Images, 6)
		textarea(b, "Low quality tier", "tier_low", f.TierLow, 4)
		textarea(b, "Medium quality tier", "tier_medium", f.TierMedium, 4)
		textarea(b, "High quality tier", "tier_high", f.TierHigh, 4)
		b.raw("</fieldset>")

		b.el("button", "Save", "type", "submit", "class", "button primary")
		b.close("form")
		uploadForm(b)
	}))
}

// PostForm backs the post editor.
type PostForm struct {
	ID        string            `form:"-"`
	Title     string            `form:"title" sanitize:"single_line" validate:"required;max:200"`
	Slug      string            `form:"slug" sanitize:"trim_lower" validate:"slug;max:80"`
	Excerpt   string            `form:"excerpt,raw" sanitize:"single_line" validate:"max:500"`
	Cover     string            `form:"cover" sanitize:"trim"`
	Tags      string            `form:"tags" sanitize:"single_line" validate:"max:300"`
	Published bool              `form:"published"`
	Body      string            `form:"body,raw"`
	Errors    map[string]string `form:"-"`
}

// PostEditor renders the create or edit form with a live preview target.
func PostEditor(p Page, f PostForm) templ.Component {
	action := "/admin/posts/new"
	title := "New post"
	if f.ID != "" {
		action = "/admin/posts/" + f.ID + "/edit"
		title = "Edit post"
	}
	return Layout(p, component(func(b *builder) {
		adminNav(b)
		b.el("h1", title)
		formErrors(b, f.Errors)
		b.open("form", "method", "post", "action", action, "class", "editor", "data-preview", "/admin/posts/preview")
		field(b, "Title", "text", "title", f.Title, false)
		field(b, "Slug", "text", "slug", f.Slug, false)
		textarea(b, "Excerpt", "excerpt", f.Excerpt, 2)
		field(b, "Cover", "text", "cover", f.Cover, false)
		field(b, "Tags (comma separated)", "text", "tags", f.Tags, false)
		checkbox(b, "Published", "published", f.Published)
		textarea(b, "Body (markdown)", "body", f.Body, 24)
		b.el("button", "Save", "type", "submit", "class", "button primary")
		b.el("button", "Preview", "type", "submit", "formaction", "/admin/posts/preview", "formtarget", "preview", "class", "button")
		b.close("form")
		b.open("iframe", "name", "preview", "title", "Preview", "class", "preview-frame")
		b.close("iframe")
		uploadForm(b)
	}))
}

func uploadForm(b *builder) {
	b.open("form", "method", "post", "action", "/admin/uploads", "enctype", "multipart/form-data", "class", "upload", "target", "upload-result")
	b.open("label")
	b.el("span", "Upload an image or PDF")
	b.openFlagged("input", []flag{{"required", true}}, "type", "file", "name", "file", "accept", "image/*,application/pdf")
	b.close("label")
	b.el("button", "Upload", "type", "submit", "class", "button")
	b.close("form")
	b.open("iframe", "name", "upload-result", "title", "Upload result", "class", "upload-result")
	b.close("iframe")
}

func formErrors(b *builder, errs map[string]string) {
	if len(errs) == 0 {
		return
	}
	b.raw(`<ul class="form-error" role="alert">`)
	for _, k := range sortedKeys(errs) {
		b.el("li", k+": "+errs[k])
	}
	b.raw("</ul>")
}

func textarea(b *builder, label, name, value string, rows int) {
	b.open("label")
	b.el("span", label)
	b.el("textarea", value, "name", name, "rows", itoa(rows))
	b.close("label")
}

func checkbox(b *builder, label, name string, checked bool) {
	b.open("label", "class", "checkbox")
	b.openFlagged("input", []flag{{"checked", checked}}, "type", "checkbox", "name", name, "value", "true")
	b.el("span", label)
	b.close("label")
}
