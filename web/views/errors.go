package views

import "github.com/a-h/templ"

// ErrorPage is the browser-facing error screen.
func ErrorPage(p Page, status int, message string) templ.Component {
	return Layout(p, component(func(b *builder) {
		b.raw(`<section class="error-page">`)
		b.open("p", "class", "status")
		b.int(status)
		b.close("p")
		b.el("h1", message)
		b.el("a", "Back to the front page", "href", "/", "class", "button")
		b.raw("</section>")
	}))
}
