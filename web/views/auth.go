package views

import "github.com/a-h/templ"

// AuthForm backs the sign-in and sign-up screens.
type AuthForm struct {
	Name     string `form:"name" sanitize:"single_line,max:80"`
	Email    string `form:"email" sanitize:"email"`
	Password string `form:"password,raw"`
	Next     string `form:"next"`
	Error    string `form:"-"`
}

// Login is the sign-in screen.
func Login(p Page, f AuthForm) templ.Component {
	return Layout(p, authForm("Sign in", "/login", f, false))
}

// Signup is the registration screen.
func Signup(p Page, f AuthForm) templ.Component {
	return Layout(p, authForm("Create an account", "/signup", f, true))
}

func authForm(title, action string, f AuthForm, withName bool) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="auth">`)
		b.el("h1", title)
		if f.Error != "" {
			b.el("p", f.Error, "class", "form-error", "role", "alert")
		}
		b.open("form", "method", "post", "action", action)
		b.open("input", "type", "hidden", "name", "next", "value", f.Next)
		if withName {
			field(b, "Name", "text", "name", f.Name, true)
		}
		field(b, "Email", "email", "email", f.Email, true)
		field(b, "Password", "password", "password", "", true)
		b.el("button", title, "type", "submit", "class", "button primary")
		b.close("form")
		if withName {
			b.open("p")
			b.text("Already registered? ")
			b.el("a", "Sign in", "href", "/login")
			b.close("p")
		} else {
			b.open("p")
			b.text("New here? ")
			b.el("a", "Create an account", "href", "/signup")
			b.close("p")
		}
		b.raw("</section>")
	})
}

func field(b *builder, label, typ, name, value string, required bool) {
	b.open("label")
	b.el("span", label)
	b.openFlagged("input", []flag{{"required", required}}, "type", typ, "name", name, "value", value)
	b.close("label")
}
