package web

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/core/sanitizer"
	"github.com/dmitrymomot/panelhouse/core/validator"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/web/views"
)

func (a *App) loginPage(ctx *router.Context) handler.Response {
	return response.Templ(views.Login(a.page(ctx, "Sign in"), views.AuthForm{Next: ctx.Request().URL.Query().Get("next")}))
}

func (a *App) signupPage(ctx *router.Context) handler.Response {
	return response.Templ(views.Signup(a.page(ctx, "Create an account"), views.AuthForm{Next: ctx.Request().URL.Query().Get("next")}))
}

func (a *App) login(ctx *router.Context) handler.Response {
	var f views.AuthForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	if err := sanitizer.SanitizeStruct(&f); err != nil {
		return response.Error(err)
	}
	if err := validator.Apply(
		validator.RequiredString("email", f.Email),
		validator.RequiredString("password", f.Password),
	); err != nil {
		f.Error = "Enter your email and password."
		return response.TemplWithStatus(views.Login(a.page(ctx, "Sign in"), f), http.StatusUnprocessableEntity)
	}

	s, err := a.content.Login(ctx, contentapi.Credentials{Email: f.Email, Password: f.Password})
	switch {
	case errors.Is(err, contentapi.ErrUnauthorized), errors.Is(err, contentapi.ErrInvalid):
		f.Error = "The email or password is incorrect."
		return response.TemplWithStatus(views.Login(a.page(ctx, "Sign in"), f), http.StatusUnauthorized)
	case err != nil:
		return response.Error(err)
	}
	return a.signIn(ctx, s, f.Next, "Welcome back, "+s.User.Name+".")
}

func (a *App) signup(ctx *router.Context) handler.Response {
	var f views.AuthForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	if err := sanitizer.SanitizeStruct(&f); err != nil {
		return response.Error(err)
	}
	if err := validator.Apply(
		validator.RequiredString("name", f.Name),
		validator.RequiredString("email", f.Email),
		validator.ValidEmail("email", f.Email),
		validator.RequiredString("password", f.Password),
		validator.MinLenString("password", f.Password, minPasswordLen),
	); err != nil {
		f.Error = "Enter your name, a valid email and a password of at least 8 characters."
		return response.TemplWithStatus(views.Signup(a.page(ctx, "Create an account"), f), http.StatusUnprocessableEntity)
	}

	s, err := a.content.Register(ctx, contentapi.Registration{Name: f.Name, Email: f.Email, Password: f.Password})
	switch {
	case errors.Is(err, contentapi.ErrConflict):
		f.Error = "An account with this email already exists."
		return response.TemplWithStatus(views.Signup(a.page(ctx, "Create an account"), f), http.StatusConflict)
	case errors.Is(err, contentapi.ErrInvalid):
		f.Error = apiMessage(err, "Please check the form and try again.")
		return response.TemplWithStatus(views.Signup(a.page(ctx, "Create an account"), f), http.StatusUnprocessableEntity)
	case err != nil:
		return response.Error(err)
	}
	return a.signIn(ctx, s, f.Next, "Your account is ready.")
}

const minPasswordLen = 8

func (a *App) signIn(ctx *router.Context, s contentapi.Session, next, msg string) handler.Response {
	if err := a.sessions.SignIn(ctx.ResponseWriter(), s.Token, principalOf(s.User)); err != nil {
		return response.Error(err)
	}
	a.logger.InfoContext(ctx, "signed in", logger.UserID(s.User.ID), logger.Event("auth.sign_in"))
	a.flash(ctx, cookie.FlashSuccess, msg)
	return redirect(safeNext(next, "/"))
}

func (a *App) logout(ctx *router.Context) handler.Response {
	a.sessions.SignOut(ctx.ResponseWriter())
	a.flash(ctx, cookie.FlashInfo, "You have been signed out.")
	return redirect("/")
}

// apiMessage returns the content API's message for err, or fallback.
func apiMessage(err error, fallback string) string {
	var apiErr *contentapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
