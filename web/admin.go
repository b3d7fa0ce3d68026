package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/cookie"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/web/views"
)

func (a *App) dashboard(ctx *router.Context) handler.Response {
	stats, err := a.content.Stats(authed(ctx))
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.Dashboard(a.page(ctx, "Dashboard"), stats))
}

func (a *App) adminComics(ctx *router.Context) handler.Response {
	var q listQuery
	if err := binder.Query()(ctx.Request(), &q); err != nil {
		return response.Error(err)
	}
	list, err := a.content.ListComics(authed(ctx), contentapi.ListOptions{Page: q.page(), PerPage: a.cfg.PageSize, Tag: q.Tag})
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.AdminComics(a.page(ctx, "Comics"), list.Items, pagerFor("/admin/comics", list, q.Tag)))
}

func (a *App) newComic(ctx *router.Context) handler.Response {
	return response.Templ(views.ComicEditor(a.page(ctx, "New comic"), views.ComicForm{}))
}

func (a *App) editComic(ctx *router.Context) handler.Response {
	c, err := a.content.GetComic(authed(ctx), ctx.Param("id"))
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.ComicEditor(a.page(ctx, "Edit comic"), comicForm(c)))
}

func (a *App) createComic(ctx *router.Context) handler.Response {
	return a.saveComic(ctx, "")
}

func (a *App) updateComic(ctx *router.Context) handler.Response {
	return a.saveComic(ctx, ctx.Param("id"))
}

// saveComic creates the comic when id is empty and updates it otherwise.
// Invalid input re-renders the editor with the field errors.
func (a *App) saveComic(ctx *router.Context, id string) handler.Response {
	var f views.ComicForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	f.ID = id
	c, errs := comicFromForm(&f)
	if len(errs) > 0 {
		return a.comicEditor(ctx, f, errs)
	}

	var err error
	if id == "" {
		c, err = a.content.CreateComic(authed(ctx), c)
	} else {
		c, err = a.content.UpdateComic(authed(ctx), id, c)
	}
	if fe := fieldErrors(err); fe != nil && isInvalid(err) {
		return a.comicEditor(ctx, f, fe)
	}
	if err != nil {
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "comic saved", logger.Action(action(id)), logger.Slug(c.Slug))
	a.flash(ctx, cookie.FlashSuccess, "Saved “"+c.Title+"”.")
	return redirect("/admin/comics")
}

func (a *App) comicEditor(ctx *router.Context, f views.ComicForm, errs map[string]string) handler.Response {
	f.Errors = errs
	return response.TemplWithStatus(views.ComicEditor(a.page(ctx, "Edit comic"), f), http.StatusUnprocessableEntity)
}

func (a *App) deleteComic(ctx *router.Context) handler.Response {
	id := ctx.Param("id")
	if err := a.content.DeleteComic(authed(ctx), id); err != nil {
		return response.Error(err)
	}
	a.logger.InfoContext(ctx, "comic deleted", logger.Action("delete"), logger.Slug(id))
	a.flash(ctx, cookie.FlashSuccess, "Comic deleted.")
	return redirect("/admin/comics")
}

func (a *App) adminPosts(ctx *router.Context) handler.Response {
	var q listQuery
	if err := binder.Query()(ctx.Request(), &q); err != nil {
		return response.Error(err)
	}
	list, err := a.content.ListPosts(authed(ctx), contentapi.ListOptions{Page: q.page(), PerPage: a.cfg.PageSize, Tag: q.Tag})
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.AdminPosts(a.page(ctx, "Posts"), list.Items, pagerFor("/admin/posts", list, q.Tag)))
}

func (a *App) newPost(ctx *router.Context) handler.Response {
	return response.Templ(views.PostEditor(a.page(ctx, "New post"), views.PostForm{}))
}

func (a *App) editPost(ctx *router.Context) handler.Response {
	p, err := a.content.GetPost(authed(ctx), ctx.Param("id"))
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.PostEditor(a.page(ctx, "Edit post"), postForm(p)))
}

func (a *App) createPost(ctx *router.Context) handler.Response {
	return a.savePost(ctx, "")
}

func (a *App) updatePost(ctx *router.Context) handler.Response {
	return a.savePost(ctx, ctx.Param("id"))
}

func (a *App) savePost(ctx *router.Context, id string) handler.Response {
	var f views.PostForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	f.ID = id
	p, errs := a.postFromForm(&f)
	if len(errs) > 0 {
		return a.postEditor(ctx, f, errs)
	}

	var err error
	if id == "" {
		p, err = a.content.CreatePost(authed(ctx), p)
	} else {
		p, err = a.content.UpdatePost(authed(ctx), id, p)
	}
	if fe := fieldErrors(err); fe != nil && isInvalid(err) {
		return a.postEditor(ctx, f, fe)
	}
	if err != nil {
		return response.Error(err)
	}

	a.logger.InfoContext(ctx, "post saved", logger.Action(action(id)), logger.Slug(p.Slug))
	a.flash(ctx, cookie.FlashSuccess, "Saved “"+p.Title+"”.")
	return redirect("/admin/posts")
}

func (a *App) postEditor(ctx *router.Context, f views.PostForm, errs map[string]string) handler.Response {
	f.Errors = errs
	return response.TemplWithStatus(views.PostEditor(a.page(ctx, "Edit post"), f), http.StatusUnprocessableEntity)
}

func (a *App) deletePost(ctx *router.Context) handler.Response {
	id := ctx.Param("id")
	if err := a.content.DeletePost(authed(ctx), id); err != nil {
		return response.Error(err)
	}
	a.logger.InfoContext(ctx, "post deleted", logger.Action("delete"), logger.Slug(id))
	a.flash(ctx, cookie.FlashSuccess, "Post deleted.")
	return redirect("/admin/posts")
}

// previewPost compiles the submitted body without saving it. The fragment
// is shown in the editor's preview frame.
func (a *App) previewPost(ctx *router.Context) handler.Response {
	var f views.PostForm
	if err := binder.Form()(ctx.Request(), &f); err != nil {
		return response.Error(err)
	}
	doc, err := a.compiler.CompileWith([]byte(f.Body), a.comicEmbeds(authed(ctx)))
	if err != nil {
		return response.Error(response.ErrUnprocessableEntity.WithMessage(err.Error()))
	}
	return response.Templ(views.Preview(doc))
}

type uploadForm struct {
	File *multipart.FileHeader `file:"file"`
}

// upload stores an image or PDF and answers with the stored asset.
func (a *App) upload(ctx *router.Context) handler.Response {
	if a.uploads == nil {
		return response.Error(response.ErrServiceUnavailable.WithMessage("Uploads are not configured."))
	}
	r := ctx.Request()
	var f uploadForm
	if err := binder.Form()(r, &f); err != nil {
		return response.Error(err)
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if f.File == nil {
		return response.Error(response.ErrBadRequest.WithMessage("Choose a file to upload."))
	}

	file, err := f.File.Open()
	if err != nil {
		return response.Error(err)
	}
	defer file.Close()

	asset, err := a.uploads.Upload(ctx, f.File.Filename, file)
	if err != nil {
		return response.Error(err)
	}
	a.logger.InfoContext(ctx, "asset uploaded",
		logger.Action("upload"),
		logger.Component("uploads"),
		logger.Path(asset.Key),
	)
	return response.JSONWithStatus(asset, http.StatusCreated)
}

func isInvalid(err error) bool {
	return errors.Is(err, contentapi.ErrInvalid)
}

func action(id string) string {
	if id == "" {
		return "create"
	}
	return "update"
}
