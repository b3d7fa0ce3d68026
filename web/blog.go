package web

import (
	"context"
	"strconv"

	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/pkg/markdown"
	"github.com/dmitrymomot/panelhouse/web/views"
)

func (a *App) blog(ctx *router.Context) handler.Response {
	var q listQuery
	if err := binder.Query()(ctx.Request(), &q); err != nil {
		return response.Error(err)
	}
	list, err := a.content.ListPosts(ctx, contentapi.ListOptions{
		Page:    q.page(),
		PerPage: a.cfg.PageSize,
		Tag:     q.Tag,
		Status:  contentapi.StatusPublished,
	})
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.BlogList(a.page(ctx, "Blog"), a.postCards(ctx, list.Items), pagerFor("/blog", list, q.Tag), q.Tag))
}

func (a *App) post(ctx *router.Context) handler.Response {
	var (
		p   contentapi.Post
		err error
	)
	editor := canEdit(ctx)
	if editor {
		p, err = a.content.GetPost(authed(ctx), ctx.Param("slug"))
	} else {
		p, err = a.content.GetPost(ctx, ctx.Param("slug"))
	}
	if err != nil {
		return response.Error(err)
	}
	if p.Status != contentapi.StatusPublished && !editor {
		return notFound()
	}

	doc, err := a.compilePost(ctx, p)
	if err != nil {
		return response.Error(err)
	}

	page := a.page(ctx, p.Title)
	page.Description = p.Excerpt
	if page.Description == "" {
		page.Description = doc.Meta.Description
	}
	cover := p.Cover
	if cover == "" {
		cover = doc.FirstImage
	}
	return response.Templ(views.BlogPost(page, views.PostView{
		Slug:     p.Slug,
		Title:    p.Title,
		Author:   p.Author,
		Date:     p.PublishedAt,
		Tags:     p.Tags,
		Cover:    a.resolve(ctx, cover),
		Document: doc,
	}))
}

// compilePost compiles the post body, reusing the result until the post
// changes.
func (a *App) compilePost(ctx context.Context, p contentapi.Post) (*markdown.Document, error) {
	key := p.Slug + "@" + strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)
	if doc, ok := a.posts.Get(key); ok {
		return doc, nil
	}
	doc, err := a.compiler.CompileWith([]byte(p.Body), a.comicEmbeds(ctx))
	if err != nil {
		return nil, err
	}
	a.posts.Put(key, doc)
	return doc, nil
}

// comicEmbeds resolves embedded comics through the content API. Drafts and
// missing comics are left out of the post.
func (a *App) comicEmbeds(ctx context.Context) markdown.ComicResolver {
	return func(slug string) (markdown.ComicEmbed, bool) {
		c, err := a.content.GetComic(ctx, slug)
		if err != nil {
			a.logger.DebugContext(ctx, "embedded comic not resolved", logger.Slug(slug), logger.Error(err))
			return markdown.ComicEmbed{}, false
		}
		if c.Status != contentapi.StatusPublished {
			return markdown.ComicEmbed{}, false
		}
		return markdown.ComicEmbed{
			Title: c.Title,
			Cover: a.resolve(ctx, c.Cover),
			URL:   "/comics/" + c.Slug,
		}, true
	}
}
