package web

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/panelhouse/core/binder"
	"github.com/dmitrymomot/panelhouse/core/handler"
	"github.com/dmitrymomot/panelhouse/core/logger"
	"github.com/dmitrymomot/panelhouse/core/response"
	"github.com/dmitrymomot/panelhouse/core/router"
	"github.com/dmitrymomot/panelhouse/integration/contentapi"
	"github.com/dmitrymomot/panelhouse/middleware"
	"github.com/dmitrymomot/panelhouse/pkg/device"
	"github.com/dmitrymomot/panelhouse/pkg/format"
	"github.com/dmitrymomot/panelhouse/pkg/qrcode"
	"github.com/dmitrymomot/panelhouse/web/views"
)

const (
	homeComics = 8
	homePosts  = 3
	qrSize     = 320
)

func (a *App) home(ctx *router.Context) handler.Response {
	var (
		comics contentapi.Page[contentapi.Comic]
		posts  contentapi.Page[contentapi.Post]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		comics, err = a.content.ListComics(gctx, contentapi.ListOptions{PerPage: homeComics, Status: contentapi.StatusPublished})
		return err
	})
	g.Go(func() (err error) {
		posts, err = a.content.ListPosts(gctx, contentapi.ListOptions{PerPage: homePosts, Status: contentapi.StatusPublished})
		return err
	})
	if err := g.Wait(); err != nil {
		return response.Error(err)
	}

	p := a.page(ctx, "")
	p.Description = "Comics and stories, sized for the screen you read on."
	return response.Templ(views.Home(p, a.comicCards(ctx, comics.Items), a.postCards(ctx, posts.Items)))
}

func (a *App) comics(ctx *router.Context) handler.Response {
	var q listQuery
	if err := binder.Query()(ctx.Request(), &q); err != nil {
		return response.Error(err)
	}
	list, err := a.content.ListComics(ctx, contentapi.ListOptions{
		Page:    q.page(),
		PerPage: a.cfg.PageSize,
		Tag:     q.Tag,
		Status:  contentapi.StatusPublished,
	})
	if err != nil {
		return response.Error(err)
	}
	return response.Templ(views.ComicList(a.page(ctx, "Comics"), a.comicCards(ctx, list.Items), pagerFor("/comics", list, q.Tag), q.Tag))
}

// visibleComic loads a comic by slug. Drafts exist only for editors.
func (a *App) visibleComic(ctx *router.Context) (contentapi.Comic, error) {
	slug := ctx.Param("slug")
	var (
		c   contentapi.Comic
		err error
	)
	if canEdit(ctx) {
		c, err = a.content.GetComic(authed(ctx), slug)
	} else {
		c, err = a.content.GetComic(ctx, slug)
	}
	if err != nil {
		return contentapi.Comic{}, err
	}
	if c.Status != contentapi.StatusPublished && !canEdit(ctx) {
		return contentapi.Comic{}, contentapi.ErrNotFound
	}
	return c, nil
}

func (a *App) comic(ctx *router.Context) handler.Response {
	c, err := a.visibleComic(ctx)
	if err != nil {
		return response.Error(err)
	}
	p := a.page(ctx, c.Title)
	p.Description = c.Description
	return response.Templ(views.ComicDetail(p, views.ComicView{
		ComicCard:   a.comicCard(ctx, c),
		Description: c.Description,
		Pages:       c.Pages,
		PublishedAt: c.PublishedAt,
		ReadURL:     "/comics/" + c.Slug + "/read",
		QRURL:       "/comics/" + c.Slug + "/qr.png",
	}))
}

func (a *App) reader(ctx *router.Context) handler.Response {
	c, err := a.visibleComic(ctx)
	if err != nil {
		return response.Error(err)
	}
	profile := middleware.GetDevice(ctx)
	sel := a.choose(ctx, c, profile)

	p := a.page(ctx, c.Title)
	p.Scripts = []string{"/assets/reader.js"}
	return response.WithHeader(
		response.Templ(views.Reader(p, views.ReaderView{
			Slug:      c.Slug,
			Title:     c.Title,
			Selection: sel,
			Profile:   profile,
			Endpoint:  "/api/comics/" + c.Slug + "/format",
		})),
		"Cache-Control", "private, no-cache",
	)
}

// choose selects the representation for profile, records it and resolves the
// chosen references.
func (a *App) choose(ctx context.Context, c contentapi.Comic, profile device.Profile) format.Selection {
	sel := a.selector.Select(c.Format, profile)
	if a.metrics != nil {
		a.metrics.ObserveSelection(string(sel.Kind), string(profile.Class), sel.Fallback)
	}
	a.logger.DebugContext(ctx, "format selected",
		logger.Slug(c.Slug),
		logger.Format(string(sel.Kind)),
		logger.DeviceClass(string(profile.Class)),
	)
	if !sel.Available() {
		a.logger.WarnContext(ctx, "comic has nothing to render", logger.Slug(c.Slug), logger.Error(sel.Err()))
	}
	switch sel.Kind {
	case format.KindPDF:
		sel.Ref = a.resolve(ctx, sel.Ref)
	case format.KindImages:
		sel.Refs = a.resolveAll(ctx, sel.Refs)
	}
	return sel
}

func (a *App) comicQR(ctx *router.Context) handler.Response {
	c, err := a.visibleComic(ctx)
	if err != nil {
		return response.Error(err)
	}
	png, err := qrcode.Generate(strings.TrimSuffix(a.cfg.BaseURL, "/")+"/comics/"+c.Slug+"/read", qrSize)
	if err != nil {
		return response.Error(err)
	}
	return response.WithHeader(response.Bytes(png, "image/png", http.StatusOK), "Cache-Control", assetCacheControl)
}

func (a *App) comicCard(ctx context.Context, c contentapi.Comic) views.ComicCard {
	return views.ComicCard{
		Slug:   c.Slug,
		Title:  c.Title,
		Author: c.Author,
		Cover:  a.resolve(ctx, c.Cover),
		Tags:   c.Tags,
	}
}

func (a *App) comicCards(ctx context.Context, cs []contentapi.Comic) []views.ComicCard {
	out := make([]views.ComicCard, 0, len(cs))
	for _, c := range cs {
		out = append(out, a.comicCard(ctx, c))
	}
	return out
}

func (a *App) postCards(ctx context.Context, ps []contentapi.Post) []views.PostCard {
	out := make([]views.PostCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, views.PostCard{
			Slug:    p.Slug,
			Title:   p.Title,
			Excerpt: p.Excerpt,
			Cover:   a.resolve(ctx, p.Cover),
			Date:    p.PublishedAt,
			Tags:    p.Tags,
		})
	}
	return out
}
