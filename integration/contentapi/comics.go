package contentapi

import (
	"context"
	"net/http"
	"net/url"
)

const (
	comicsPath = "/comics"
	postsPath  = "/posts"
	statsPath  = "/stats"
)

// ListComics returns one page of comics, newest first.
func (c *Client) ListComics(ctx context.Context, opts ListOptions) (Page[Comic], error) {
	var page Page[Comic]
	err := c.get(ctx, call{op: "ListComics", path: comicsPath, query: opts.query()}, &page)
	return page, err
}

// GetComic fetches a comic by slug or ID.
func (c *Client) GetComic(ctx context.Context, ref string) (Comic, error) {
	var comic Comic
	err := c.get(ctx, call{op: "GetComic", path: comicsPath + "/" + url.PathEscape(ref)}, &comic)
	return comic, err
}

// CreateComic stores a new comic and returns it as saved.
func (c *Client) CreateComic(ctx context.Context, in Comic) (Comic, error) {
	var out Comic
	err := c.send(ctx, call{op: "CreateComic", method: http.MethodPost, path: comicsPath, body: in}, &out, comicsPath, statsPath)
	return out, err
}

// UpdateComic replaces the comic with the given ID.
func (c *Client) UpdateComic(ctx context.Context, id string, in Comic) (Comic, error) {
	var out Comic
	err := c.send(ctx, call{op: "UpdateComic", method: http.MethodPut, path: comicsPath + "/" + url.PathEscape(id), body: in}, &out, comicsPath, statsPath)
	return out, err
}

// DeleteComic removes the comic with the given ID.
func (c *Client) DeleteComic(ctx context.Context, id string) error {
	return c.send(ctx, call{op: "DeleteComic", method: http.MethodDelete, path: comicsPath + "/" + url.PathEscape(id)}, nil, comicsPath, statsPath)
}

// Stats returns the dashboard counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.get(ctx, call{op: "Stats", path: statsPath}, &s)
	return s, err
}

// Ping checks that the API answers. It bypasses cache and retries.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, call{op: "Ping", method: http.MethodGet, path: "/health", once: true})
	return err
}
