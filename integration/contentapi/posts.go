package contentapi

import (
	"context"
	"net/http"
	"net/url"
)

// ListPosts returns one page of posts, newest first. Bodies may be omitted.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (Page[Post], error) {
	var page Page[Post]
	err := c.get(ctx, call{op: "ListPosts", path: postsPath, query: opts.query()}, &page)
	return page, err
}

// GetPost fetches a post with its markdown body by slug or ID.
func (c *Client) GetPost(ctx context.Context, ref string) (Post, error) {
	var post Post
	err := c.get(ctx, call{op: "GetPost", path: postsPath + "/" + url.PathEscape(ref)}, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, in Post) (Post, error) {
	var out Post
	err := c.send(ctx, call{op: "CreatePost", method: http.MethodPost, path: postsPath, body: in}, &out, postsPath, statsPath)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, in Post) (Post, error) {
	var out Post
	err := c.send(ctx, call{op: "UpdatePost", method: http.MethodPut, path: postsPath + "/" + url.PathEscape(id), body: in}, &out, postsPath, statsPath)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.send(ctx, call{op: "DeletePost", method: http.MethodDelete, path: postsPath + "/" + url.PathEscape(id)}, nil, postsPath, statsPath)
}
