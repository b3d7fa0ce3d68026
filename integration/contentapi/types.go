package contentapi

import (
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/panelhouse/pkg/format"
)

// Publication states of comics and posts.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Comic is a published or draft comic with its format manifest.
type Comic struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Author      string          `json:"author,omitempty"`
	Cover       string          `json:"cover,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Pages       int             `json:"pages,omitempty"`
	Status      string          `json:"status"`
	Format      format.Manifest `json:"format"`
	PublishedAt time.Time       `json:"publishedAt,omitzero"`
	UpdatedAt   time.Time       `json:"updatedAt,omitzero"`
}

// Post is a blog post. Body is the markdown source.
type Post struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Author      string    `json:"author,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"publishedAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

// Pages returns the number of pages; at least one.
func (p Page[T]) Pages() int {
	if p.PerPage <= 0 || p.Total <= p.PerPage {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasNext reports whether another page follows.
func (p Page[T]) HasNext() bool { return p.Page < p.Pages() }

// ListOptions filter listings. Zero values are omitted from the query.
type ListOptions struct {
	Page    int
	PerPage int
	Tag     string
	// Status filters by publication state; drafts require an access token.
	Status string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(o.PerPage))
	}
	if o.Tag != "" {
		q.Set("tag", o.Tag)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	return q
}

// Stats feed the admin dashboard.
type Stats struct {
	Comics          int `json:"comics"`
	PublishedComics int `json:"publishedComics"`
	Posts           int `json:"posts"`
	PublishedPosts  int `json:"publishedPosts"`
	Users           int `json:"users"`
	Views           int `json:"views"`
}

// User is an account of the content API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Roles known to the back-office.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleReader = "reader"
)

// Credentials sign a user in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration creates an account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of Login and Register.
type Session struct {
	Token     string    `json:"accessToken"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	User      User      `json:"user"`
}
