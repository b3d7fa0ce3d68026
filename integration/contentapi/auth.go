package contentapi

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, in Credentials) (Session, error) {
	var s Session
	if err := c.send(ctx, call{op: "Login", method: http.MethodPost, path: "/auth/login", body: in}, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, fmt.Errorf("%w: login returned no token", ErrUnavailable)
	}
	return s, nil
}

// Register creates a reader account and signs it in.
func (c *Client) Register(ctx context.Context, in Registration) (Session, error) {
	var s Session
	if err := c.send(ctx, call{op: "Register", method: http.MethodPost, path: "/auth/register", body: in}, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		return Session{}, fmt.Errorf("%w: register returned no token", ErrUnavailable)
	}
	return s, nil
}

// Me returns the user owning the context's access token.
func (c *Client) Me(ctx context.Context) (User, error) {
	if tokenFrom(ctx) == "" {
		return User{}, ErrUnauthorized
	}
	var u User
	err := c.get(ctx, call{op: "Me", path: "/auth/me"}, &u)
	return u, err
}
