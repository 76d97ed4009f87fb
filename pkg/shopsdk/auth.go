package shopsdk

import (
	"context"
	"net/http"
)

// Login exchanges email and password for a raw credential.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var token string
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", req, &token); err != nil {
		return "", err
	}
	return token, nil
}

// Signup registers an account. It does not log in.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodPost, "/auth/signup", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
