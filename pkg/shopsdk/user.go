package shopsdk

import (
	"context"
	"net/http"
	"net/url"
)

// GetProfile returns the caller's own account.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	return c.userCall(ctx, http.MethodGet, "/user/me/profile", nil)
}

// UpdateUser edits the profile of user id.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	return c.userCall(ctx, http.MethodPut, userPath(id, ""), req)
}

// UpdatePassword changes the password of user id and returns the
// backend's confirmation message.
func (c *Client) UpdatePassword(ctx context.Context, id string, req UpdatePasswordRequest) (string, error) {
	return c.do(ctx, http.MethodPut, userPath(id, "/password"), req, nil)
}

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if _, err := c.do(ctx, http.MethodGet, "/user/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one account.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	return c.userCall(ctx, http.MethodGet, userPath(id, ""), nil)
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, userPath(id, ""), nil, nil)
	return err
}

func userPath(id, suffix string) string {
	return "/user/" + url.PathEscape(id) + suffix
}

func (c *Client) userCall(ctx context.Context, method, path string, in any) (*User, error) {
	var user User
	if _, err := c.do(ctx, method, path, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
