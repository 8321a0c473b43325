package apiclient

import (
	"context"
	"net/http"
)

// ListUsers returns every account. Super-admin only on the API side.
func (c *Client) ListUsers(ctx context.Context, credential string) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser provisions a new account and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, credential string, input UserInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/users", credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the account identified by id.
func (c *Client) DeleteUser(ctx context.Context, credential, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, credential, nil, nil)
}
