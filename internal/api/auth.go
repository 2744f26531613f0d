// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTH
// =============================================================================

// User is the logged-in account as reported by the backend.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Me returns the current user, or nil when nobody is logged in.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		LoggedIn bool  `json:"logged_in"`
		User     *User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.LoggedIn {
		return nil, nil
	}
	return resp.User, nil
}

// Login authenticates with the backend. On success the session cookie is
// stored in the client's jar and carried on subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var resp struct {
		User *User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Register creates a new account and logs it in.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	var resp struct {
		User *User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil)
}
