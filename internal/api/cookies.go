// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// =============================================================================
// COOKIE PERSISTENCE
// =============================================================================

// storedCookie is the on-disk form of one session cookie. Only name and
// value are kept; scope is re-derived from the configured base URL.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SaveCookies writes the client's cookies for its base URL to path with
// owner-only permissions. CLI login calls this so the session survives
// across invocations; the TUI and later commands restore it at startup.
func (c *Client) SaveCookies(path string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	var out []storedCookie
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		out = append(out, storedCookie{Name: ck.Name, Value: ck.Value})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadCookies restores previously saved cookies into the client's jar. A
// missing file is not an error: it just means nobody is logged in.
func (c *Client) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parse cookie file: %w", err)
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value})
	}
	c.httpClient.Jar.SetCookies(u, cookies)
	return nil
}

// ClearCookies removes a saved cookie file. Used on logout.
func ClearCookies(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
