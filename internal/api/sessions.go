// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/orionchat/orion-tui/internal/model"
)

// ExportFormat identifies a session export format.
type ExportFormat string

const (
	ExportText       ExportFormat = "text"
	ExportStructured ExportFormat = "structured"
	ExportDocument   ExportFormat = "document"
)

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportStructured:
		return "json"
	case ExportDocument:
		return "html"
	default:
		return "txt"
	}
}

// Valid reports whether f is a recognized export format.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportText, ExportStructured, ExportDocument:
		return true
	}
	return false
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// sessionWire mirrors the session object on the wire. Timestamps arrive as
// strings and are parsed leniently; see parseTime.
type sessionWire struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Model        string `json:"model"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
	IsPinned     bool   `json:"is_pinned"`
	IsArchived   bool   `json:"is_archived"`
}

func (w *sessionWire) toModel() *model.Session {
	return &model.Session{
		ID:           w.ID,
		Title:        w.Title,
		Model:        w.Model,
		CreatedAt:    parseTime(w.CreatedAt),
		UpdatedAt:    parseTime(w.UpdatedAt),
		MessageCount: w.MessageCount,
		Pinned:       w.IsPinned,
		Archived:     w.IsArchived,
	}
}

// messageWire mirrors a persisted message on the wire.
type messageWire struct {
	ID      json.Number `json:"id"`
	Role    string      `json:"role"`
	Content string      `json:"content"`
}

// SessionDetail is the full state of one session: its metadata and ordered
// message history.
type SessionDetail struct {
	Session  *model.Session
	Messages []*model.Message
}

// CreateSessionRequest holds the fields for session creation. Zero values
// are omitted so the backend applies its own defaults.
type CreateSessionRequest struct {
	Title        string `json:"title,omitempty"`
	Model        string `json:"model,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// ListSessions fetches all sessions for the logged-in user, sorted for
// display (pinned first, then descending recency).
func (c *Client) ListSessions(ctx context.Context) ([]*model.Session, error) {
	var resp struct {
		Sessions []*sessionWire `json:"sessions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions", nil, &resp); err != nil {
		return nil, err
	}
	sessions := make([]*model.Session, 0, len(resp.Sessions))
	for _, w := range resp.Sessions {
		sessions = append(sessions, w.toModel())
	}
	model.SortSessions(sessions)
	return sessions, nil
}

// CreateSession creates a new session and returns its backend-assigned ID.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (string, error) {
	var resp struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions", req, &resp); err != nil {
		return "", err
	}
	return resp.Session.ID, nil
}

// GetSession fetches one session's metadata and full message history.
func (c *Client) GetSession(ctx context.Context, id string) (*SessionDetail, error) {
	var resp struct {
		Session  *sessionWire   `json:"session"`
		Messages []*messageWire `json:"messages"`
	}
	path := "/api/sessions/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	detail := &SessionDetail{Messages: make([]*model.Message, 0, len(resp.Messages))}
	if resp.Session != nil {
		detail.Session = resp.Session.toModel()
		if detail.Session.ID == "" {
			detail.Session.ID = id
		}
	}
	for _, w := range resp.Messages {
		detail.Messages = append(detail.Messages, &model.Message{
			ID:      w.ID.String(),
			Role:    model.Role(w.Role),
			Content: w.Content,
		})
	}
	return detail, nil
}

// RenameSession sets a new title on the session.
func (c *Client) RenameSession(ctx context.Context, id, title string) error {
	path := "/api/sessions/" + url.PathEscape(id) + "/rename"
	body := struct {
		Title string `json:"title"`
	}{Title: title}
	return c.doJSON(ctx, http.MethodPut, path, body, nil)
}

// DeleteSession deletes the session. The caller is responsible for user
// confirmation before invoking this.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	path := "/api/sessions/" + url.PathEscape(id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// TogglePin toggles the pinned flag on the session.
func (c *Client) TogglePin(ctx context.Context, id string) error {
	path := "/api/sessions/" + url.PathEscape(id) + "/pin"
	return c.doJSON(ctx, http.MethodPut, path, nil, nil)
}

// ToggleArchive toggles the archived flag on the session.
func (c *Client) ToggleArchive(ctx context.Context, id string) error {
	path := "/api/sessions/" + url.PathEscape(id) + "/archive"
	return c.doJSON(ctx, http.MethodPut, path, nil, nil)
}

// SearchSessions returns the sessions matching q, in display order.
func (c *Client) SearchSessions(ctx context.Context, q string) ([]*model.Session, error) {
	var resp struct {
		Sessions []*sessionWire `json:"sessions"`
	}
	path := "/api/search?q=" + url.QueryEscape(q)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	sessions := make([]*model.Session, 0, len(resp.Sessions))
	for _, w := range resp.Sessions {
		sessions = append(sessions, w.toModel())
	}
	model.SortSessions(sessions)
	return sessions, nil
}

// ExportSession downloads the session in the given format and returns the
// raw file body. The response is a file, not the JSON envelope.
func (c *Client) ExportSession(ctx context.Context, id string, format ExportFormat) ([]byte, error) {
	path := "/api/sessions/" + url.PathEscape(id) + "/export?format=" + url.QueryEscape(string(format))
	raw, status, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, &BackendError{Status: status}
	}
	return raw, nil
}
