// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/orionchat/orion-tui/internal/model"
)

// =============================================================================
// CHAT COMPLETION
// =============================================================================

// ChatRequest is the payload for POST /chat. A normal send carries the
// message text plus the current generation settings; a regenerate send
// carries only the session ID and the regenerate directive.
type ChatRequest struct {
	Message      string  `json:"message,omitempty"`
	SessionID    string  `json:"session_id"`
	Model        string  `json:"model,omitempty"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Regenerate   bool    `json:"regenerate,omitempty"`
}

// ChatReply is the successful result of a chat exchange. SessionTitle is
// non-empty only when the backend generated a title for a previously
// untitled session.
type ChatReply struct {
	Reply        string
	SessionTitle string
}

// SendMessage posts a user message with the given settings and returns the
// assistant reply.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string, settings *model.Settings) (*ChatReply, error) {
	req := ChatRequest{
		Message:      message,
		SessionID:    sessionID,
		Model:        settings.Model,
		Temperature:  settings.Temperature,
		MaxTokens:    settings.MaxTokens,
		SystemPrompt: settings.SystemPrompt,
	}
	return c.chat(ctx, req)
}

// Regenerate asks the backend to discard the last assistant reply for the
// session and produce a new one for the same prompt context.
func (c *Client) Regenerate(ctx context.Context, sessionID string) (*ChatReply, error) {
	return c.chat(ctx, ChatRequest{SessionID: sessionID, Regenerate: true})
}

func (c *Client) chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	var resp struct {
		Reply        string `json:"reply"`
		SessionTitle string `json:"session_title"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &resp); err != nil {
		return nil, err
	}
	return &ChatReply{Reply: resp.Reply, SessionTitle: resp.SessionTitle}, nil
}
