// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"time"

	"github.com/orionchat/orion-tui/internal/util"
)

// HeaderTitleWidth is the maximum display width, in terminal cells, of a
// session title shown in the conversation header.
const HeaderTitleWidth = 40

// Defaults the backend applies to newly created sessions.
const (
	DefaultSessionTitle = "New Chat"
	DefaultModel        = "mistralai/mistral-7b-instruct"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session is the client-side view of a chat session. The backend owns the
// session; this struct mirrors the metadata returned by the sessions API.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Pinned       bool      `json:"is_pinned"`
	Archived     bool      `json:"is_archived"`
}

// DisplayTitle returns the session title truncated for the header, falling
// back to the backend default for untitled sessions.
func (s *Session) DisplayTitle() string {
	title := s.Title
	if title == "" {
		title = DefaultSessionTitle
	}
	return util.TruncateWidth(title, HeaderTitleWidth)
}

// =============================================================================
// DIRECTORY ORDERING
// =============================================================================

// SortSessions orders a session list for display: pinned sessions first,
// then within each pinned/unpinned partition by descending update time.
// The sort is stable so equal timestamps keep their server order.
func SortSessions(sessions []*Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Pinned != sessions[j].Pinned {
			return sessions[i].Pinned
		}
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
}
