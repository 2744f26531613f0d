// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the Orion TUI.
//
// This file defines the Bubble Tea message types used by the view. All
// backend work happens in commands; these messages deliver the outcomes
// back to the single-threaded update loop.
package chat

import (
	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/model"
)

// =============================================================================
// SESSION DIRECTORY MESSAGES
// =============================================================================

// SessionsLoadedMsg delivers a session listing refresh.
type SessionsLoadedMsg struct {
	Sessions []*model.Session
	Query    string // Non-empty when this is a search result
	Err      error
}

// SessionOpenedMsg delivers a full session fetch after selection.
type SessionOpenedMsg struct {
	ID     string
	Detail *api.SessionDetail
	Err    error
}

// SessionMutatedMsg reports completion of a rename, delete, pin, or
// archive call. Every mutation is followed by a listing refresh.
type SessionMutatedMsg struct {
	Verb    string // "rename", "delete", "pin", "archive"
	ID      string
	Deleted bool // True when the active session was deleted
	Err     error
}

// =============================================================================
// CHAT EXCHANGE MESSAGES
// =============================================================================

// ChatResultMsg delivers the outcome of a dispatched exchange.
type ChatResultMsg struct {
	Result *dispatch.Result
}

// =============================================================================
// AUTH AND META MESSAGES
// =============================================================================

// AuthResultMsg delivers a login or register outcome.
type AuthResultMsg struct {
	User *api.User
	Err  error
}

// ModelsLoadedMsg delivers the selectable model list.
type ModelsLoadedMsg struct {
	Models  []api.ModelInfo
	Default string
	Err     error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// SettingsReloadedMsg carries fresh settings after the config file changed
// on disk. The running UI adopts them as the new baseline.
type SettingsReloadedMsg struct {
	Settings *model.Settings
}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportDoneMsg reports a finished session export download.
type ExportDoneMsg struct {
	Path string
	Err  error
}
