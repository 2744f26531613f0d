// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the Orion TUI.
//
// This file defines the Bubble Tea commands that perform backend work off
// the update loop. Each command returns exactly one message.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/export"
)

// =============================================================================
// SESSION DIRECTORY COMMANDS
// =============================================================================

// loadSessions fetches the full session listing.
func (m *Model) loadSessions() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		sessions, err := client.ListSessions(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// searchSessions fetches the listing filtered by a title query.
func (m *Model) searchSessions(query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		sessions, err := client.SearchSessions(context.Background(), query)
		return SessionsLoadedMsg{Sessions: sessions, Query: query, Err: err}
	}
}

// openSession fetches a session with its messages.
func (m *Model) openSession(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		detail, err := client.GetSession(context.Background(), id)
		return SessionOpenedMsg{ID: id, Detail: detail, Err: err}
	}
}

// renameSession renames a session.
func (m *Model) renameSession(id, title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.RenameSession(context.Background(), id, title)
		return SessionMutatedMsg{Verb: "rename", ID: id, Err: err}
	}
}

// deleteSession deletes a session. active marks whether it was the open one.
func (m *Model) deleteSession(id string, active bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteSession(context.Background(), id)
		return SessionMutatedMsg{Verb: "delete", ID: id, Deleted: active && err == nil, Err: err}
	}
}

// togglePin flips a session's pinned flag.
func (m *Model) togglePin(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.TogglePin(context.Background(), id)
		return SessionMutatedMsg{Verb: "pin", ID: id, Err: err}
	}
}

// toggleArchive flips a session's archived flag.
func (m *Model) toggleArchive(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.ToggleArchive(context.Background(), id)
		return SessionMutatedMsg{Verb: "archive", ID: id, Err: err}
	}
}

// =============================================================================
// CHAT EXCHANGE COMMANDS
// =============================================================================

// runTask executes a dispatched exchange on its own goroutine. The result
// comes back through the update loop, which decides whether it is stale.
func runTask(task *dispatch.Task) tea.Cmd {
	return func() tea.Msg {
		return ChatResultMsg{Result: task.Run(context.Background())}
	}
}

// =============================================================================
// AUTH AND META COMMANDS
// =============================================================================

// authLogin authenticates against the backend.
func (m *Model) authLogin(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(context.Background(), username, password)
		return AuthResultMsg{User: user, Err: err}
	}
}

// authRegister creates an account and logs it in.
func (m *Model) authRegister(username, email, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Register(context.Background(), username, email, password)
		return AuthResultMsg{User: user, Err: err}
	}
}

// fetchModels loads the selectable model list for the settings panel.
func (m *Model) fetchModels() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		models, def, err := client.Models(context.Background())
		return ModelsLoadedMsg{Models: models, Default: def, Err: err}
	}
}

// =============================================================================
// EXPORT COMMANDS
// =============================================================================

// exportSession downloads the session export and writes it next to the
// working directory.
func (m *Model) exportSession(id string, format api.ExportFormat) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		body, err := client.ExportSession(context.Background(), id, format)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		path, err := export.Save("", id, format, body)
		return ExportDoneMsg{Path: path, Err: err}
	}
}
