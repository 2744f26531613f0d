// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the Orion TUI.
//
// This file renders the view: header, session sidebar, conversation pane,
// input line, status bar, and the overlays.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/components"
)

// View renders the whole client.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.header.View()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(),
		m.viewport.View(),
	)
	inputLine := m.inputLine()
	status := m.statusBar.View(m.shortcuts())

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, inputLine, status)

	if overlay := m.overlay(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return screen
}

// inputLine picks the active bottom prompt.
func (m Model) inputLine() string {
	switch {
	case m.searchMode:
		return m.theme.InputContainer.Width(m.width).Render(m.searchInput.View())
	case m.renameMode:
		return m.theme.InputContainer.Width(m.width).Render(m.renameInput.View())
	default:
		return m.theme.InputContainer.Width(m.width).Render(m.input.View())
	}
}

// overlay returns the active modal view, or "".
func (m Model) overlay() string {
	switch {
	case m.confirm.Active():
		return m.confirm.View()
	case m.login.Active():
		return m.login.View()
	case m.settingsPanel.Active():
		return m.settingsPanel.View()
	}
	return ""
}

// shortcuts returns the status bar key hints for the current focus.
func (m Model) shortcuts() []components.Shortcut {
	if m.focus == FocusSidebar {
		return []components.Shortcut{
			{Key: "Enter", Desc: "open"},
			{Key: "p", Desc: "pin"},
			{Key: "a", Desc: "archive"},
			{Key: "d", Desc: "delete"},
			{Key: "r", Desc: "rename"},
			{Key: "Tab", Desc: "input"},
		}
	}
	return []components.Shortcut{
		{Key: "Enter", Desc: "send"},
		{Key: "C-n", Desc: "new"},
		{Key: "C-r", Desc: "regen"},
		{Key: "C-y", Desc: "copy"},
		{Key: "C-o", Desc: "settings"},
		{Key: "Tab", Desc: "sessions"},
	}
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshViewport rebuilds the conversation pane content and pins the view
// to the latest entry.
func (m *Model) refreshViewport() {
	var b strings.Builder
	last := m.transcript.LastAssistant()

	for i, msg := range m.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, msg == last))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// renderMessage renders one transcript entry. Only the latest assistant
// reply advertises the copy/regenerate affordances.
func (m *Model) renderMessage(msg *model.Message, latest bool) string {
	if msg.Transient && msg.Role == model.RoleAssistant {
		return m.typing.View()
	}

	switch msg.Role {
	case model.RoleUser:
		return m.theme.MessageLabel.Render(msg.Role.DisplayName()) + "\n" +
			m.theme.UserBubble.Render(m.renderer.User(msg.Content))

	case model.RoleAssistant:
		out := m.theme.MessageLabel.Render(msg.Role.DisplayName()) + "\n" +
			m.theme.AssistantBubble.Render(m.renderer.Assistant(msg.Content))
		if latest {
			out += "\n" + m.theme.MessageMeta.Render("C-y copy  C-r regenerate")
		}
		return out

	default:
		return m.theme.SystemNotice.Render(m.renderer.System(msg.Content))
	}
}
