// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the Orion TUI.
//
// This file implements the update loop. All state mutation happens here,
// on a single goroutine; commands only do network and file work.
package chat

import (
	"errors"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/render"
	"github.com/orionchat/orion-tui/internal/ui/components"
	"github.com/orionchat/orion-tui/internal/util"
)

// Update handles all messages for the chat view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		if m.typing.Active() {
			m.refreshViewport()
		}
		return m, cmd

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case SessionOpenedMsg:
		return m.handleSessionOpened(msg)

	case SessionMutatedMsg:
		return m.handleSessionMutated(msg)

	case ChatResultMsg:
		return m.handleChatResult(msg.Result)

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case SettingsReloadedMsg:
		*m.settings = *msg.Settings
		m.syncAppearance()
		m.statusBar.SetMessage("Settings reloaded")
		return m, nil

	case ModelsLoadedMsg:
		if msg.Err == nil {
			m.settingsPanel.SetModels(msg.Models)
		}
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.statusBar.SetError(api.UserText(msg.Err))
		} else {
			m.statusBar.SetMessage("Exported to " + msg.Path)
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes a key press by overlay and focus precedence.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.confirm.Active() {
		confirmed, _ := m.confirm.Update(msg)
		if confirmed && m.deleteID != "" {
			return m, m.deleteSession(m.deleteID, m.deleteID == m.activeID)
		}
		return m, nil
	}

	if m.login.Active() {
		return m.handleLoginKey(msg)
	}

	if m.settingsPanel.Active() {
		if m.settingsPanel.Update(msg) {
			m.syncAppearance()
			return m, nil
		}
		return m, nil
	}

	if m.renameMode {
		return m.handleRenameKey(msg)
	}

	if m.searchMode {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.NewChat):
		m.startNewChat()
		return m, nil

	case key.Matches(msg, m.keyMap.Focus):
		if m.focus == FocusInput {
			m.focus = FocusSidebar
			m.input.Blur()
		} else {
			m.focus = FocusInput
			return m, m.input.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Search):
		m.searchMode = true
		m.focus = FocusSidebar
		m.input.Blur()
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keyMap.Regenerate):
		return m.regenerate()

	case key.Matches(msg, m.keyMap.Copy):
		m.copyReply()
		return m, nil

	case key.Matches(msg, m.keyMap.Settings):
		m.settingsPanel.Show()
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		if m.activeID == "" {
			m.statusBar.SetMessage("Nothing to export yet")
			return m, nil
		}
		return m, m.exportSession(m.activeID, api.ExportText)

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleSidebarKey handles keys while the session list has focus.
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.MoveUp()

	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.MoveDown()

	case key.Matches(msg, m.keyMap.Open):
		if s := m.sidebar.Selected(); s != nil {
			return m, m.openSession(s.ID)
		}

	case key.Matches(msg, m.keyMap.Pin):
		if s := m.sidebar.Selected(); s != nil {
			return m, m.togglePin(s.ID)
		}

	case key.Matches(msg, m.keyMap.Archive):
		if s := m.sidebar.Selected(); s != nil {
			return m, m.toggleArchive(s.ID)
		}

	case key.Matches(msg, m.keyMap.Delete):
		if s := m.sidebar.Selected(); s != nil {
			m.deleteID = s.ID
			m.confirm.Show("Delete session",
				`Delete "`+s.DisplayTitle()+`"? This cannot be undone.`)
		}

	case key.Matches(msg, m.keyMap.Rename):
		if s := m.sidebar.Selected(); s != nil {
			m.renameMode = true
			m.renameID = s.ID
			m.renameInput.SetValue(s.Title)
			return m, m.renameInput.Focus()
		}
	}
	return m, nil
}

// handleInputKey handles keys while the message input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Submit) {
		return m.send()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleLoginKey feeds keys to the login form.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.login.Hide()
		return m, nil
	}
	sub, cmd := m.login.Update(msg)
	if sub == nil {
		return m, cmd
	}
	if sub.Register {
		return m, m.authRegister(sub.Username, sub.Email, sub.Password)
	}
	return m, m.authLogin(sub.Username, sub.Password)
}

// handleRenameKey drives the inline rename prompt.
func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.renameMode = false
		m.renameInput.Blur()
		return m, nil
	case "enter":
		title := m.renameInput.Value()
		m.renameMode = false
		m.renameInput.Blur()
		if util.IsBlank(title) {
			return m, nil
		}
		return m, m.renameSession(m.renameID, title)
	}
	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// handleSearchKey drives the session search prompt.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.sidebar.Filter = ""
		return m, m.loadSessions()
	case "enter":
		query := util.NormalizeQuery(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.sidebar.Filter = query
		return m, m.searchSessions(query)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// updateFocused forwards non-key messages to the focused text component.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searchMode:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.renameMode:
		m.renameInput, cmd = m.renameInput.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// SENDING AND REGENERATION
// =============================================================================

// send dispatches the typed message. Rejections leave the input untouched
// and show a status notice; nothing enters the transcript.
func (m Model) send() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	task, err := m.dispatch.Send(m.activeID, text, m.settings)
	if err != nil {
		m.noticeFor(err)
		return m, nil
	}

	m.input.Reset()
	m.transcript.AppendUser(text)
	m.transcript.SetTyping()
	m.activeTag = task.Tag
	m.statusBar.SetStatus(components.StatusWaiting)
	tick := m.typing.Start()
	m.refreshViewport()
	return m, tea.Batch(tick, runTask(task))
}

// regenerate asks the backend to redo the latest assistant reply. The old
// reply stays visible until the replacement arrives.
func (m Model) regenerate() (tea.Model, tea.Cmd) {
	if m.transcript.LastAssistant() == nil {
		return m, nil
	}
	task, err := m.dispatch.SendRegenerate(m.activeID)
	if err != nil {
		m.noticeFor(err)
		return m, nil
	}

	m.transcript.SetTyping()
	m.activeTag = task.Tag
	m.statusBar.SetStatus(components.StatusWaiting)
	tick := m.typing.Start()
	m.refreshViewport()
	return m, tea.Batch(tick, runTask(task))
}

// noticeFor maps a dispatch rejection to a status bar notice.
func (m *Model) noticeFor(err error) {
	switch {
	case errors.Is(err, dispatch.ErrEmptyMessage):
		// Silent: nothing was typed.
	case errors.Is(err, dispatch.ErrBusy):
		m.statusBar.SetMessage("Wait for the current reply")
	case errors.Is(err, dispatch.ErrThrottled):
		m.statusBar.SetMessage("Sending too fast, give it a moment")
	case errors.Is(err, dispatch.ErrNoSession):
		m.statusBar.SetMessage("No conversation to regenerate")
	default:
		m.statusBar.SetError(api.UserText(err))
	}
}

// copyReply copies the latest assistant reply to the system clipboard.
func (m *Model) copyReply() {
	last := m.transcript.LastAssistant()
	if last == nil {
		return
	}
	if err := clipboard.WriteAll(last.Content); err != nil {
		m.statusBar.SetError("Copy failed")
		return
	}
	m.statusBar.SetMessage("Copied reply")
}

// startNewChat resets to a fresh unsaved conversation. The backend session
// is created lazily on the first send.
func (m *Model) startNewChat() {
	m.activeID = ""
	m.activeTitle = ""
	m.activeTag = "" // Any in-flight reply is now stale
	m.transcript.Clear()
	m.typing.Stop()
	m.sidebar.ActiveID = ""
	m.header.SetSession("")
	m.statusBar.SetStatus(components.StatusReady)
	m.focus = FocusInput
	m.refreshViewport()
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// handleChatResult consumes a finished exchange. Replies whose tag no
// longer matches the outstanding one are discarded: the user moved on
// (switched or deleted the session) while the request was in flight.
func (m Model) handleChatResult(res *dispatch.Result) (tea.Model, tea.Cmd) {
	m.dispatch.Finish()

	if res.Tag != m.activeTag {
		// The user moved on, but a successful exchange was still persisted
		// by the backend; the directory must reflect it.
		if res.Err == nil {
			return m, m.loadSessions()
		}
		return m, nil
	}
	m.activeTag = ""
	m.typing.Stop()
	m.transcript.ClearTyping()
	m.statusBar.SetStatus(components.StatusReady)

	if res.Err != nil {
		m.transcript.AppendFailure(api.UserText(res.Err))
		if m.settings.Sound {
			ringBell()
		}
		m.refreshViewport()
		if errors.Is(res.Err, api.ErrAuthRequired) {
			return m, m.login.Show()
		}
		return m, nil
	}

	if res.SessionCreated {
		m.activeID = res.SessionID
		m.sidebar.ActiveID = res.SessionID
	}

	if res.Regenerate {
		m.transcript.RemoveLastAssistant()
	}
	m.transcript.AppendAssistant(res.Reply.Reply)

	if res.Reply.SessionTitle != "" {
		m.activeTitle = res.Reply.SessionTitle
		m.header.SetSession(m.activeTitle)
	}

	if m.settings.Sound {
		ringBell()
	}

	m.refreshViewport()
	return m, m.loadSessions()
}

// handleSessionsLoaded refreshes the sidebar.
func (m Model) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.sidebar.SetError(api.UserText(msg.Err))
		if errors.Is(msg.Err, api.ErrAuthRequired) {
			return m, m.login.Show()
		}
		return m, nil
	}
	sessions := make([]model.Session, 0, len(msg.Sessions))
	for _, s := range msg.Sessions {
		sessions = append(sessions, *s)
	}
	m.sidebar.SetSessions(sessions)
	m.sidebar.Filter = msg.Query
	return m, nil
}

// handleSessionOpened swaps the conversation pane to the fetched session.
func (m Model) handleSessionOpened(msg SessionOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.SetError(api.UserText(msg.Err))
		if errors.Is(msg.Err, api.ErrAuthRequired) {
			return m, m.login.Show()
		}
		return m, nil
	}

	m.activeID = msg.ID
	m.activeTitle = msg.Detail.Session.Title
	m.activeTag = "" // A reply for the previous session is now stale
	m.typing.Stop()
	m.transcript.Replace(msg.Detail.Messages)
	m.sidebar.ActiveID = msg.ID
	m.header.SetSession(m.activeTitle)
	m.statusBar.SetStatus(components.StatusReady)
	m.focus = FocusInput
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, m.input.Focus()
}

// handleSessionMutated follows every directory mutation with a refetch;
// the backend listing is authoritative.
func (m Model) handleSessionMutated(msg SessionMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.statusBar.SetError(api.UserText(msg.Err))
		if errors.Is(msg.Err, api.ErrAuthRequired) {
			return m, m.login.Show()
		}
		return m, m.loadSessions()
	}

	if msg.Deleted {
		m.startNewChat()
	}
	if msg.Verb == "rename" && msg.ID == m.activeID {
		// Header updates when the refreshed listing arrives; reflect the
		// local change immediately.
		m.activeTitle = m.renameInput.Value()
		m.header.SetSession(m.activeTitle)
	}
	return m, m.loadSessions()
}

// handleAuthResult consumes a login or register outcome.
func (m Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.login.SetError(api.UserText(msg.Err))
		return m, nil
	}
	m.user = msg.User
	m.login.Hide()
	m.statusBar.SetMessage("Signed in as " + msg.User.Username)
	return m, tea.Batch(m.loadSessions(), m.fetchModels(), m.input.Focus())
}

// =============================================================================
// APPEARANCE
// =============================================================================

// syncAppearance applies settings panel changes that affect presentation.
func (m *Model) syncAppearance() {
	if string(m.settings.Theme) != m.theme.Name {
		m.theme.SetTheme(string(m.settings.Theme))
		m.renderer = render.New(m.settings.Theme, m.viewport.Width-4, true)
	}
	if string(m.settings.FontSize) != m.theme.FontSize {
		m.theme.SetFontSize(string(m.settings.FontSize))
	}
	m.header.SetModel(m.settings.Model)
	m.refreshViewport()
}

// ringBell emits the terminal bell for reply notifications.
func ringBell() {
	_, _ = os.Stdout.WriteString("\a")
}
