// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark", "normal")
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// =============================================================================
// HEADER
// =============================================================================

func TestHeaderShowsPlaceholderWithoutSession(t *testing.T) {
	h := NewHeader(testTheme())
	assert.Contains(t, h.View(), "New Chat")
}

func TestHeaderTruncatesLongTitle(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(120)
	h.SetSession(strings.Repeat("x", 100))
	out := h.View()
	assert.NotContains(t, out, strings.Repeat("x", 41))
	assert.Contains(t, out, "...")
}

func TestHeaderShowsModel(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetModel("mistralai/mistral-7b-instruct")
	assert.Contains(t, h.View(), "mistralai/mistral-7b-instruct")
}

// =============================================================================
// SESSION LIST
// =============================================================================

func sampleSessions() []model.Session {
	now := time.Now()
	return []model.Session{
		{ID: "a", Title: "Pinned one", Pinned: true, UpdatedAt: now},
		{ID: "b", Title: "Recent", UpdatedAt: now.Add(-time.Hour)},
		{ID: "c", Title: "Older", Archived: true, UpdatedAt: now.Add(-48 * time.Hour)},
	}
}

func TestSessionListEmptyState(t *testing.T) {
	l := NewSessionList(testTheme())
	assert.Contains(t, l.View(), "No conversations yet")
}

func TestSessionListEmptySearchState(t *testing.T) {
	l := NewSessionList(testTheme())
	l.Filter = "nope"
	assert.Contains(t, l.View(), "No matches")
}

func TestSessionListShowsError(t *testing.T) {
	l := NewSessionList(testTheme())
	l.SetError("Connection failed")
	assert.Contains(t, l.View(), "Connection failed")
}

func TestSessionListErrorClearedOnRefresh(t *testing.T) {
	l := NewSessionList(testTheme())
	l.SetError("Connection failed")
	l.SetSessions(sampleSessions())
	assert.Empty(t, l.Err)
	assert.NotContains(t, l.View(), "Connection failed")
}

func TestSessionListKeepsSelectionAcrossRefresh(t *testing.T) {
	l := NewSessionList(testTheme())
	l.SetSessions(sampleSessions())
	l.MoveDown()
	require.Equal(t, "b", l.Selected().ID)

	// Refresh reorders: "b" moved to the end.
	refreshed := []model.Session{
		sampleSessions()[0], sampleSessions()[2], sampleSessions()[1],
	}
	l.SetSessions(refreshed)
	assert.Equal(t, "b", l.Selected().ID)
}

func TestSessionListSelectionFallsBackWhenGone(t *testing.T) {
	l := NewSessionList(testTheme())
	l.SetSessions(sampleSessions())
	l.MoveDown()
	l.MoveDown()
	require.Equal(t, "c", l.Selected().ID)

	l.SetSessions(sampleSessions()[:1])
	assert.Equal(t, "a", l.Selected().ID)
}

func TestSessionListCursorBounds(t *testing.T) {
	l := NewSessionList(testTheme())
	l.SetSessions(sampleSessions())
	l.MoveUp()
	assert.Equal(t, 0, l.Cursor)
	for i := 0; i < 10; i++ {
		l.MoveDown()
	}
	assert.Equal(t, 2, l.Cursor)
}

// =============================================================================
// STATUS BAR
// =============================================================================

func TestStatusBarStates(t *testing.T) {
	b := NewStatusBar(testTheme())
	assert.Contains(t, b.View(nil), "Ready")

	b.SetStatus(StatusWaiting)
	assert.Contains(t, b.View(nil), "Waiting")

	b.SetError("Server error")
	assert.Contains(t, b.View(nil), "Server error")

	b.SetStatus(StatusReady)
	assert.NotContains(t, b.View(nil), "Server error")
}

func TestStatusBarShortcuts(t *testing.T) {
	b := NewStatusBar(testTheme())
	b.SetWidth(120)
	out := b.View([]Shortcut{{Key: "ctrl+n", Desc: "new"}})
	assert.Contains(t, out, "ctrl+n")
	assert.Contains(t, out, "new")
}

// =============================================================================
// CONFIRM MODAL
// =============================================================================

func TestConfirmDefaultsToCancel(t *testing.T) {
	c := NewConfirm(testTheme())
	c.Show("Delete session", "This cannot be undone.")

	confirmed, dismissed := c.Update(keyMsg("enter"))
	assert.False(t, confirmed)
	assert.True(t, dismissed)
	assert.False(t, c.Active())
}

func TestConfirmSelectsDelete(t *testing.T) {
	c := NewConfirm(testTheme())
	c.Show("Delete session", "This cannot be undone.")

	_, _ = c.Update(keyMsg("right"))
	confirmed, dismissed := c.Update(keyMsg("enter"))
	assert.True(t, confirmed)
	assert.True(t, dismissed)
}

func TestConfirmEscCancels(t *testing.T) {
	c := NewConfirm(testTheme())
	c.Show("Delete session", "gone")

	confirmed, dismissed := c.Update(keyMsg("esc"))
	assert.False(t, confirmed)
	assert.True(t, dismissed)
}

// =============================================================================
// LOGIN FORM
// =============================================================================

func TestLoginFormSubmission(t *testing.T) {
	f := NewLoginForm(testTheme())
	f.Show()

	f.Username.SetValue("alice")
	f.Password.SetValue("secret")
	_, _ = f.Update(keyMsg("enter")) // Moves focus to password
	sub, _ := f.Update(keyMsg("enter"))
	require.NotNil(t, sub)
	assert.Equal(t, "alice", sub.Username)
	assert.Equal(t, "secret", sub.Password)
	assert.False(t, sub.Register)
}

func TestLoginFormRequiresBothFields(t *testing.T) {
	f := NewLoginForm(testTheme())
	f.Show()
	f.Username.SetValue("alice")
	_, _ = f.Update(keyMsg("enter"))
	sub, _ := f.Update(keyMsg("enter"))
	assert.Nil(t, sub)
	assert.NotEmpty(t, f.Err)
}

func TestLoginFormTabTogglesRegister(t *testing.T) {
	f := NewLoginForm(testTheme())
	f.Show()
	_, _ = f.Update(keyMsg("tab"))
	assert.True(t, f.Register)
	assert.Contains(t, f.View(), "Create account")
}

// =============================================================================
// SETTINGS PANEL
// =============================================================================

func TestSettingsPanelAdjustTemperature(t *testing.T) {
	s := model.DefaultSettings()
	p := NewSettingsPanel(testTheme(), s)
	p.Show()

	p.Cursor = settingTemperature
	assert.True(t, p.Update(keyMsg("right")))
	assert.InDelta(t, 0.36, s.Temperature, 1e-9)
	assert.True(t, p.Update(keyMsg("left")))
	assert.InDelta(t, 0.35, s.Temperature, 1e-9)
}

func TestSettingsPanelCyclesModels(t *testing.T) {
	s := model.DefaultSettings()
	p := NewSettingsPanel(testTheme(), s)
	p.Show()
	p.SetModels([]api.ModelInfo{
		{Key: "mistralai/mistral-7b-instruct"},
		{Key: "openai/gpt-4o-mini"},
	})

	p.Cursor = settingModel
	p.Update(keyMsg("right"))
	assert.Equal(t, "openai/gpt-4o-mini", s.Model)
	p.Update(keyMsg("right"))
	assert.Equal(t, "mistralai/mistral-7b-instruct", s.Model)
}

func TestSettingsPanelClampsMaxTokens(t *testing.T) {
	s := model.DefaultSettings()
	s.MaxTokens = model.MaxTokensMax
	p := NewSettingsPanel(testTheme(), s)
	p.Show()

	p.Cursor = settingMaxTokens
	p.Update(keyMsg("right"))
	assert.Equal(t, model.MaxTokensMax, s.MaxTokens)
}

func TestSettingsPanelEscCloses(t *testing.T) {
	p := NewSettingsPanel(testTheme(), model.DefaultSettings())
	p.Show()
	p.Update(keyMsg("esc"))
	assert.False(t, p.Active())
}

// =============================================================================
// TYPING INDICATOR
// =============================================================================

func TestTypingLifecycle(t *testing.T) {
	ty := NewTyping(testTheme())
	assert.Empty(t, ty.View())

	cmd := ty.Start()
	assert.NotNil(t, cmd)
	assert.True(t, ty.Active())
	assert.Contains(t, ty.View(), "Orion is typing")

	ty.Stop()
	assert.Empty(t, ty.View())
}
