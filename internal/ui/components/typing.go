// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR - The transient "Orion is typing" placeholder
// =============================================================================

// Typing animates the assistant-is-typing placeholder shown while a chat
// request is in flight. At most one indicator is ever active.
type Typing struct {
	spinner spinner.Model
	theme   *styles.Theme
	active  bool
}

// NewTyping creates an inactive typing indicator.
func NewTyping(theme *styles.Theme) Typing {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
		FPS:    time.Second / 6,
	}
	return Typing{spinner: s, theme: theme}
}

// Start activates the indicator and returns the tick command that drives
// the animation.
func (t *Typing) Start() tea.Cmd {
	t.active = true
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *Typing) Stop() {
	t.active = false
}

// Active reports whether the indicator is showing.
func (t *Typing) Active() bool {
	return t.active
}

// Update advances the spinner animation.
func (t Typing) Update(msg tea.Msg) (Typing, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator line, or "" when inactive.
func (t Typing) View() string {
	if !t.active {
		return ""
	}
	return t.theme.Spinner.Render(t.spinner.View()) + " " +
		t.theme.ThinkingText.Render("Orion is typing")
}
