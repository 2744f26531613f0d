// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Shortcut is one key hint shown on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: status, transient message, key hints.
type StatusBar struct {
	Status  Status
	Message string // Transient notice, e.g. "Copied" or an error text
	Width   int
	theme   *styles.Theme
}

// NewStatusBar creates a status bar in the ready state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Status: StatusReady, Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// SetStatus updates the status and clears any transient message.
func (b *StatusBar) SetStatus(s Status) {
	b.Status = s
	if s != StatusError {
		b.Message = ""
	}
}

// SetMessage shows a transient notice next to the status.
func (b *StatusBar) SetMessage(msg string) {
	b.Message = msg
}

// SetError switches to the error state with the given text.
func (b *StatusBar) SetError(msg string) {
	b.Status = StatusError
	b.Message = msg
}

// View renders the bar with the given shortcuts right-aligned.
func (b *StatusBar) View(shortcuts []Shortcut) string {
	left := b.Status.String()
	if b.Message != "" {
		left += "  " + b.Message
	}
	if b.Status == StatusError {
		left = b.theme.StatusError.Render(left)
	}

	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts, fmt.Sprintf("%s %s",
			b.theme.ShortcutKey.Render(sc.Key),
			b.theme.ShortcutDesc.Render(sc.Desc)))
	}
	right := strings.Join(parts, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return b.theme.StatusBar.Width(b.Width).Render(
		left + strings.Repeat(" ", gap) + right)
}
