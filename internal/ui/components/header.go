// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Orion TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/styles"
	"github.com/orionchat/orion-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar for the active conversation
// =============================================================================

// Header renders the top bar: brand, active session title, and model.
type Header struct {
	Brand        string // Product name shown on the left
	SessionTitle string // Active session title, blank when none
	ModelName    string // Active model key
	Width        int
	theme        *styles.Theme
}

// NewHeader creates a Header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Brand: "orion",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetSession updates the displayed session title. An empty title falls back
// to the placeholder used before the first exchange names the session.
func (h *Header) SetSession(title string) {
	h.SessionTitle = title
}

// SetModel updates the displayed model name.
func (h *Header) SetModel(name string) {
	h.ModelName = name
}

// View renders the header line.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	accent := lipgloss.NewStyle().Foreground(styles.Purple)
	brand := accent.Render("< ") +
		h.theme.HeaderBrand.Render(h.Brand) +
		accent.Render(" >")

	title := h.SessionTitle
	if title == "" {
		title = model.DefaultSessionTitle
	}
	title = util.TruncateWidth(title, model.HeaderTitleWidth)

	left := brand + "  " + h.theme.HeaderTitle.Render(title)

	right := ""
	if h.ModelName != "" {
		right = h.theme.HeaderSubtitle.Render(h.ModelName)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(width).Render(
		left + strings.Repeat(" ", gap) + right)
}
