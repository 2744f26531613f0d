// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM MODAL - Destructive action confirmation
// =============================================================================

// Confirm is a two-option modal used before destructive actions such as
// deleting a session. Cancel is preselected so a reflexive enter is safe.
type Confirm struct {
	Title    string
	Body     string
	Selected int // 0 = cancel, 1 = confirm
	active   bool
	theme    *styles.Theme
}

// NewConfirm creates an inactive confirm modal.
func NewConfirm(theme *styles.Theme) Confirm {
	return Confirm{theme: theme}
}

// Show activates the modal with the cancel option preselected.
func (c *Confirm) Show(title, body string) {
	c.Title = title
	c.Body = body
	c.Selected = 0
	c.active = true
}

// Hide deactivates the modal.
func (c *Confirm) Hide() {
	c.active = false
}

// Active reports whether the modal is showing.
func (c *Confirm) Active() bool {
	return c.active
}

// Update handles modal keys. It returns (confirmed, dismissed): confirmed is
// true when the destructive option was chosen, dismissed when the modal
// closed either way.
func (c *Confirm) Update(msg tea.Msg) (confirmed, dismissed bool) {
	if !c.active {
		return false, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, false
	}
	switch key.String() {
	case "left", "right", "tab", "h", "l":
		c.Selected = 1 - c.Selected
	case "enter":
		c.active = false
		return c.Selected == 1, true
	case "esc", "n":
		c.active = false
		return false, true
	case "y":
		c.active = false
		return true, true
	}
	return false, false
}

// View renders the modal box.
func (c *Confirm) View() string {
	if !c.active {
		return ""
	}

	cancel := c.theme.ModalButton.Render("Cancel")
	confirm := c.theme.ModalButton.Render("Delete")
	if c.Selected == 0 {
		cancel = c.theme.ModalButtonActive.Render("Cancel")
	} else {
		confirm = c.theme.ModalButtonActive.Render("Delete")
	}

	var b strings.Builder
	b.WriteString(c.theme.ModalTitle.Render(c.Title))
	b.WriteString("\n\n")
	b.WriteString(c.theme.ModalBody.Render(c.Body))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", confirm))

	return c.theme.ModalBox.Render(b.String())
}
