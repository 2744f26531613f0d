// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/styles"
	"github.com/orionchat/orion-tui/internal/util"
)

// =============================================================================
// SESSION LIST COMPONENT - Sidebar session directory
// =============================================================================

// SessionList renders the session sidebar. The slice it holds is already in
// display order (pinned first, then most recently updated).
type SessionList struct {
	Sessions []model.Session
	Cursor   int    // Index of the highlighted row
	ActiveID string // Session currently open in the conversation pane
	Err      string // Inline load error, shown instead of rows
	Filter   string // Active search query, blank when not searching
	Width    int
	Height   int
	offset   int // First visible row
	theme    *styles.Theme
}

// NewSessionList creates an empty session list.
func NewSessionList(theme *styles.Theme) *SessionList {
	return &SessionList{Width: 32, Height: 20, theme: theme}
}

// SetSize updates the sidebar dimensions.
func (l *SessionList) SetSize(width, height int) {
	l.Width = width
	l.Height = height
	l.clampCursor()
}

// SetSessions replaces the listing, keeping the cursor on the previously
// selected session when it survived the refresh.
func (l *SessionList) SetSessions(sessions []model.Session) {
	var keep string
	if l.Cursor >= 0 && l.Cursor < len(l.Sessions) {
		keep = l.Sessions[l.Cursor].ID
	}
	l.Sessions = sessions
	l.Err = ""
	l.Cursor = 0
	for i, s := range sessions {
		if s.ID == keep {
			l.Cursor = i
			break
		}
	}
	l.clampCursor()
}

// SetError records a load failure shown in place of the listing.
func (l *SessionList) SetError(msg string) {
	l.Err = msg
}

// Selected returns the session under the cursor, or nil.
func (l *SessionList) Selected() *model.Session {
	if l.Cursor < 0 || l.Cursor >= len(l.Sessions) {
		return nil
	}
	return &l.Sessions[l.Cursor]
}

// MoveUp moves the cursor one row up.
func (l *SessionList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
	l.scrollToCursor()
}

// MoveDown moves the cursor one row down.
func (l *SessionList) MoveDown() {
	if l.Cursor < len(l.Sessions)-1 {
		l.Cursor++
	}
	l.scrollToCursor()
}

func (l *SessionList) clampCursor() {
	if l.Cursor >= len(l.Sessions) {
		l.Cursor = len(l.Sessions) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.scrollToCursor()
}

func (l *SessionList) scrollToCursor() {
	visible := l.visibleRows()
	if visible <= 0 {
		return
	}
	if l.Cursor < l.offset {
		l.offset = l.Cursor
	}
	if l.Cursor >= l.offset+visible {
		l.offset = l.Cursor - visible + 1
	}
}

// visibleRows is the row budget after the title line and optional filter line.
func (l *SessionList) visibleRows() int {
	rows := l.Height - 1
	if l.Filter != "" {
		rows--
	}
	return rows
}

// View renders the sidebar.
func (l *SessionList) View() string {
	var b strings.Builder

	b.WriteString(l.theme.MessageLabel.Render("Sessions"))
	b.WriteString("\n")

	if l.Filter != "" {
		b.WriteString(l.theme.SessionMeta.Render("/" + l.Filter))
		b.WriteString("\n")
	}

	switch {
	case l.Err != "":
		b.WriteString(l.theme.FormError.Render(util.TruncateWidth(l.Err, l.Width-2)))
	case len(l.Sessions) == 0 && l.Filter != "":
		b.WriteString(l.theme.SessionEmpty.Render("No matches"))
	case len(l.Sessions) == 0:
		b.WriteString(l.theme.SessionEmpty.Render("No conversations yet"))
	default:
		l.renderRows(&b)
	}

	return l.theme.SessionList.Width(l.Width).Height(l.Height).Render(b.String())
}

func (l *SessionList) renderRows(b *strings.Builder) {
	visible := l.visibleRows()
	end := l.offset + visible
	if end > len(l.Sessions) {
		end = len(l.Sessions)
	}
	for i := l.offset; i < end; i++ {
		s := l.Sessions[i]
		if i > l.offset {
			b.WriteString("\n")
		}
		b.WriteString(l.renderRow(s, i == l.Cursor))
	}
}

func (l *SessionList) renderRow(s model.Session, selected bool) string {
	badge := " "
	switch {
	case s.Pinned:
		badge = l.theme.SessionPinned.Render("^")
	case s.Archived:
		badge = l.theme.SessionArchived.Render("~")
	}

	marker := " "
	if s.ID == l.ActiveID {
		marker = ">"
	}

	titleWidth := l.Width - 10
	if titleWidth < 8 {
		titleWidth = 8
	}
	title := util.PadWidth(util.TruncateWidth(s.DisplayTitle(), titleWidth), titleWidth)

	row := fmt.Sprintf("%s%s %s %s", marker, badge, title,
		l.theme.SessionMeta.Render(relativeTime(s.UpdatedAt)))
	if selected {
		return l.theme.SessionItemSelected.Render(row)
	}
	return l.theme.SessionItem.Render(row)
}

// relativeTime renders an updated-at stamp the way the sidebar shows it.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
