// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns message content into terminal-safe display text.
//
// User-authored text is always rendered literally: it is never interpreted
// as markup of any kind. Assistant text is passed through a markdown
// renderer. Both paths are sanitized first: raw control characters and
// ANSI escape sequences are stripped before any transformation, so message
// content can never inject terminal control state, and fenced code block
// contents stay literal even when syntax highlighting is applied on top.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/orionchat/orion-tui/internal/model"
)

// Renderer renders message content for the conversation viewport.
type Renderer struct {
	theme    model.Theme
	width    int
	markdown bool

	tr *glamour.TermRenderer
}

// New creates a renderer for the given theme and wrap width. When markdown
// is false (or the glamour renderer cannot be built), assistant text falls
// back to the plain path with chroma code block highlighting.
func New(theme model.Theme, width int, markdown bool) *Renderer {
	r := &Renderer{
		theme:    theme,
		width:    width,
		markdown: markdown,
	}
	if markdown {
		r.tr = newTermRenderer(theme, width)
	}
	return r
}

// newTermRenderer builds the glamour renderer, or nil on failure.
func newTermRenderer(theme model.Theme, width int) *glamour.TermRenderer {
	style := glamour.WithStandardStyle("dark")
	if theme == model.ThemeLight {
		style = glamour.WithStandardStyle("light")
	}
	tr, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return tr
}

// Resize rebuilds the renderer for a new wrap width.
func (r *Renderer) Resize(width int) {
	if width == r.width {
		return
	}
	r.width = width
	if r.markdown {
		r.tr = newTermRenderer(r.theme, width)
	}
}

// User renders user-authored content as literal text.
func (r *Renderer) User(content string) string {
	return Sanitize(content)
}

// Assistant renders assistant content: sanitized, then markdown-formatted.
// If markdown is unavailable the plain path highlights fenced code blocks
// directly.
func (r *Renderer) Assistant(content string) string {
	clean := Sanitize(content)
	if r.tr != nil {
		if out, err := r.tr.Render(clean); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return HighlightFences(clean, r.width)
}

// System renders a system notice literally.
func (r *Renderer) System(content string) string {
	return Sanitize(content)
}

// =============================================================================
// SANITIZATION
// =============================================================================

// Sanitize strips ANSI escape sequences and control characters from raw
// message text, keeping newlines and tabs. This is the terminal analogue
// of HTML-escaping before markup transformation: whatever arrives in a
// message body renders as visible text, never as terminal state.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inEscape := false
	for _, r := range s {
		if inEscape {
			// CSI and OSC sequences end with a byte in @..~; consume
			// everything up to and including it.
			if r >= '@' && r <= '~' {
				inEscape = false
			}
			continue
		}
		switch {
		case r == 0x1b:
			inEscape = true
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// Drop other control characters (including \r).
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
