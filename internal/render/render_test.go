// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orionchat/orion-tui/internal/model"
)

// =============================================================================
// SANITIZATION
// =============================================================================

func TestSanitize_StripsEscapeSequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"csi color", "\x1b[31mred\x1b[0m", "red"},
		{"cursor movement", "a\x1b[2Jb", "ab"},
		{"bare escape", "a\x1bZb", "ab"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
		{"drops carriage return", "a\rb", "ab"},
		{"drops bell", "ding\x07", "ding"},
		{"drops delete", "a\x7fb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestUser_MarkupStaysLiteral(t *testing.T) {
	r := New(model.ThemeDark, 80, true)

	// Markup-significant input must render as visible text in the user
	// path, never interpreted.
	in := "<script>alert('x')</script> **not bold** `not code`"
	assert.Equal(t, in, r.User(in))
}

func TestUser_EscapeInjectionNeutralized(t *testing.T) {
	r := New(model.ThemeDark, 80, true)
	got := r.User("innocent\x1b]0;evil-title\x07text")
	assert.NotContains(t, got, "\x1b")
	assert.Contains(t, got, "innocent")
	assert.Contains(t, got, "text")
}

func TestAssistant_EscapeInjectionNeutralizedBeforeMarkdown(t *testing.T) {
	r := New(model.ThemeDark, 80, false) // plain path keeps output inspectable
	got := r.Assistant("hello \x1b[31mworld")
	assert.NotContains(t, got, "\x1b[31m", "raw escapes must not survive into output")
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "world")
}

func TestAssistant_ScriptTagVisible(t *testing.T) {
	r := New(model.ThemeDark, 80, true)
	got := r.Assistant("look: `<script>alert(1)</script>`")
	// The tag text survives as visible characters after markdown
	// rendering; it is content, not structure.
	assert.Contains(t, got, "<script>")
}

// =============================================================================
// CODE FENCES
// =============================================================================

func TestHighlightFences_ContentPreserved(t *testing.T) {
	in := "before\n```go\nfmt.Println(\"<script>\")\n```\nafter"
	out := HighlightFences(in, 80)

	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
	// Highlighting wraps the code in color codes but every literal
	// character of the content must still be present.
	assert.Contains(t, stripANSI(out), "fmt.Println(\"<script>\")")
}

func TestHighlightFences_UnclosedFence(t *testing.T) {
	in := "```python\nprint('hi')"
	out := HighlightFences(in, 80)
	assert.Contains(t, stripANSI(out), "print('hi')")
}

func TestHighlightFences_NoFences(t *testing.T) {
	in := "just some text\nwith lines"
	assert.Equal(t, in, HighlightFences(in, 80))
}

// =============================================================================
// RENDERER LIFECYCLE
// =============================================================================

func TestRenderer_ResizeKeepsWorking(t *testing.T) {
	r := New(model.ThemeLight, 120, true)
	r.Resize(40)
	out := r.Assistant("# Title\n\nbody text")
	assert.NotEmpty(t, out)
	assert.Contains(t, stripANSI(out), "Title")
}

// stripANSI removes escape sequences from rendered output for assertions.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if inEscape {
			if r >= '@' && r <= '~' {
				inEscape = false
			}
			continue
		}
		if r == 0x1b {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
