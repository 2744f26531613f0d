// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the Orion client.
package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// TruncateWidth truncates s so that it occupies at most maxWidth terminal
// cells, appending an ellipsis when truncation occurs. Width is measured in
// display cells, not bytes or runes, so CJK and emoji are handled correctly.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadWidth pads s with spaces on the right to exactly width cells,
// truncating first if it is too long.
func PadWidth(s string, width int) string {
	s = TruncateWidth(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// NormalizeQuery prepares user-entered search text for matching: Unicode
// NFC normalization, case folding, and whitespace collapsing. The backend
// does its own matching; normalizing here keeps local highlighting and the
// wire query consistent regardless of how the text was typed.
func NormalizeQuery(q string) string {
	q = norm.NFC.String(q)
	q = strings.ToLower(q)
	return strings.Join(strings.Fields(q), " ")
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
