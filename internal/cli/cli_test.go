// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgsFlags(t *testing.T) {
	a := ParseArgs([]string{"abc123", "--format", "structured", "--json", "-o", "out"})
	assert.Equal(t, "abc123", a.Subcommand())
	assert.Equal(t, "structured", a.Flag("format"))
	assert.Equal(t, "out", a.Flag("out", "o"))
	assert.True(t, a.BoolFlag("json"))
	assert.False(t, a.BoolFlag("missing"))
}

func TestParseArgsEqualsForm(t *testing.T) {
	a := ParseArgs([]string{"--format=document", "--verbose=false"})
	assert.Equal(t, "document", a.Flag("format"))
	assert.False(t, a.BoolFlag("verbose"))
}

func TestParseArgsIntFlag(t *testing.T) {
	a := ParseArgs([]string{"--limit", "25", "--bad", "x"})
	assert.Equal(t, 25, a.IntFlag(10, "limit"))
	assert.Equal(t, 10, a.IntFlag(10, "missing"))
}

func TestParseArgsPositional(t *testing.T) {
	a := ParseArgs([]string{"one", "two"})
	assert.Equal(t, []string{"one", "two"}, a.Positional())
	assert.Equal(t, "one", a.Subcommand())
}
