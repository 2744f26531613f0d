// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme(t *testing.T) {
	th := NewTheme("dark", "normal")
	assert.Equal(t, "dark", th.Name)
	assert.Equal(t, "normal", th.FontSize)
}

func TestSetThemeSwitchesPalette(t *testing.T) {
	th := NewTheme("dark", "normal")
	th.SetTheme("light")
	assert.Equal(t, "light", th.Name)
}

func TestFontSizeChangesPadding(t *testing.T) {
	th := NewTheme("dark", "normal")
	v, h := th.messagePadding()
	assert.Equal(t, 0, v)
	assert.Equal(t, 2, h)

	th.SetFontSize("large")
	v, h = th.messagePadding()
	assert.Equal(t, 1, v)
	assert.Equal(t, 3, h)
}

func TestResize(t *testing.T) {
	th := NewTheme("dark", "normal")
	th.Resize(120, 40)
	assert.Equal(t, 120, th.Width)
	assert.Equal(t, 40, th.Height)
}
