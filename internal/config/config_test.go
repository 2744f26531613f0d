// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionchat/orion-tui/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, model.DefaultModel, cfg.Chat.Model)
	assert.Equal(t, string(model.ThemeDark), cfg.UI.Theme)
	assert.True(t, cfg.UI.Markdown)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
base_url = "https://chat.example.com"
timeout_secs = 30

[chat]
model = "anthropic/claude-3-haiku"
temperature = 0.7
max_tokens = 900

[ui]
theme = "light"
font_size = "large"
sound = false
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSecs)
	assert.Equal(t, "anthropic/claude-3-haiku", cfg.Chat.Model)
	assert.Equal(t, 0.7, cfg.Chat.Temperature)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "large", cfg.UI.FontSize)
	assert.False(t, cfg.UI.Sound)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
base_url = "http://from-file:5000"
`)
	t.Setenv("ORION_SERVER_URL", "http://from-env:5000")
	t.Setenv("ORION_TEMPERATURE", "0.9")
	t.Setenv("ORION_SOUND", "false")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:5000", cfg.Server.BaseURL)
	assert.Equal(t, 0.9, cfg.Chat.Temperature)
	assert.False(t, cfg.UI.Sound)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Server.BaseURL = "not a url"
	assert.ErrorIs(t, cfg.Validate(), ErrBadServerURL)

	cfg = Default()
	cfg.UI.Theme = "solarized"
	assert.ErrorIs(t, cfg.Validate(), ErrBadTheme)

	cfg = Default()
	cfg.UI.FontSize = "tiny"
	assert.ErrorIs(t, cfg.Validate(), ErrBadFontSize)
}

func TestValidate_ClampsNumericFields(t *testing.T) {
	cfg := Default()
	cfg.Chat.Temperature = 3.5
	cfg.Chat.MaxTokens = -1
	cfg.Server.TimeoutSecs = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, model.TemperatureMax, cfg.Chat.Temperature)
	assert.Equal(t, model.DefaultMaxTokens, cfg.Chat.MaxTokens)
	assert.Equal(t, 60, cfg.Server.TimeoutSecs)
}

func TestSettings_FromConfig(t *testing.T) {
	cfg := Default()
	cfg.Chat.Model = "m"
	cfg.Chat.Temperature = 0.493 // snaps to the 0.01 grid
	cfg.UI.Theme = "light"
	cfg.UI.FontSize = "large"

	s := cfg.Settings()
	assert.Equal(t, "m", s.Model)
	assert.InDelta(t, 0.49, s.Temperature, 1e-9)
	assert.Equal(t, model.ThemeLight, s.Theme)
	assert.Equal(t, model.FontLarge, s.FontSize)
}
