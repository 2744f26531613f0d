// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "math"

// Generation parameter bounds. Temperature moves in steps of 0.01 within
// [0, 1]; values outside the range are clamped, never rejected.
const (
	TemperatureMin  = 0.0
	TemperatureMax  = 1.0
	TemperatureStep = 0.01

	DefaultTemperature = 0.35
	DefaultMaxTokens   = 400

	MaxTokensMin  = 64
	MaxTokensMax  = 2048
	MaxTokensStep = 64
)

// Theme selects the presentation palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// FontSize selects the presentation scale.
type FontSize string

const (
	FontNormal FontSize = "normal"
	FontLarge  FontSize = "large"
)

// =============================================================================
// SETTINGS TYPE
// =============================================================================

// Settings holds the transient user preferences that parameterize outgoing
// requests and presentation. A single instance lives on the app model for
// the lifetime of the process; nothing here is persisted, and reading or
// writing a setting has no backend side effect until the next send or
// session-creation call embeds the current values.
type Settings struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
	Sound        bool
	Theme        Theme
	FontSize     FontSize
}

// DefaultSettings returns settings matching the backend's session defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Sound:       true,
		Theme:       ThemeDark,
		FontSize:    FontNormal,
	}
}

// SetTemperature clamps t to [TemperatureMin, TemperatureMax] and snaps it
// to the nearest TemperatureStep.
func (s *Settings) SetTemperature(t float64) {
	if t < TemperatureMin {
		t = TemperatureMin
	}
	if t > TemperatureMax {
		t = TemperatureMax
	}
	s.Temperature = math.Round(t/TemperatureStep) * TemperatureStep
}

// AdjustTemperature nudges the temperature by n steps.
func (s *Settings) AdjustTemperature(n int) {
	s.SetTemperature(s.Temperature + float64(n)*TemperatureStep)
}

// ToggleTheme flips between dark and light.
func (s *Settings) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
}

// ToggleFontSize flips between normal and large.
func (s *Settings) ToggleFontSize() {
	if s.FontSize == FontNormal {
		s.FontSize = FontLarge
	} else {
		s.FontSize = FontNormal
	}
}
