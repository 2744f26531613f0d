// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// =============================================================================
// SETTINGS PANEL - In-app editor for the chat settings
// =============================================================================

// Settings panel rows, in display order.
const (
	settingModel = iota
	settingTemperature
	settingMaxTokens
	settingSound
	settingTheme
	settingFontSize
	settingCount
)

// SettingsPanel edits the live chat settings. Changes apply immediately to
// the Settings value it holds; they affect the next dispatched message.
type SettingsPanel struct {
	Settings *model.Settings
	Models   []api.ModelInfo // Selectable models, fetched from the backend
	Cursor   int
	active   bool
	theme    *styles.Theme
}

// NewSettingsPanel creates an inactive settings panel bound to settings.
func NewSettingsPanel(theme *styles.Theme, settings *model.Settings) SettingsPanel {
	return SettingsPanel{Settings: settings, theme: theme}
}

// Show activates the panel.
func (p *SettingsPanel) Show() {
	p.active = true
	p.Cursor = 0
}

// Hide deactivates the panel.
func (p *SettingsPanel) Hide() {
	p.active = false
}

// Active reports whether the panel is showing.
func (p *SettingsPanel) Active() bool {
	return p.active
}

// SetModels records the selectable model list.
func (p *SettingsPanel) SetModels(models []api.ModelInfo) {
	p.Models = models
}

// Update handles panel keys. It returns true when the panel consumed the key.
func (p *SettingsPanel) Update(msg tea.Msg) bool {
	if !p.active {
		return false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch key.String() {
	case "esc":
		p.active = false
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < settingCount-1 {
			p.Cursor++
		}
	case "left", "h":
		p.adjust(-1)
	case "right", "l", "enter":
		p.adjust(1)
	default:
		return false
	}
	return true
}

// adjust applies a left/right change to the row under the cursor.
func (p *SettingsPanel) adjust(dir int) {
	s := p.Settings
	switch p.Cursor {
	case settingModel:
		p.cycleModel(dir)
	case settingTemperature:
		s.AdjustTemperature(dir)
	case settingMaxTokens:
		p.adjustMaxTokens(dir)
	case settingSound:
		s.Sound = !s.Sound
	case settingTheme:
		s.ToggleTheme()
	case settingFontSize:
		s.ToggleFontSize()
	}
}

func (p *SettingsPanel) cycleModel(dir int) {
	if len(p.Models) == 0 {
		return
	}
	idx := 0
	for i, m := range p.Models {
		if m.Key == p.Settings.Model {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(p.Models)) % len(p.Models)
	p.Settings.Model = p.Models[idx].Key
}

func (p *SettingsPanel) adjustMaxTokens(dir int) {
	v := p.Settings.MaxTokens + dir*model.MaxTokensStep
	if v < model.MaxTokensMin {
		v = model.MaxTokensMin
	}
	if v > model.MaxTokensMax {
		v = model.MaxTokensMax
	}
	p.Settings.MaxTokens = v
}

// View renders the panel box.
func (p *SettingsPanel) View() string {
	if !p.active {
		return ""
	}
	s := p.Settings

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	rows := []struct {
		label string
		value string
	}{
		{"Model", s.Model},
		{"Temperature", fmt.Sprintf("%.2f", s.Temperature)},
		{"Max tokens", fmt.Sprintf("%d", s.MaxTokens)},
		{"Sound", onOff(s.Sound)},
		{"Theme", string(s.Theme)},
		{"Font size", string(s.FontSize)},
	}

	var b strings.Builder
	b.WriteString(p.theme.HeaderTitle.Render("Settings"))
	b.WriteString("\n\n")
	for i, row := range rows {
		line := p.theme.SettingsLabel.Render(row.label) +
			p.theme.SettingsValue.Render(row.value)
		if i == p.Cursor {
			line = p.theme.SettingsSelected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.theme.FormHint.Render("arrows: change  esc: close"))

	return p.theme.SettingsBox.Render(b.String())
}
