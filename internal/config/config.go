// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the Orion client.
//
// Precedence, lowest to highest:
//   - built-in defaults
//   - ~/.orion/config.toml
//   - a .env file in the working directory (loaded into the environment)
//   - ORION_* environment variables
//
// The config file seeds the initial session settings (model, temperature,
// and so on); once the client is running those live in memory only and are
// never written back.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/orionchat/orion-tui/internal/model"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete client configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig locates the Orion backend.
type ServerConfig struct {
	// BaseURL is the backend address, e.g. "http://localhost:5000".
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// ChatConfig seeds the initial generation settings.
type ChatConfig struct {
	Model        string  `toml:"model"`
	Temperature  float64 `toml:"temperature"`
	MaxTokens    int     `toml:"max_tokens"`
	SystemPrompt string  `toml:"system_prompt"`
}

// UIConfig seeds the initial presentation settings.
type UIConfig struct {
	// Theme is "dark" or "light".
	Theme string `toml:"theme"`
	// FontSize is "normal" or "large".
	FontSize string `toml:"font_size"`
	// Sound toggles the terminal bell on replies and errors.
	Sound bool `toml:"sound"`
	// Markdown toggles markdown rendering of assistant replies.
	Markdown bool `toml:"markdown"`
}

// Default returns the built-in defaults, matching the backend's own
// session defaults where the two overlap.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://localhost:5000",
			TimeoutSecs: 60,
		},
		Chat: ChatConfig{
			Model:       model.DefaultModel,
			Temperature: model.DefaultTemperature,
			MaxTokens:   model.DefaultMaxTokens,
		},
		UI: UIConfig{
			Theme:    string(model.ThemeDark),
			FontSize: string(model.FontNormal),
			Sound:    true,
			Markdown: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the client's config directory (~/.orion), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".orion")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file path (~/.orion/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the client log file path (~/.orion/client.log).
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "client.log"), nil
}

// SessionPath returns the saved login cookie path (~/.orion/session.json).
func SessionPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration with full precedence applied.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit file path. A missing
// file is not an error; defaults and the environment still apply.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	// .env is optional; ignore a missing file but not the variables in a
	// present one.
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays ORION_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("ORION_SERVER_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("ORION_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.TimeoutSecs = n
		}
	}
	if v := os.Getenv("ORION_MODEL"); v != "" {
		cfg.Chat.Model = v
	}
	if v := os.Getenv("ORION_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Chat.Temperature = f
		}
	}
	if v := os.Getenv("ORION_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxTokens = n
		}
	}
	if v := os.Getenv("ORION_SYSTEM_PROMPT"); v != "" {
		cfg.Chat.SystemPrompt = v
	}
	if v := os.Getenv("ORION_THEME"); v != "" {
		cfg.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("ORION_FONT_SIZE"); v != "" {
		cfg.UI.FontSize = strings.ToLower(v)
	}
	if v := os.Getenv("ORION_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Sound = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validation errors.
var (
	ErrBadServerURL = errors.New("server.base_url is not a valid URL")
	ErrBadTheme     = errors.New(`ui.theme must be "dark" or "light"`)
	ErrBadFontSize  = errors.New(`ui.font_size must be "normal" or "large"`)
)

// Validate checks the configuration, clamping numeric fields into range
// rather than rejecting them.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadServerURL, c.Server.BaseURL)
	}

	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = 60
	}
	if c.Chat.Temperature < model.TemperatureMin {
		c.Chat.Temperature = model.TemperatureMin
	}
	if c.Chat.Temperature > model.TemperatureMax {
		c.Chat.Temperature = model.TemperatureMax
	}
	if c.Chat.MaxTokens <= 0 {
		c.Chat.MaxTokens = model.DefaultMaxTokens
	}

	switch model.Theme(c.UI.Theme) {
	case model.ThemeDark, model.ThemeLight:
	default:
		return fmt.Errorf("%w: %q", ErrBadTheme, c.UI.Theme)
	}
	switch model.FontSize(c.UI.FontSize) {
	case model.FontNormal, model.FontLarge:
	default:
		return fmt.Errorf("%w: %q", ErrBadFontSize, c.UI.FontSize)
	}
	return nil
}

// Settings builds the initial in-memory settings from the configuration.
func (c *Config) Settings() *model.Settings {
	s := model.DefaultSettings()
	s.Model = c.Chat.Model
	s.SetTemperature(c.Chat.Temperature)
	s.MaxTokens = c.Chat.MaxTokens
	s.SystemPrompt = c.Chat.SystemPrompt
	s.Sound = c.UI.Sound
	s.Theme = model.Theme(c.UI.Theme)
	s.FontSize = model.FontSize(c.UI.FontSize)
	return s
}
