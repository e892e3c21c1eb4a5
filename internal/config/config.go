// Package config loads and saves codecanvas settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalid is returned by Load for a config file with unusable values.
var ErrInvalid = errors.New("invalid config")

// Config holds codecanvas configuration.
type Config struct {
	Surface  SurfaceConfig  `toml:"surface"`
	Terminal TerminalConfig `toml:"terminal"`
}

// SurfaceConfig controls off-screen rendering.
type SurfaceConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Theme  string `toml:"theme"` // "light" or "dark"
}

// TerminalConfig controls the interactive terminal view.
type TerminalConfig struct {
	CellWidth     int    `toml:"cell_width"`
	CellHeight    int    `toml:"cell_height"`
	DoubleClickMS int    `toml:"double_click_ms"`
	PanModifier   string `toml:"pan_modifier"` // "alt", "ctrl", "shift" or "none"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Surface:  SurfaceConfig{Width: 800, Height: 600, Theme: ThemeLight},
		Terminal: TerminalConfig{CellWidth: 10, CellHeight: 20, DoubleClickMS: 400, PanModifier: "alt"},
	}
}

// Dark reports whether the dark theme is selected.
func (c *Config) Dark() bool {
	return c.Surface.Theme == ThemeDark
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	switch c.Surface.Theme {
	case "", ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: surface.theme %q (want %s or %s)", ErrInvalid, c.Surface.Theme, ThemeLight, ThemeDark)
	}
	return nil
}

// DoubleClick returns the double-click window.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.Terminal.DoubleClickMS) * time.Millisecond
}

// ConfigDir returns the codecanvas config directory.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "codecanvas")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
