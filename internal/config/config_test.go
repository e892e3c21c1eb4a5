package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Surface.Width = 1024
	cfg.Surface.Theme = "dark"
	cfg.Terminal.PanModifier = "ctrl"
	cfg.Terminal.DoubleClickMS = 250

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *cfg {
		t.Errorf("got %+v, want %+v", got, cfg)
	}
	if !got.Dark() || got.DoubleClick() != 250*time.Millisecond {
		t.Errorf("Dark() = %v, DoubleClick() = %v", got.Dark(), got.DoubleClick())
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[surface]\nheight = 300\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Surface.Height != 300 || cfg.Surface.Width != 800 || cfg.Terminal.CellWidth != 10 {
		t.Errorf("partial file not merged over defaults: %+v", cfg)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[surface\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := Path(); got != filepath.Join("/tmp/xdg", "codecanvas", "config.toml") {
		t.Errorf("Path() = %q", got)
	}
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[surface]\ntheme = \"sepia\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load = %v, want ErrInvalid", err)
	}
}
