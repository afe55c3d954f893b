// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Plot.Points != 101 {
		t.Errorf("default points = %d, want 101", cfg.Plot.Points)
	}
}

func TestLoadFromPathRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Plot.Points = 51
	cfg.Format.Locale = "de"
	cfg.UI.Theme = "light"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Plot.Points != 51 {
		t.Errorf("points = %d, want 51", loaded.Plot.Points)
	}
	if loaded.Format.Locale != "de" {
		t.Errorf("locale = %q, want %q", loaded.Format.Locale, "de")
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q, want %q", loaded.UI.Theme, "light")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Plot.Points != Default().Plot.Points {
		t.Errorf("points = %d, want default %d", cfg.Plot.Points, Default().Plot.Points)
	}
}

func TestSetDefaultsClampsPoints(t *testing.T) {
	cfg := Default()
	cfg.Plot.Points = 1
	cfg.SetDefaults()
	if cfg.Plot.Points != 2 {
		t.Errorf("points clamped to %d, want 2", cfg.Plot.Points)
	}

	cfg.Plot.Points = 5000
	cfg.SetDefaults()
	if cfg.Plot.Points != 1001 {
		t.Errorf("points clamped to %d, want 1001", cfg.Plot.Points)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Format.Precision = 0
	cfg.UI.Theme = "neon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid config passed validation")
	}
	errs, ok := err.(ValidateErrors)
	if !ok || len(errs) != 2 {
		t.Fatalf("err = %v, want 2 validation errors", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("EASYGUING_POINTS", "33")
	t.Setenv("EASYGUING_LOCALE", "de")
	t.Setenv("EASYGUING_HISTORY", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Plot.Points != 33 {
		t.Errorf("points = %d, want 33", cfg.Plot.Points)
	}
	if cfg.Format.Locale != "de" {
		t.Errorf("locale = %q, want %q", cfg.Format.Locale, "de")
	}
	if cfg.Storage.Enabled {
		t.Error("history still enabled")
	}
}

func TestLanguageTag(t *testing.T) {
	cfg := Default()
	cfg.Format.Locale = "de"
	if got := cfg.LanguageTag(); got != language.German {
		t.Errorf("tag = %v, want German", got)
	}
	cfg.Format.Locale = "not a tag"
	if got := cfg.LanguageTag(); got != language.English {
		t.Errorf("fallback tag = %v, want English", got)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 1)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Plot.Points = 21
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got.Plot.Points != 21 {
			t.Errorf("reloaded points = %d, want 21", got.Plot.Points)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload config")
	}
}

func TestWatcherIgnoresInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 1)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("not = [valid"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Error("invalid file triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}
}
