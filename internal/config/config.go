// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for easyguing.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation. File location: ~/.easyguing/config.toml.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/s-quirin/easyguing/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete easyguing configuration.
type Config struct {
	Version string `toml:"version"`

	// Plot configuration
	Plot PlotConfig `toml:"plot"`

	// Format configuration (number rendering)
	Format FormatConfig `toml:"format"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// Storage configuration (point-calculation history)
	Storage StorageConfig `toml:"storage"`
}

// PlotConfig controls curve sampling and rendering.
type PlotConfig struct {
	// Points is the number of samples along the independent axis.
	// Valid range 2-1001; out-of-range values are clamped.
	Points int `toml:"points"`
	// IntegrationSteps is the grid resolution of numeric integration
	// inside model formulas. Valid range 10-100000.
	IntegrationSteps int `toml:"integration_steps"`
	// Width and Height are the PNG export dimensions in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// FormatConfig controls how quantities render as text.
type FormatConfig struct {
	// Precision is the number of significant digits (1-17).
	Precision int `toml:"precision"`
	// Locale is the BCP-47 tag choosing the decimal separator, e.g. "de"
	// renders 2,5 instead of 2.5.
	Locale string `toml:"locale"`
}

// UIConfig contains TUI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// CompactMode hides model descriptions for a denser layout
	CompactMode bool `toml:"compact_mode"`
}

// ExportConfig controls plot export.
type ExportConfig struct {
	// Dir is the directory PNG exports are written to.
	Dir string `toml:"dir"`
}

// StorageConfig controls the point-calculation history database.
type StorageConfig struct {
	// Enabled turns history recording on or off.
	Enabled bool `toml:"enabled"`
	// Path is the SQLite database path (empty = ~/.easyguing/history.db).
	Path string `toml:"path"`
	// MaxEntries caps the history size; oldest entries are pruned.
	MaxEntries int `toml:"max_entries"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Plot: PlotConfig{
			Points:           101,
			IntegrationSteps: 1000,
			Width:            800,
			Height:           500,
		},

		Format: FormatConfig{
			Precision: 4,
			Locale:    "en",
		},

		UI: UIConfig{
			Theme:       "dark",
			CompactMode: false,
		},

		Export: ExportConfig{
			Dir: "", // resolved to ~/.easyguing/exports on demand
		},

		Storage: StorageConfig{
			Enabled:    true,
			Path:       "",
			MaxEntries: 1000,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the easyguing configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".easyguing"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExportDir returns the configured export directory, resolving the default
// under the config dir.
func (c *Config) ExportDir() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// StoragePath returns the configured history database path, resolving the
// default under the config dir.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// LanguageTag parses the configured locale. Unparseable tags fall back to
// English rather than failing startup.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Format.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. A missing file is not an error; defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so a
// crash never leaves a truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# easyguing configuration file\n")
	buf.WriteString("# Generated by easyguing - edit with care\n")
	buf.WriteString("\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Plot.Points < 2 || c.Plot.Points > 1001 {
		errs = append(errs, ValidationError{
			Field:   "plot.points",
			Message: fmt.Sprintf("must be 2-1001, got %d", c.Plot.Points),
		})
	}
	if c.Plot.IntegrationSteps < 10 || c.Plot.IntegrationSteps > 100000 {
		errs = append(errs, ValidationError{
			Field:   "plot.integration_steps",
			Message: fmt.Sprintf("must be 10-100000, got %d", c.Plot.IntegrationSteps),
		})
	}
	if c.Plot.Width < 100 || c.Plot.Height < 100 {
		errs = append(errs, ValidationError{
			Field:   "plot.width",
			Message: fmt.Sprintf("export dimensions must be at least 100x100, got %dx%d", c.Plot.Width, c.Plot.Height),
		})
	}

	if c.Format.Precision < 1 || c.Format.Precision > 17 {
		errs = append(errs, ValidationError{
			Field:   "format.precision",
			Message: fmt.Sprintf("must be 1-17 significant digits, got %d", c.Format.Precision),
		})
	}
	if _, err := language.Parse(c.Format.Locale); err != nil {
		errs = append(errs, ValidationError{
			Field:   "format.locale",
			Message: fmt.Sprintf("invalid BCP-47 tag %q", c.Format.Locale),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.Storage.MaxEntries < 0 {
		errs = append(errs, ValidationError{
			Field:   "storage.max_entries",
			Message: "must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills missing or zero-value fields and clamps out-of-range
// sampling values into their valid window instead of rejecting them.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Plot.Points == 0 {
		c.Plot.Points = defaults.Plot.Points
	}
	if c.Plot.Points < 2 {
		c.Plot.Points = 2
	}
	if c.Plot.Points > 1001 {
		c.Plot.Points = 1001
	}
	if c.Plot.IntegrationSteps == 0 {
		c.Plot.IntegrationSteps = defaults.Plot.IntegrationSteps
	}
	if c.Plot.Width == 0 {
		c.Plot.Width = defaults.Plot.Width
	}
	if c.Plot.Height == 0 {
		c.Plot.Height = defaults.Plot.Height
	}

	if c.Format.Precision == 0 {
		c.Format.Precision = defaults.Format.Precision
	}
	if c.Format.Locale == "" {
		c.Format.Locale = defaults.Format.Locale
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.Storage.MaxEntries == 0 {
		c.Storage.MaxEntries = defaults.Storage.MaxEntries
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - EASYGUING_POINTS: overrides plot.points
//   - EASYGUING_INTEGRATION_STEPS: overrides plot.integration_steps
//   - EASYGUING_PRECISION: overrides format.precision
//   - EASYGUING_LOCALE: overrides format.locale
//   - EASYGUING_THEME: overrides ui.theme
//   - EASYGUING_EXPORT_DIR: overrides export.dir
//   - EASYGUING_HISTORY: set to "0" or "false" to disable history
//   - EASYGUING_DB: overrides storage.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("EASYGUING_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Plot.Points = n
		}
	}
	if v := os.Getenv("EASYGUING_INTEGRATION_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Plot.IntegrationSteps = n
		}
	}
	if v := os.Getenv("EASYGUING_PRECISION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Format.Precision = n
		}
	}
	if v := os.Getenv("EASYGUING_LOCALE"); v != "" {
		c.Format.Locale = v
	}
	if v := os.Getenv("EASYGUING_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("EASYGUING_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("EASYGUING_HISTORY"); v != "" {
		c.Storage.Enabled = !(v == "0" || strings.ToLower(v) == "false")
	}
	if v := os.Getenv("EASYGUING_DB"); v != "" {
		c.Storage.Path = v
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
