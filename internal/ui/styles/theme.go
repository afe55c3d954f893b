// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// ==========================================================================
	// INPUT FIELD STYLES
	// ==========================================================================

	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	FieldUnit    lipgloss.Style
	FieldError   lipgloss.Style

	// ==========================================================================
	// OPTION AND CHECKBOX STYLES
	// ==========================================================================

	OptionLabel  lipgloss.Style
	OptionValue  lipgloss.Style
	OptionActive lipgloss.Style
	Checkbox     lipgloss.Style

	// ==========================================================================
	// PLOT AREA STYLES
	// ==========================================================================

	PlotBox     lipgloss.Style
	PlotTitle   lipgloss.Style
	ResultValue lipgloss.Style
	Description lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusIdle    lipgloss.Style
	StatusBusy    lipgloss.Style
	StatusPending lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	// Input fields
	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(18)

	t.FieldFocused = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Width(18)

	t.FieldUnit = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	// Options and checkboxes
	t.OptionLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(18)

	t.OptionValue = lipgloss.NewStyle().
		Foreground(Cyan)

	t.OptionActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 1)

	t.Checkbox = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Plot area
	t.PlotBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PlotTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Align(lipgloss.Center)

	t.ResultValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.Description = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusIdle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.StatusBusy = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.StatusPending = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Error box
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// CompactMode reports whether the terminal is too narrow for the full
// two-column layout.
func (t *Theme) CompactMode() bool {
	return t.Width > 0 && t.Width < 80
}
