// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows the computation state, the active model and the key
// shortcuts at the bottom of the screen.
type StatusBar struct {
	width  int
	model  string
	points int
	state  plot.State
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() StatusBar {
	return StatusBar{state: plot.Idle}
}

// SetWidth sets the render width.
func (b *StatusBar) SetWidth(width int) { b.width = width }

// SetModel sets the displayed model title.
func (b *StatusBar) SetModel(model string) { b.model = model }

// SetPoints sets the displayed sample count.
func (b *StatusBar) SetPoints(points int) { b.points = points }

// SetState sets the dispatcher state.
func (b *StatusBar) SetState(state plot.State) { b.state = state }

// stateIcon pairs an indicator glyph with each dispatcher state.
func stateIcon(s plot.State) string {
	switch s {
	case plot.Busy:
		return "*"
	case plot.PendingChanges:
		return "!"
	default:
		return "="
	}
}

// View renders the status bar.
func (b StatusBar) View(theme *styles.Theme) string {
	style := theme.StatusIdle
	switch b.state {
	case plot.Busy:
		style = theme.StatusBusy
	case plot.PendingChanges:
		style = theme.StatusPending
	}
	status := style.Render(stateIcon(b.state) + " " + b.state.String())

	left := status
	if b.model != "" {
		left += "  " + b.model
	}
	if b.points > 0 {
		left += fmt.Sprintf("  %d pts", b.points)
	}

	shortcuts := strings.Join([]string{
		theme.ShortcutKey.Render("tab") + theme.ShortcutDesc.Render(" model"),
		theme.ShortcutKey.Render("enter") + theme.ShortcutDesc.Render(" calc"),
		theme.ShortcutKey.Render("^E") + theme.ShortcutDesc.Render(" export"),
		theme.ShortcutKey.Render("^D") + theme.ShortcutDesc.Render(" info"),
		theme.ShortcutKey.Render("^C") + theme.ShortcutDesc.Render(" quit"),
	}, "  ")

	if b.width <= 0 {
		return theme.StatusBar.Render(left + "  " + shortcuts)
	}
	// lipgloss.Width ignores the ANSI sequences of the styled fragments.
	gap := b.width - lipgloss.Width(left) - lipgloss.Width(shortcuts) - 2
	if gap < 1 {
		return theme.StatusBar.Width(b.width).Render(left)
	}
	return theme.StatusBar.Width(b.width).
		Render(left + strings.Repeat(" ", gap) + shortcuts)
}
