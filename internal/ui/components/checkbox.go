// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// TRISTATE CHECKBOX
// =============================================================================

// TriCheckbox is the three-state marker toggle: off, marked, and marked
// with coordinate labels. A repeated press cycles through all three.
type TriCheckbox struct {
	Label string
	State plot.MarkState

	focused bool
}

// NewTriCheckbox creates a checkbox in the off state.
func NewTriCheckbox(label string) TriCheckbox {
	return TriCheckbox{Label: label}
}

// Toggle advances to the next state.
func (c *TriCheckbox) Toggle() {
	c.State = c.State.Cycle()
}

// Focus gives the checkbox keyboard focus.
func (c *TriCheckbox) Focus() { c.focused = true }

// Blur removes keyboard focus.
func (c *TriCheckbox) Blur() { c.focused = false }

// Focused reports whether the checkbox has keyboard focus.
func (c TriCheckbox) Focused() bool { return c.focused }

// glyph renders the state indicator.
func (c TriCheckbox) glyph() string {
	switch c.State {
	case plot.MarkOn:
		return "[x]"
	case plot.MarkLabel:
		return "[#]"
	default:
		return "[ ]"
	}
}

// View renders the checkbox with its label.
func (c TriCheckbox) View(theme *styles.Theme) string {
	label := theme.OptionLabel
	if c.focused {
		label = theme.FieldFocused
	}
	return label.Render(c.Label) + " " + theme.Checkbox.Render(c.glyph())
}
