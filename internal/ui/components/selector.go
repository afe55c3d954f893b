// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// OPTION SELECTOR
// =============================================================================

// OptionSelector cycles through the choices of one model option.
type OptionSelector struct {
	Name    string
	Choices []string

	index   int
	focused bool
}

// NewOptionSelector creates a selector with the first choice selected.
func NewOptionSelector(name string, choices []string) OptionSelector {
	return OptionSelector{Name: name, Choices: choices}
}

// Value returns the selected choice.
func (s OptionSelector) Value() string {
	if len(s.Choices) == 0 {
		return ""
	}
	return s.Choices[s.index]
}

// Select sets the selection to the named choice if present.
func (s *OptionSelector) Select(choice string) {
	for i, c := range s.Choices {
		if c == choice {
			s.index = i
			return
		}
	}
}

// Next advances to the following choice, wrapping around.
func (s *OptionSelector) Next() {
	if len(s.Choices) > 0 {
		s.index = (s.index + 1) % len(s.Choices)
	}
}

// Prev moves to the preceding choice, wrapping around.
func (s *OptionSelector) Prev() {
	if len(s.Choices) > 0 {
		s.index = (s.index + len(s.Choices) - 1) % len(s.Choices)
	}
}

// Focus gives the selector keyboard focus.
func (s *OptionSelector) Focus() { s.focused = true }

// Blur removes keyboard focus.
func (s *OptionSelector) Blur() { s.focused = false }

// Focused reports whether the selector has keyboard focus.
func (s OptionSelector) Focused() bool { return s.focused }

// View renders the selector with every choice, highlighting the selection.
func (s OptionSelector) View(theme *styles.Theme) string {
	label := theme.OptionLabel
	if s.focused {
		label = theme.FieldFocused
	}
	parts := make([]string, len(s.Choices))
	for i, c := range s.Choices {
		if i == s.index {
			parts[i] = theme.OptionActive.Render(c)
		} else {
			parts[i] = theme.OptionValue.Render(c)
		}
	}
	return label.Render(s.Name) + " " + strings.Join(parts, " ")
}
