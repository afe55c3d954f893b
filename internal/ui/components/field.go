// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/s-quirin/easyguing/internal/quantity"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// =============================================================================
// QUANTITY FIELD
// =============================================================================

// QuantityField is a text input accepting a semicolon-separated quantity
// list whose dimension must match the declared unit. Validation runs on
// every keystroke; the page only rebuilds its snapshot from valid fields.
type QuantityField struct {
	Key   string // input key in variable maps
	Label string // display name
	Unit  string // declared unit, defines the required dimension

	input textinput.Model
	dim   quantity.Dimension
	err   error
}

// NewQuantityField creates a field for one model input. The declared unit
// must already be validated by descriptor registration.
func NewQuantityField(key, label, unit, text string) QuantityField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.SetValue(text)

	declared, _ := quantity.New(0, unit)
	f := QuantityField{
		Key:   key,
		Label: label,
		Unit:  unit,
		input: ti,
		dim:   declared.Dim(),
	}
	f.validate()
	return f
}

// Value returns the raw field text.
func (f QuantityField) Value() string {
	return f.input.Value()
}

// SetValue replaces the field text and revalidates.
func (f *QuantityField) SetValue(text string) {
	f.input.SetValue(text)
	f.validate()
}

// Err returns the current validation error, nil when the text parses.
func (f QuantityField) Err() error {
	return f.err
}

// Quantities returns the parsed quantity list of a valid field.
func (f QuantityField) Quantities() ([]quantity.Quantity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return quantity.ParseList(f.input.Value())
}

// Focus gives the field keyboard focus.
func (f *QuantityField) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus.
func (f *QuantityField) Blur() {
	f.input.Blur()
}

// Focused reports whether the field has keyboard focus.
func (f QuantityField) Focused() bool {
	return f.input.Focused()
}

// Update handles key input and revalidates after every change.
func (f QuantityField) Update(msg tea.Msg) (QuantityField, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	f.validate()
	return f, cmd
}

// validate parses the text as a quantity list and checks every entry
// against the declared dimension.
func (f *QuantityField) validate() {
	qs, err := quantity.ParseList(f.input.Value())
	if err != nil {
		f.err = err
		return
	}
	for _, q := range qs {
		if q.Dim() != f.dim {
			f.err = &quantity.DimensionalityError{
				Want: f.dim, Got: q.Dim(), Context: "input " + f.Key,
			}
			return
		}
	}
	f.err = nil
}

// View renders the labeled field, appending the validation error when the
// text is invalid.
func (f QuantityField) View(theme *styles.Theme) string {
	label := theme.FieldLabel
	if f.Focused() {
		label = theme.FieldFocused
	}
	out := label.Render(f.Label) + " " + f.input.View() +
		" " + theme.FieldUnit.Render("["+f.Unit+"]")
	if f.err != nil {
		out += "\n" + theme.FieldError.Render("  "+f.err.Error())
	}
	return out
}
