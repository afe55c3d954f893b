// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"

	"github.com/s-quirin/easyguing/internal/quantity"
)

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Env is the evaluation environment handed to a model: the quantity
// factory for constants and the configured integration grid resolution.
// Steps <= 0 lets helpers fall back to their default resolution.
type Env struct {
	Q     quantity.Factory
	Steps int
}

// DefaultEnv returns the environment with the default quantity factory
// and the helpers' default resolution.
func DefaultEnv() Env { return Env{Q: quantity.DefaultFactory} }

// EvalFunc is a model's pure evaluation function. It receives the
// evaluation environment, the current variable values normalized to base
// units, and the current option choices, and returns one scalar quantity.
// It must not retain or mutate its arguments.
type EvalFunc func(env Env, vars map[string]quantity.Quantity, opts Choices) (quantity.Quantity, error)

// Descriptor is the static metadata and evaluation function of one model.
// Loaded once at registration and read-only thereafter.
type Descriptor struct {
	// Key is the stable identifier (CLI argument, storage key).
	Key string

	// Title, Description, Author, Version describe the model to the user.
	// Description is Markdown.
	Title       string
	Description string
	Author      string
	Version     string

	// Inputs are the unit-carrying inputs in declaration order.
	Inputs []Input

	// Options are the named choice selectors in declaration order. The
	// output selector is NOT part of this list; it has its own field.
	Options []Option

	// Output is the reserved output-quantity selector: which of the
	// model's result quantities is computed. Always at least one choice.
	Output Option

	// PlotX is the key of the default independent-variable input.
	// Empty means the model cannot be plotted.
	PlotX string

	// Eval computes the model.
	Eval EvalFunc
}

// Input describes one unit-carrying model input.
type Input struct {
	// Key identifies the input in variable maps and snapshots.
	Key string

	// Name is the display name.
	Name string

	// Values are the representative values (min … max) pre-filling the
	// plotted-range field. A single value means the input does not vary
	// by default.
	Values []float64

	// Unit is the declared unit; entered text must match its dimension.
	Unit string

	// AppliesTo optionally names option choices this input belongs to.
	// An input tagged for a choice is only active while that choice is
	// selected. Empty means always active.
	AppliesTo []string
}

// DefaultQuantity returns the midpoint of the representative values in the
// declared unit, the pre-fill of the point-calculation field.
func (in Input) DefaultQuantity() (quantity.Quantity, error) {
	if len(in.Values) == 0 {
		return quantity.Quantity{}, &ConfigurationError{Reason: "input " + in.Key + " has no values"}
	}
	mid := (in.Values[0] + in.Values[len(in.Values)-1]) / 2
	return quantity.New(mid, in.Unit)
}

// Quantities returns the representative values as parsed quantities.
func (in Input) Quantities() ([]quantity.Quantity, error) {
	qs := make([]quantity.Quantity, len(in.Values))
	for i, v := range in.Values {
		q, err := quantity.New(v, in.Unit)
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}
	return qs, nil
}

// Option is a named, ordered set of string choices.
type Option struct {
	Name    string
	Choices []string
}

// Choices maps option name to the selected choice. The reserved output
// selector is stored under the option's own name like any other.
type Choices map[string]string

// Clone returns an independent copy.
func (c Choices) Clone() Choices {
	out := make(Choices, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Equal reports value-wise equality.
func (c Choices) Equal(o Choices) bool {
	if len(c) != len(o) {
		return false
	}
	for k, v := range c {
		if o[k] != v {
			return false
		}
	}
	return true
}

// =============================================================================
// VALIDATION
// =============================================================================

// Input returns the input with the given key, or nil.
func (d *Descriptor) Input(key string) *Input {
	for i := range d.Inputs {
		if d.Inputs[i].Key == key {
			return &d.Inputs[i]
		}
	}
	return nil
}

// DefaultChoices returns the first choice of every option including the
// output selector.
func (d *Descriptor) DefaultChoices() Choices {
	c := make(Choices, len(d.Options)+1)
	for _, opt := range d.Options {
		c[opt.Name] = opt.Choices[0]
	}
	c[d.Output.Name] = d.Output.Choices[0]
	return c
}

// ActiveInputs returns the inputs applicable under the given choices:
// untagged inputs plus inputs whose AppliesTo names a selected choice.
func (d *Descriptor) ActiveInputs(c Choices) []Input {
	selected := make(map[string]bool, len(c))
	for _, v := range c {
		selected[v] = true
	}
	var out []Input
	for _, in := range d.Inputs {
		if len(in.AppliesTo) == 0 {
			out = append(out, in)
			continue
		}
		for _, tag := range in.AppliesTo {
			if selected[tag] {
				out = append(out, in)
				break
			}
		}
	}
	return out
}

// Validate checks internal consistency. A failing model is rejected at
// registration; other models remain usable.
func (d *Descriptor) Validate() error {
	if d.Key == "" {
		return &ConfigurationError{Reason: "missing key"}
	}
	if d.Eval == nil {
		return &ConfigurationError{Model: d.Key, Reason: "missing evaluation function"}
	}
	if len(d.Inputs) == 0 {
		return &ConfigurationError{Model: d.Key, Reason: "no inputs"}
	}
	seen := make(map[string]bool, len(d.Inputs))
	choiceTags := make(map[string]bool)
	for _, opt := range append(append([]Option{}, d.Options...), d.Output) {
		if len(opt.Choices) == 0 {
			return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("option %q has no choices", opt.Name)}
		}
		for _, ch := range opt.Choices {
			choiceTags[ch] = true
		}
	}
	for _, in := range d.Inputs {
		if seen[in.Key] {
			return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("duplicate input %q", in.Key)}
		}
		seen[in.Key] = true
		if len(in.Values) == 0 {
			return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("input %q has no values", in.Key)}
		}
		if _, err := quantity.New(0, in.Unit); err != nil {
			return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("input %q: bad unit %q", in.Key, in.Unit)}
		}
		for _, tag := range in.AppliesTo {
			if !choiceTags[tag] {
				return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("input %q applies to unknown choice %q", in.Key, tag)}
			}
		}
	}
	if d.Output.Name == "" {
		return &ConfigurationError{Model: d.Key, Reason: "missing output selector"}
	}
	if d.PlotX != "" && !seen[d.PlotX] {
		return &ConfigurationError{Model: d.Key, Reason: fmt.Sprintf("plot axis %q is not an input", d.PlotX)}
	}
	return nil
}
