// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"

	"github.com/s-quirin/easyguing/internal/quantity"
)

func validDescriptor() *Descriptor {
	return &Descriptor{
		Key:   "test",
		Title: "Test model",
		Inputs: []Input{
			{Key: "x", Name: "Position", Values: []float64{0, 0.5, 1}, Unit: "m"},
			{Key: "k", Name: "Stiffness", Values: []float64{10}, Unit: "N/m"},
		},
		Output: Option{Name: "output", Choices: []string{"Force"}},
		PlotX:  "x",
		Eval: func(env Env, vars map[string]quantity.Quantity, opts Choices) (quantity.Quantity, error) {
			return vars["k"].Mul(vars["x"]), nil
		},
	}
}

func TestDescriptorValidate(t *testing.T) {
	if err := validDescriptor().Validate(); err != nil {
		t.Fatalf("valid descriptor rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Descriptor)
	}{
		{"missing eval", func(d *Descriptor) { d.Eval = nil }},
		{"no inputs", func(d *Descriptor) { d.Inputs = nil }},
		{"bad plot axis", func(d *Descriptor) { d.PlotX = "nope" }},
		{"no output choices", func(d *Descriptor) { d.Output.Choices = nil }},
		{"duplicate input", func(d *Descriptor) { d.Inputs = append(d.Inputs, d.Inputs[0]) }},
		{"bad unit", func(d *Descriptor) { d.Inputs[0].Unit = "furlong" }},
		{"unknown option tag", func(d *Descriptor) { d.Inputs[0].AppliesTo = []string{"nope"} }},
	}
	for _, tc := range cases {
		d := validDescriptor()
		tc.mutate(d)
		err := d.Validate()
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Errorf("%s: err = %v, want *ConfigurationError", tc.name, err)
		}
	}
}

func TestRegistryOrderAndIsolation(t *testing.T) {
	r := NewRegistry()

	a := validDescriptor()
	a.Key = "a"
	b := validDescriptor()
	b.Key = "b"
	broken := validDescriptor()
	broken.Key = "broken"
	broken.PlotX = "nope"

	if err := r.Register(a); err != nil {
		t.Fatal(err)
	}
	// A broken model is rejected without affecting the others.
	if err := r.Register(broken); err == nil {
		t.Error("broken model was accepted")
	}
	if err := r.Register(b); err != nil {
		t.Fatal(err)
	}

	all := r.All()
	if len(all) != 2 || all[0].Key != "a" || all[1].Key != "b" {
		t.Errorf("All() = %v, want registration order [a b]", all)
	}
	if _, err := r.Get("broken"); err == nil {
		t.Error("Get(broken) should fail")
	}
}

func TestActiveInputs(t *testing.T) {
	d := validDescriptor()
	d.Options = []Option{{Name: "Mode", Choices: []string{"Simple", "Full"}}}
	d.Inputs = append(d.Inputs,
		Input{Key: "extra", Name: "Extra", Values: []float64{1}, Unit: "", AppliesTo: []string{"Full"}})
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}

	simple := d.ActiveInputs(Choices{"Mode": "Simple", "output": "Force"})
	if len(simple) != 2 {
		t.Errorf("Simple mode: %d active inputs, want 2", len(simple))
	}
	full := d.ActiveInputs(Choices{"Mode": "Full", "output": "Force"})
	if len(full) != 3 {
		t.Errorf("Full mode: %d active inputs, want 3", len(full))
	}
}

func TestDefaultQuantity(t *testing.T) {
	in := Input{Key: "x", Values: []float64{0, 0.5, 1}, Unit: "m"}
	q, err := in.DefaultQuantity()
	if err != nil {
		t.Fatal(err)
	}
	if q.Value() != 0.5 || q.Unit() != "m" {
		t.Errorf("DefaultQuantity = %v, want 0.5 m", q)
	}
}
