// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import (
	"fmt"

	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// =============================================================================
// SLOT EVALUATION
// =============================================================================

// Evaluator builds the per-slot evaluation function for a descriptor,
// evaluating with the given integration grid resolution (0 for the helper
// default). All quantities are normalized to base units before entering
// the model; the model sees one scalar sample at a time and its results
// are gathered into one series the length of the sample array.
//
// Quantity arithmetic panics (dimension mismatches, malformed factory
// units) are recovered into errors here so a model bug fails the batch
// instead of the process.
func Evaluator(d *model.Descriptor, steps int) func(*Slot) error {
	env := model.Env{Q: quantity.DefaultFactory, Steps: steps}
	return func(s *Slot) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
					return
				}
				err = fmt.Errorf("model panic: %v", r)
			}
		}()

		vars := make(map[string]quantity.Quantity, len(s.Params)+1)
		for k, v := range s.Params {
			vars[k] = v.ToBase()
		}

		xs := s.Samples.ToBase()
		results := make([]quantity.Quantity, xs.Len())
		for i := 0; i < xs.Len(); i++ {
			vars[s.PlotX] = xs.At(i)
			y, err := d.Eval(env, vars, s.Choices)
			if err != nil {
				return err
			}
			if !y.IsScalar() && y.Len() != xs.Len() {
				return &model.ConfigurationError{Model: d.Key,
					Reason: fmt.Sprintf("result length %d matches neither 1 nor %d samples", y.Len(), xs.Len())}
			}
			if !y.IsScalar() {
				// Array-valued result for the whole sample range at once.
				result := y.ToBase()
				s.Fill(result)
				return nil
			}
			results[i] = y
		}

		result, err := quantity.Gather(results)
		if err != nil {
			return err
		}
		s.Fill(result)
		return nil
	}
}

// CalcPoint runs the scalar point calculation: every variable a single
// quantity, the full result quantity back. steps is the integration grid
// resolution, 0 for the helper default. The same panic recovery as
// Evaluator applies.
func CalcPoint(d *model.Descriptor, vars map[string]quantity.Quantity, choices model.Choices, steps int) (q quantity.Quantity, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("model panic: %v", r)
		}
	}()

	normalized := make(map[string]quantity.Quantity, len(vars))
	for k, v := range vars {
		normalized[k] = v.ToBase()
	}
	return d.Eval(model.Env{Q: quantity.DefaultFactory, Steps: steps}, normalized, choices)
}
