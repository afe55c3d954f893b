// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package helper provides the evaluation helpers shared by models:
// piecewise iteration over segment-defined variables and fixed-resolution
// numeric integration over one declared axis.
package helper

import (
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/quantity"
)

// DefaultIntegrationSteps is the dense grid resolution for Integrate. It
// is deliberately independent of the user-visible plot resolution so
// integration accuracy does not degrade when the display point count is
// reduced.
const DefaultIntegrationSteps = 1000

// =============================================================================
// PIECEWISE
// =============================================================================

// BranchFunc computes one segment of a piecewise-defined model. It
// receives the full variable map plus the current value of each
// segment-defining variable, in the order the keys were passed to
// Piecewise. The branch function owns the case split, including
// exactly-equal boundary values.
type BranchFunc func(vars map[string]quantity.Quantity, segs ...quantity.Quantity) quantity.Quantity

// Piecewise broadcasts the named segment-defining variables to a common
// length L (the longest one; shorter sequences repeat cyclically), invokes
// branch once per index, and concatenates the results into one series of
// length L.
func Piecewise(branch BranchFunc, vars map[string]quantity.Quantity, keys ...string) (quantity.Quantity, error) {
	length := 1
	for _, k := range keys {
		v, ok := vars[k]
		if !ok || v.Len() == 0 {
			return quantity.Quantity{}, &model.ConfigurationError{Reason: "piecewise variable " + k + " is not set"}
		}
		if n := v.Len(); n > length {
			length = n
		}
	}

	results := make([]quantity.Quantity, length)
	segs := make([]quantity.Quantity, len(keys))
	for i := 0; i < length; i++ {
		for j, k := range keys {
			v := vars[k]
			segs[j] = v.At(i % v.Len()) // cyclic repetition, not zero padding
		}
		results[i] = branch(vars, segs...)
	}
	return quantity.Gather(results)
}

// =============================================================================
// INTEGRATION
// =============================================================================

// Integrate numerically integrates fn over one axis using the trapezoidal
// rule on a dense internal grid between start and stop.
//
// The integration axis is identified structurally: the one key in
// axisUnits whose declared unit matches the dimension of the bounds. No
// match, or more than one, is a model-configuration error fatal to this
// evaluation only. All other variables broadcast against the grid through
// ordinary quantity arithmetic.
func Integrate(fn func(vars map[string]quantity.Quantity) quantity.Quantity,
	vars map[string]quantity.Quantity, axisUnits map[string]string,
	start, stop quantity.Quantity, steps int) (quantity.Quantity, error) {

	if steps < 2 {
		steps = DefaultIntegrationSteps
	}

	axis := ""
	for key, unit := range axisUnits {
		q, err := quantity.New(0, unit)
		if err != nil {
			return quantity.Quantity{}, &model.ConfigurationError{Reason: "integration axis " + key + ": bad unit " + unit}
		}
		if q.Dim() != start.Dim() {
			continue
		}
		if axis != "" {
			return quantity.Quantity{}, &model.ConfigurationError{Reason: "ambiguous integration axis: " + axis + " and " + key}
		}
		axis = key
	}
	if axis == "" {
		return quantity.Quantity{}, &model.ConfigurationError{Reason: "no declared unit matches the integration axis"}
	}

	grid := quantity.Linspace(start.ToBase(), stop.ToBase(), steps)
	dense := make(map[string]quantity.Quantity, len(vars))
	for k, v := range vars {
		dense[k] = v
	}
	dense[axis] = grid

	y := fn(dense).ToBase()
	if y.Len() != steps {
		// fn ignored the grid (constant integrand); broadcast it.
		y = y.Mul(grid.Pow(0)).ToBase()
	}

	ys := y.Values()
	xs := grid.ToBase().Values()
	sum := 0.0
	for i := 1; i < len(xs); i++ {
		sum += (ys[i] + ys[i-1]) / 2 * (xs[i] - xs[i-1])
	}
	unit := grid.ToBase().Unit()
	if y.Unit() != "" {
		unit = y.Unit() + "*" + unit
	}
	return quantity.New(sum, unit)
}
