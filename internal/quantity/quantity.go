// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import (
	"fmt"
	"math"
)

// =============================================================================
// QUANTITY
// =============================================================================

// Quantity is a magnitude tagged with a physical dimension and a display
// unit. The magnitude is either a scalar (length 1) or an ordered series of
// floats. A Quantity is immutable: every operation returns a new value and
// the backing slice is never written after construction.
type Quantity struct {
	values []float64 // magnitudes expressed in the display unit
	dim    Dimension
	scale  float64 // multiply a magnitude by scale to get SI base units
	unit   string  // display unit expression, "" for dimensionless
}

// New creates a scalar quantity from a magnitude and a unit expression.
// An empty unit yields a dimensionless quantity.
func New(value float64, unit string) (Quantity, error) {
	return FromValues([]float64{value}, unit)
}

// FromValues creates a series quantity. The slice is copied.
func FromValues(values []float64, unit string) (Quantity, error) {
	d, scale, err := parseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	vs := make([]float64, len(values))
	copy(vs, values)
	return Quantity{values: vs, dim: d, scale: scale, unit: unit}, nil
}

// MustParse parses text and panics on error. Intended for statically known
// literals such as model constants.
func MustParse(text string) Quantity {
	q, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return q
}

// Factory creates quantities for model evaluation functions. A Factory
// panics on a malformed unit; the evaluation engine recovers the panic
// into a model error, matching the arithmetic error contract.
type Factory func(value float64, unit string) Quantity

// DefaultFactory is the Factory handed to model evaluation.
func DefaultFactory(value float64, unit string) Quantity {
	q, err := New(value, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Len returns the number of magnitudes (1 for a scalar).
func (q Quantity) Len() int { return len(q.values) }

// IsScalar reports whether the quantity holds exactly one magnitude.
func (q Quantity) IsScalar() bool { return len(q.values) == 1 }

// Value returns the first magnitude in the display unit.
func (q Quantity) Value() float64 {
	if len(q.values) == 0 {
		return math.NaN()
	}
	return q.values[0]
}

// Values returns a copy of all magnitudes in the display unit.
func (q Quantity) Values() []float64 {
	vs := make([]float64, len(q.values))
	copy(vs, q.values)
	return vs
}

// At returns the scalar quantity at index i, carrying the same unit.
func (q Quantity) At(i int) Quantity {
	return Quantity{values: []float64{q.values[i]}, dim: q.dim, scale: q.scale, unit: q.unit}
}

// Dim returns the physical dimension.
func (q Quantity) Dim() Dimension { return q.dim }

// Unit returns the display unit expression.
func (q Quantity) Unit() string { return q.unit }

// IsZero reports whether the quantity is the zero value (never constructed).
func (q Quantity) IsZero() bool { return q.values == nil }

// =============================================================================
// CONVERSION
// =============================================================================

// ToBase normalizes to SI base units. Idempotent: applying it twice equals
// applying it once.
func (q Quantity) ToBase() Quantity {
	if q.scale == 1 && q.unit == q.dim.String() {
		return q
	}
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = v * q.scale
	}
	unit := ""
	if !q.dim.IsZero() {
		unit = q.dim.String()
	}
	return Quantity{values: vs, dim: q.dim, scale: 1, unit: unit}
}

// ConvertTo re-expresses the quantity in the given unit. Returns a
// *DimensionalityError if the target unit has a different dimension.
func (q Quantity) ConvertTo(unit string) (Quantity, error) {
	d, scale, err := parseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}
	if d != q.dim {
		return Quantity{}, &DimensionalityError{Want: q.dim, Got: d, Context: "convert to " + unit}
	}
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = v * q.scale / scale
	}
	return Quantity{values: vs, dim: d, scale: scale, unit: unit}, nil
}

// Equal reports value-wise equality: same dimension, same length and equal
// base-unit magnitudes. Display units may differ ("100 cm" equals "1 m").
func (q Quantity) Equal(o Quantity) bool {
	if q.dim != o.dim || len(q.values) != len(o.values) {
		return false
	}
	for i := range q.values {
		if q.values[i]*q.scale != o.values[i]*o.scale {
			return false
		}
	}
	return true
}

// =============================================================================
// ARITHMETIC
// =============================================================================
//
// Arithmetic operates on base-unit magnitudes and broadcasts a scalar
// against a series. Dimension mismatch on Add/Sub and length mismatch on
// any operation panic with a typed error; the evaluation engine recovers
// panics into per-batch errors (see internal/plot).

// Add returns q + o. Panics with *DimensionalityError on mismatch.
func (q Quantity) Add(o Quantity) Quantity {
	if q.dim != o.dim {
		panic(&DimensionalityError{Want: q.dim, Got: o.dim, Context: "add"})
	}
	return q.combine(o, q.dim, func(a, b float64) float64 { return a + b })
}

// Sub returns q - o. Panics with *DimensionalityError on mismatch.
func (q Quantity) Sub(o Quantity) Quantity {
	if q.dim != o.dim {
		panic(&DimensionalityError{Want: q.dim, Got: o.dim, Context: "subtract"})
	}
	return q.combine(o, q.dim, func(a, b float64) float64 { return a - b })
}

// Mul returns q * o with the derived dimension.
func (q Quantity) Mul(o Quantity) Quantity {
	return q.combine(o, q.dim.add(o.dim), func(a, b float64) float64 { return a * b })
}

// Div returns q / o with the derived dimension.
func (q Quantity) Div(o Quantity) Quantity {
	return q.combine(o, q.dim.sub(o.dim), func(a, b float64) float64 { return a / b })
}

// Pow raises the quantity to the power exp, deriving the dimension.
func (q Quantity) Pow(exp float64) Quantity {
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = math.Pow(v*q.scale, exp)
	}
	d := q.dim.scale(exp)
	return baseQuantity(vs, d)
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = -v
	}
	return Quantity{values: vs, dim: q.dim, scale: q.scale, unit: q.unit}
}

// ScaleBy multiplies by a bare number, keeping the display unit.
func (q Quantity) ScaleBy(f float64) Quantity {
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = v * f
	}
	return Quantity{values: vs, dim: q.dim, scale: q.scale, unit: q.unit}
}

// Less compares scalar magnitudes. Panics with *DimensionalityError on
// dimension mismatch; unequal dimensionality is an error condition, never
// a silent coercion.
func (q Quantity) Less(o Quantity) bool {
	if q.dim != o.dim {
		panic(&DimensionalityError{Want: q.dim, Got: o.dim, Context: "compare"})
	}
	return q.Value()*q.scale < o.Value()*o.scale
}

// combine applies op element-wise on base magnitudes, broadcasting a
// scalar operand over a series operand.
func (q Quantity) combine(o Quantity, d Dimension, op func(a, b float64) float64) Quantity {
	n := len(q.values)
	if len(o.values) > n {
		n = len(o.values)
	}
	if len(q.values) != n && len(q.values) != 1 || len(o.values) != n && len(o.values) != 1 {
		panic(fmt.Errorf("quantity: length mismatch %d vs %d", len(q.values), len(o.values)))
	}
	vs := make([]float64, n)
	for i := range vs {
		a := q.values[i%len(q.values)] * q.scale
		b := o.values[i%len(o.values)] * o.scale
		vs[i] = op(a, b)
	}
	return baseQuantity(vs, d)
}

func baseQuantity(values []float64, d Dimension) Quantity {
	unit := ""
	if !d.IsZero() {
		unit = d.String()
	}
	return Quantity{values: values, dim: d, scale: 1, unit: unit}
}

// =============================================================================
// ELEMENT-WISE MATH
// =============================================================================

// Sqrt returns the square root, halving the dimension exponents.
func Sqrt(q Quantity) Quantity { return q.Pow(0.5) }

// Exp returns e^q for a dimensionless quantity.
func Exp(q Quantity) Quantity { return dimensionlessMap(q, "exp", math.Exp) }

// Expm1 returns e^q - 1 for a dimensionless quantity, accurate near zero.
func Expm1(q Quantity) Quantity { return dimensionlessMap(q, "expm1", math.Expm1) }

// Sin returns the sine of a dimensionless (radian) quantity.
func Sin(q Quantity) Quantity { return dimensionlessMap(q, "sin", math.Sin) }

// Cos returns the cosine of a dimensionless (radian) quantity.
func Cos(q Quantity) Quantity { return dimensionlessMap(q, "cos", math.Cos) }

// Pow10 returns 10^q for a dimensionless quantity.
func Pow10(q Quantity) Quantity {
	return dimensionlessMap(q, "pow10", func(v float64) float64 { return math.Pow(10, v) })
}

func dimensionlessMap(q Quantity, name string, fn func(float64) float64) Quantity {
	if !q.dim.IsZero() {
		panic(&DimensionalityError{Want: Dimensionless, Got: q.dim, Context: name})
	}
	vs := make([]float64, len(q.values))
	for i, v := range q.values {
		vs[i] = fn(v * q.scale)
	}
	return baseQuantity(vs, Dimensionless)
}

// =============================================================================
// SERIES CONSTRUCTION
// =============================================================================

// Linspace builds n evenly spaced magnitudes from start to stop inclusive,
// in start's display unit. Panics with *DimensionalityError if the bounds
// disagree in dimension. n must be at least 2.
func Linspace(start, stop Quantity, n int) Quantity {
	if start.dim != stop.dim {
		panic(&DimensionalityError{Want: start.dim, Got: stop.dim, Context: "linspace"})
	}
	a := start.Value()
	b := stop.Value() * stop.scale / start.scale
	step := (b - a) / float64(n-1)
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = a + step*float64(i)
	}
	vs[n-1] = b // exact endpoint regardless of rounding
	return Quantity{values: vs, dim: start.dim, scale: start.scale, unit: start.unit}
}

// Gather concatenates scalar results of the same dimension into one series
// quantity in base units. Used by evaluation loops that compute one sample
// at a time.
func Gather(qs []Quantity) (Quantity, error) {
	if len(qs) == 0 {
		return Quantity{}, &ParseError{Text: "", Reason: "empty series"}
	}
	d := qs[0].dim
	vs := make([]float64, 0, len(qs))
	for _, q := range qs {
		if q.dim != d {
			return Quantity{}, &DimensionalityError{Want: d, Got: q.dim, Context: "gather series"}
		}
		for _, v := range q.values {
			vs = append(vs, v*q.scale)
		}
	}
	return baseQuantity(vs, d), nil
}
