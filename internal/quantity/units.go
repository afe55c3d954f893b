// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import (
	"fmt"
	"strings"
)

// =============================================================================
// DIMENSIONS
// =============================================================================

// Dimension is the exponent vector of a quantity over the seven SI base
// dimensions. Exponents are float64 so roots of dimensionful quantities
// (e.g. sqrt(N/m / kg) = 1/s) stay representable; in practice they are
// small dyadic rationals and compare exactly with ==.
type Dimension [7]float64

// Indices into a Dimension vector.
const (
	dimLength      = iota // metre
	dimMass               // kilogram
	dimTime               // second
	dimCurrent            // ampere
	dimTemperature        // kelvin
	dimAmount             // mole
	dimLuminosity         // candela
)

var baseSymbols = [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// Dimensionless is the zero dimension.
var Dimensionless = Dimension{}

// IsZero reports whether the dimension is dimensionless.
func (d Dimension) IsZero() bool {
	return d == Dimension{}
}

// add returns the element-wise sum (dimension of a product).
func (d Dimension) add(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

// sub returns the element-wise difference (dimension of a quotient).
func (d Dimension) sub(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

// scale returns the dimension raised to the power f.
func (d Dimension) scale(f float64) Dimension {
	for i := range d {
		d[i] *= f
	}
	return d
}

// String renders the canonical base-unit expression, e.g. "kg/s^2" for a
// distributed load or "1" for a dimensionless quantity.
func (d Dimension) String() string {
	var num, den []string
	for i, exp := range d {
		switch {
		case exp == 0:
			continue
		case exp > 0:
			num = append(num, expString(baseSymbols[i], exp))
		default:
			den = append(den, expString(baseSymbols[i], -exp))
		}
	}
	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}
	for _, t := range den {
		s += "/" + t
	}
	return s
}

func expString(sym string, exp float64) string {
	if exp == 1 {
		return sym
	}
	return fmt.Sprintf("%s^%g", sym, exp)
}

// =============================================================================
// UNIT TABLE
// =============================================================================

// unitDef maps a unit symbol to its dimension and its scale to SI base
// units (multiply a magnitude in this unit by scale to get base units).
type unitDef struct {
	dim   Dimension
	scale float64
}

func dim(exps ...float64) Dimension {
	var d Dimension
	copy(d[:], exps)
	return d
}

// units lists every unit symbol the parser accepts without a prefix.
// Coverage matches the needs of the built-in models plus common SI
// derived units.
var units = map[string]unitDef{
	// SI base
	"m":   {dim(1), 1},
	"g":   {dim(0, 1), 1e-3},
	"s":   {dim(0, 0, 1), 1},
	"A":   {dim(0, 0, 0, 1), 1},
	"K":   {dim(0, 0, 0, 0, 1), 1},
	"mol": {dim(0, 0, 0, 0, 0, 1), 1},
	"cd":  {dim(0, 0, 0, 0, 0, 0, 1), 1},

	// SI derived
	"Hz":  {dim(0, 0, -1), 1},
	"N":   {dim(1, 1, -2), 1},
	"Pa":  {dim(-1, 1, -2), 1},
	"J":   {dim(2, 1, -2), 1},
	"W":   {dim(2, 1, -3), 1},
	"C":   {dim(0, 0, 1, 1), 1},
	"V":   {dim(2, 1, -3, -1), 1},
	"bar": {dim(-1, 1, -2), 1e5},

	// accepted non-SI
	"l":   {dim(3), 1e-3},
	"L":   {dim(3), 1e-3},
	"min": {dim(0, 0, 1), 60},
	"h":   {dim(0, 0, 1), 3600},
	"t":   {dim(0, 1), 1e3},

	// angles are treated as dimensionless, as pint does
	"rad": {Dimension{}, 1},
	"sr":  {Dimension{}, 1},
	"%":   {Dimension{}, 0.01},
}

// prefixes are the SI decimal prefixes. "u" is accepted as an ASCII alias
// for micro alongside U+00B5 and U+03BC.
var prefixes = map[string]float64{
	"Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15, "T": 1e12,
	"G": 1e9, "M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3,
	"µ": 1e-6, "μ": 1e-6, "u": 1e-6,
	"n": 1e-9, "p": 1e-12, "f": 1e-15, "a": 1e-18,
	"z": 1e-21, "y": 1e-24,
}

// resolveUnit looks up a possibly prefixed unit symbol. Exact symbols win
// over prefixed readings, so "min" is minutes and not milli-inches of
// anything.
func resolveUnit(sym string) (unitDef, bool) {
	if u, ok := units[sym]; ok {
		return u, true
	}
	for plen := 2; plen >= 1; plen-- {
		if len(sym) <= plen {
			continue
		}
		// prefixes are at most two bytes except µ/μ which are two bytes
		// of UTF-8; indexing by bytes handles both.
		p, rest := sym[:plen], sym[plen:]
		factor, ok := prefixes[p]
		if !ok {
			continue
		}
		u, ok := units[rest]
		if !ok {
			continue
		}
		u.scale *= factor
		return u, true
	}
	return unitDef{}, false
}
