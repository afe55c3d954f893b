// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// TEXT PARSING
// =============================================================================

// Parse reads a scalar quantity from free text: a numeric literal followed
// by an optional unit expression, e.g. "1500 N/m", "0,5µm", "2e-3".
// Decimal comma and decimal point are both accepted on input; formatting
// follows the configured locale (see Format).
func Parse(text string) (Quantity, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Quantity{}, &ParseError{Text: text, Reason: "empty input"}
	}

	// Longest numeric prefix wins, so "2e-3 m" keeps its exponent and
	// "2 e" fails on the unknown unit rather than mis-splitting.
	value, rest, ok := splitNumber(trimmed)
	if !ok {
		return Quantity{}, &ParseError{Text: text, Reason: "no numeric value"}
	}

	q, err := New(value, strings.TrimSpace(rest))
	if err != nil {
		return Quantity{}, err
	}
	return q, nil
}

// ParseList reads a semicolon-separated list of scalar quantities, the
// format of a plotted-range input field.
func ParseList(text string) ([]Quantity, error) {
	parts := strings.Split(text, ";")
	qs := make([]Quantity, 0, len(parts))
	for _, p := range parts {
		q, err := Parse(p)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// splitNumber finds the longest leading substring that parses as a float
// and returns its value together with the remainder.
func splitNumber(s string) (float64, string, bool) {
	for i := len(s); i > 0; i-- {
		lit := strings.ReplaceAll(s[:i], ",", ".")
		v, err := strconv.ParseFloat(lit, 64)
		if err == nil {
			return v, s[i:], true
		}
	}
	return 0, s, false
}

// =============================================================================
// UNIT EXPRESSIONS
// =============================================================================

// parseUnit evaluates a unit expression of the grammar
//
//	expr = term { ("*" | "/") term }
//	term = "1" | symbol [ "^" exponent ]
//
// and returns the resulting dimension and scale to SI base units.
// Whitespace inside the expression is not allowed; an empty expression is
// dimensionless.
func parseUnit(expr string) (Dimension, float64, error) {
	if expr == "" {
		return Dimensionless, 1, nil
	}
	d := Dimensionless
	scale := 1.0
	divide := false
	rest := expr
	for {
		var term string
		op := strings.IndexAny(rest, "*/")
		if op < 0 {
			term, rest = rest, ""
		} else {
			term, rest = rest[:op], rest[op+1:]
		}

		td, ts, err := parseTerm(expr, term)
		if err != nil {
			return Dimensionless, 0, err
		}
		if divide {
			d = d.sub(td)
			scale /= ts
		} else {
			d = d.add(td)
			scale *= ts
		}

		if op < 0 {
			return d, scale, nil
		}
		divide = expr[len(expr)-len(rest)-1] == '/'
	}
}

// parseTerm evaluates a single "sym^exp" term. expr is the full expression
// for error reporting.
func parseTerm(expr, term string) (Dimension, float64, error) {
	if term == "1" {
		return Dimensionless, 1, nil
	}
	sym, exp := term, 1.0
	if caret := strings.IndexByte(term, '^'); caret >= 0 {
		sym = term[:caret]
		v, err := strconv.ParseFloat(term[caret+1:], 64)
		if err != nil {
			return Dimensionless, 0, &ParseError{Text: expr, Reason: "bad exponent in " + strconv.Quote(term)}
		}
		exp = v
	}
	u, ok := resolveUnit(sym)
	if !ok {
		return Dimensionless, 0, &ParseError{Text: expr, Reason: "unknown unit " + strconv.Quote(sym)}
	}
	if exp != 1 {
		u.dim = u.dim.scale(exp)
		u.scale = math.Pow(u.scale, exp)
	}
	return u.dim, u.scale, nil
}
