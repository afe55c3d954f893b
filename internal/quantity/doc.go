// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quantity implements unit-carrying physical quantities.
//
// A Quantity couples a magnitude (scalar or ordered series of floats) with a
// physical dimension and a display unit. Quantities are parsed from free
// text ("500 W/m^2", "0,5 µm", "2e-3"), normalized to SI base units for
// computation, and converted back for display.
//
// # Key Types
//
//   - Quantity: immutable value + dimension + display unit
//   - Dimension: exponent vector over the seven SI base dimensions
//   - Factory: constructor handed to model evaluation functions
//
// # Error Model
//
// The user-facing paths (Parse, ConvertTo) return *ParseError and
// *DimensionalityError. Arithmetic inside model code panics with
// *DimensionalityError on incompatible operands; the evaluation engine
// recovers the panic into a batch error so a model bug never crashes the
// session.
//
// # Usage
//
//	q, err := quantity.Parse("1500 N/m")
//	if err != nil { ... }
//	base := q.ToBase()                 // kg/s^2
//	disp, err := base.ConvertTo("N/m") // back for display
package quantity
