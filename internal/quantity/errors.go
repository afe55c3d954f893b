// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import "fmt"

// ParseError reports malformed quantity or unit text. It is locally
// recoverable: callers typically revert the offending field to its last
// valid value.
type ParseError struct {
	Text   string // the text that failed to parse
	Reason string // human-readable cause
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Text, e.Reason)
}

// DimensionalityError reports an operation between quantities of
// incompatible physical dimensions, or a conversion to a unit of a
// different dimension.
type DimensionalityError struct {
	Want    Dimension // dimension expected by the operation
	Got     Dimension // dimension actually supplied
	Context string    // operation or input that raised the error
}

// Error implements the error interface.
func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("%s: dimension %s is not compatible with %s",
		e.Context, e.Got, e.Want)
}
