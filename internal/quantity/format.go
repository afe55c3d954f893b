// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quantity

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// FORMATTING
// =============================================================================

// Format renders the quantity with the given significant-digit precision
// and unit suffix, using the locale's decimal separator. A series renders
// as its elements joined by "; ", the same separator the input fields use.
func (q Quantity) Format(prec int, tag language.Tag) string {
	p := message.NewPrinter(tag)
	parts := make([]string, len(q.values))
	for i, v := range q.values {
		parts[i] = p.Sprintf("%.*g", prec, v)
	}
	s := strings.Join(parts, "; ")
	if q.unit != "" {
		s += " " + q.unit
	}
	return s
}

// String renders with locale-independent separators for logs and tests.
func (q Quantity) String() string {
	parts := make([]string, len(q.values))
	for i, v := range q.values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strings.Join(parts, "; ")
	if q.unit != "" {
		s += " " + q.unit
	}
	return s
}
