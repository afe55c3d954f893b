// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package plot

import "fmt"

// EvaluationError reports a model evaluation failure inside a batch. The
// batch fails as a whole; previously READY slots keep their results.
type EvaluationError struct {
	Model string
	Slot  int
	Err   error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("model %s: curve %d: %v", e.Model, e.Slot+1, e.Err)
}

// Unwrap returns the underlying model error.
func (e *EvaluationError) Unwrap() error { return e.Err }
