// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models holds the built-in model descriptors.
//
// Each file contributes one physical model to the builtins list; RegisterAll
// wires them into the default registry at startup. A model failing
// validation is reported and skipped, the rest stay usable.
package models

import (
	"github.com/s-quirin/easyguing/internal/model"
)

var builtins []*model.Descriptor

// RegisterAll registers every built-in model and returns the per-model
// registration errors, index-aligned with the skipped descriptors.
func RegisterAll() []error {
	var errs []error
	for _, d := range builtins {
		if err := model.Register(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
