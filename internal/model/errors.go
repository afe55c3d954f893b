// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// ConfigurationError reports internally inconsistent model metadata, e.g.
// a plot axis that is not an input. It is fatal only to loading the one
// model it names; other models remain usable.
type ConfigurationError struct {
	Model  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Model == "" {
		return "model configuration: " + e.Reason
	}
	return "model " + e.Model + ": " + e.Reason
}
