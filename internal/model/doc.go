// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the model capability contract and its registry.
//
// A model is a statically registered Descriptor: metadata about its
// unit-carrying inputs and options plus a pure evaluation function. The
// registry replaces dynamic source loading — discovery is "enumerate
// registered models", never executing external code.
//
// # Key Types
//
//   - Descriptor: model metadata plus the evaluation function
//   - Input: one unit-carrying input with representative values
//   - Option: a named, ordered set of string choices
//   - Choices: the current option selections
//   - Registry: registration-order model collection
//
// Built-in models live in internal/models and register themselves via
// Register at startup.
package model
