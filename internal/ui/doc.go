// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the interactive terminal interface of easyguing.
//
// The App model shows one tab per registered model. Each Page holds the
// model's quantity input fields, option selectors and marker checkboxes,
// and keeps its plot current through the incremental recompute pipeline
// in the plot package: every edit rebuilds a parameter snapshot, syncs
// the curve cache against it and submits the stale slots as one
// background batch.
package ui
