// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plot implements the incremental-recompute engine: parameter
// snapshots, the per-curve plot-data cache, the background computation
// dispatcher, and curve post-processing.
//
// # Key Types
//
//   - Snapshot: frozen parameter/option state built from raw field text
//   - Cache, Slot: one slot per plotted curve with a STALE → COMPUTING →
//     READY lifecycle and a value-equality staleness policy
//   - Dispatcher: single-flight batch evaluation off the interactive loop
//   - Figure, Marker: post-processed render state (legends, extrema,
//     calculated-point marker)
//
// # Ownership Contract
//
// The slot list is owned by the page controller (the interactive loop).
// Only the controller resizes or replaces it; workers never touch the
// list itself. A worker handed slots by the dispatcher writes nothing but
// the result and state of those slots, both guarded by the slot's mutex,
// so the controller may keep reading states and READY results while a
// batch runs. The completion message tells the controller when the whole
// batch is visible.
package plot
