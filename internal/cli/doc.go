// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements command parsing and the non-interactive
// commands: listing and describing models, one-shot point calculations,
// PNG/terminal plot rendering, calculation history and configuration
// management. The TUI itself lives in the ui package.
package cli
