// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/plot"
)

// BatchDoneMsg delivers the completion signal of one computation batch to
// the page that submitted it.
type BatchDoneMsg struct {
	Model  string
	Result plot.BatchResult
}

// ConfigReloadedMsg carries a freshly loaded configuration after the
// config file changed on disk.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// ExportDoneMsg reports the outcome of a PNG export.
type ExportDoneMsg struct {
	Path string
	Err  error
}
