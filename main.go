// easyguing - an interactive explorer for parametric engineering models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s-quirin/easyguing/internal/cli"
	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/models"
	"github.com/s-quirin/easyguing/internal/storage"
	"github.com/s-quirin/easyguing/internal/ui"
	"github.com/s-quirin/easyguing/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Register the built-in models; a failing model is skipped, the rest
	// stay usable.
	for _, err := range models.RegisterAll() {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd, args := cli.Parse()
	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdList:
		cli.HandleList(args)
	case cli.CmdShow:
		fail(cli.HandleShow(args))
	case cli.CmdCalc:
		fail(cli.HandleCalc(args))
	case cli.CmdPlot:
		fail(cli.HandlePlot(args))
	case cli.CmdHistory:
		fail(cli.HandleHistory(args))
	case cli.CmdConfig:
		fail(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI()
	}
}

// fail exits with the error when a command handler returns one.
func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI starts the interactive interface.
func runTUI() {
	cfg := config.Global()
	theme := styles.NewTheme()

	descs := model.All()
	if len(descs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no models registered")
		os.Exit(1)
	}

	// The history is optional; the explorer works without persistence.
	var history *storage.History
	if cfg.Storage.Enabled {
		if path, err := cfg.StoragePath(); err == nil {
			if h, err := storage.Open(path); err == nil {
				h.MaxEntries = cfg.Storage.MaxEntries
				history = h
				defer h.Close()
			} else {
				fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
			}
		}
	}

	app := ui.NewApp(theme, cfg, descs, history)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Reload the configuration when the file changes on disk.
	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, 500*time.Millisecond, func(cfg *config.Config) {
			config.SetGlobal(cfg)
			p.Send(ui.ConfigReloadedMsg{Cfg: cfg})
		})
		if err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running easyguing: %v\n", err)
		os.Exit(1)
	}
}
