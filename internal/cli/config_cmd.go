// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/s-quirin/easyguing/internal/config"
)

// HandleConfig shows or initializes the configuration file.
func HandleConfig(args *ArgParser) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}

	switch args.Subcommand() {
	case "", "show":
		cfg := config.Global()
		exportDir, _ := cfg.ExportDir()
		storagePath, _ := cfg.StoragePath()
		fmt.Printf("config file: %s\n\n", path)
		fmt.Printf("plot.points             = %d\n", cfg.Plot.Points)
		fmt.Printf("plot.integration_steps  = %d\n", cfg.Plot.IntegrationSteps)
		fmt.Printf("plot.width x height     = %dx%d\n", cfg.Plot.Width, cfg.Plot.Height)
		fmt.Printf("format.precision        = %d\n", cfg.Format.Precision)
		fmt.Printf("format.locale           = %s\n", cfg.Format.Locale)
		fmt.Printf("ui.theme                = %s\n", cfg.UI.Theme)
		fmt.Printf("export.dir              = %s\n", exportDir)
		fmt.Printf("storage.enabled         = %t\n", cfg.Storage.Enabled)
		fmt.Printf("storage.path            = %s\n", storagePath)
		fmt.Printf("storage.max_entries     = %d\n", cfg.Storage.MaxEntries)
		return nil

	case "path":
		fmt.Println(path)
		return nil

	case "init":
		if _, err := os.Stat(path); err == nil && !args.BoolFlag("force") {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q", args.Subcommand())
	}
}
