// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/storage"
)

// HandleHistory manages the calculation history.
func HandleHistory(args *ArgParser) error {
	cfg := config.Global()
	if !cfg.Storage.Enabled {
		return fmt.Errorf("history is disabled (storage.enabled = false)")
	}
	path, err := cfg.StoragePath()
	if err != nil {
		return err
	}
	h, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer h.Close()
	h.MaxEntries = cfg.Storage.MaxEntries

	switch args.Subcommand() {
	case "", "list":
		var entries []storage.Entry
		limit := args.IntFlag("limit", 20)
		if m := args.Flag("model"); m != "" {
			entries, err = h.ListByModel(m, limit)
		} else {
			entries, err = h.List(limit)
		}
		if err != nil {
			return err
		}
		fmt.Print(storage.FormatList(entries))
		return nil

	case "show":
		id, err := historyID(args)
		if err != nil {
			return err
		}
		e, err := h.Get(id)
		if err != nil {
			return err
		}
		fmt.Print(storage.FormatEntry(e))
		return nil

	case "delete":
		id, err := historyID(args)
		if err != nil {
			return err
		}
		if err := h.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted entry %d.\n", id)
		return nil

	case "clear":
		if !args.BoolFlag("confirm") {
			return fmt.Errorf("clearing the history requires --confirm")
		}
		if err := h.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil

	default:
		return fmt.Errorf("unknown history subcommand %q", args.Subcommand())
	}
}

// historyID parses the entry ID following the subcommand.
func historyID(args *ArgParser) (int64, error) {
	pos := args.Positional()
	if len(pos) < 2 {
		return 0, fmt.Errorf("usage: easyguing history %s <id>", args.Subcommand())
	}
	id, err := strconv.ParseInt(pos[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry ID %q", pos[1])
	}
	return id, nil
}
