// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/util"
)

// HandleList prints the registered models as a table.
func HandleList(args *ArgParser) {
	descs := model.All()
	if len(descs) == 0 {
		fmt.Println("No models registered.")
		return
	}

	fmt.Println(util.PadWidth("KEY", 16) + " " +
		util.PadWidth("TITLE", 28) + " " +
		util.PadWidth("INPUTS", 7) + " VERSION")
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range descs {
		fmt.Println(util.PadWidth(d.Key, 16) + " " +
			util.PadWidth(util.TruncateWidth(d.Title, 28), 28) + " " +
			util.PadWidth(fmt.Sprintf("%d", len(d.Inputs)), 7) + " " +
			d.Version)
	}
}

// HandleShow renders one model's description, inputs and options.
func HandleShow(args *ArgParser) error {
	key := args.Subcommand()
	if key == "" {
		return fmt.Errorf("usage: easyguing show <model>")
	}
	d, err := model.Get(key)
	if err != nil {
		return err
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n%s\n\n", d.Title, d.Description)
	md.WriteString("## Inputs\n\n")
	for _, in := range d.Inputs {
		unit := in.Unit
		if unit == "" {
			unit = "dimensionless"
		}
		fmt.Fprintf(&md, "- `%s` %s (%s)\n", in.Key, in.Name, unit)
	}
	md.WriteString("\n## Options\n\n")
	for _, opt := range append([]model.Option{d.Output}, d.Options...) {
		fmt.Fprintf(&md, "- `%s`: %s\n", opt.Name, strings.Join(opt.Choices, ", "))
	}
	if d.Author != "" || d.Version != "" {
		fmt.Fprintf(&md, "\n---\n%s %s\n", d.Author, d.Version)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Print(md.String())
		return nil
	}
	out, err := r.Render(md.String())
	if err != nil {
		fmt.Print(md.String())
		return nil
	}
	fmt.Print(out)
	return nil
}
