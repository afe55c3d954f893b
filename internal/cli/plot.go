// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/plot"
)

// HandlePlot computes a model's curves and renders them, to PNG by
// default or to the terminal with --ascii. Input lists come from flags
// named after the input keys; unset inputs use the representative values.
func HandlePlot(args *ArgParser) error {
	key := args.Subcommand()
	if key == "" {
		return fmt.Errorf("usage: easyguing plot <model> [--<input> \"<list>\"] [--out FILE]")
	}
	d, err := model.Get(key)
	if err != nil {
		return err
	}
	if d.PlotX == "" {
		return fmt.Errorf("model %q cannot be plotted", key)
	}
	cfg := config.Global()
	points := args.IntFlag("points", cfg.Plot.Points)

	choices, err := resolveChoices(d, args)
	if err != nil {
		return err
	}
	texts := make(map[string]string)
	for _, in := range d.ActiveInputs(choices) {
		if text := args.Flag(in.Key); text != "" {
			texts[in.Key] = text
			continue
		}
		texts[in.Key] = defaultListText(in)
	}

	snap, err := plot.BuildSnapshot(d, texts, choices, d.PlotX, points)
	if err != nil {
		return err
	}
	cache := plot.NewCache()
	cache.Sync(snap)

	// The one-shot command computes in the foreground; the dispatcher is
	// only needed when an interactive loop must stay responsive.
	eval := plot.Evaluator(d, cfg.Plot.IntegrationSteps)
	for _, slot := range cache.Stale() {
		if err := eval(slot); err != nil {
			return err
		}
	}

	markState := plot.MarkOff
	if args.BoolFlag("marks") {
		markState = plot.MarkLabel
	}
	fig, err := plot.BuildFigure(d, snap, cache, markState, markState,
		cfg.Format.Precision, cfg.LanguageTag())
	if err != nil {
		return err
	}

	if args.BoolFlag("ascii") {
		width, height := 100, 28
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
			width, height = w-2, h-4
		}
		fmt.Println(plot.RenderGrid(fig, width, height))
		return nil
	}

	out := args.FlagOrDefault("out", key+".png")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := plot.RenderPNG(fig, f,
		args.IntFlag("width", cfg.Plot.Width),
		args.IntFlag("height", cfg.Plot.Height)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d curves, %d points)\n", out, len(fig.Curves), points)
	return nil
}

// defaultListText renders an input's representative values as list text.
func defaultListText(in model.Input) string {
	text := ""
	for i, v := range in.Values {
		if i > 0 {
			text += "; "
		}
		text += fmt.Sprintf("%g", v)
		if in.Unit != "" {
			text += " " + in.Unit
		}
	}
	return text
}
