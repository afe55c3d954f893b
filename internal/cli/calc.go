// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/s-quirin/easyguing/internal/config"
	"github.com/s-quirin/easyguing/internal/model"
	"github.com/s-quirin/easyguing/internal/plot"
	"github.com/s-quirin/easyguing/internal/quantity"
	"github.com/s-quirin/easyguing/internal/storage"
)

// HandleCalc runs one point calculation from the command line. Inputs are
// given as flags named after the input key; unset inputs fall back to the
// model's representative midpoint.
func HandleCalc(args *ArgParser) error {
	key := args.Subcommand()
	if key == "" {
		return fmt.Errorf("usage: easyguing calc <model> [--<input> \"<quantity>\"]")
	}
	d, err := model.Get(key)
	if err != nil {
		return err
	}
	cfg := config.Global()

	choices, err := resolveChoices(d, args)
	if err != nil {
		return err
	}

	vars := make(map[string]quantity.Quantity)
	inputs := make(map[string]string)
	for _, in := range d.ActiveInputs(choices) {
		var q quantity.Quantity
		if text := args.Flag(in.Key); text != "" {
			q, err = quantity.Parse(text)
			if err != nil {
				return err
			}
			declared, _ := quantity.New(0, in.Unit)
			if q.Dim() != declared.Dim() {
				return &quantity.DimensionalityError{
					Want: declared.Dim(), Got: q.Dim(), Context: "input " + in.Key,
				}
			}
		} else {
			q, err = in.DefaultQuantity()
			if err != nil {
				return err
			}
		}
		vars[in.Key] = q
		inputs[in.Key] = q.String()
	}

	y, err := plot.CalcPoint(d, vars, choices, cfg.Plot.IntegrationSteps)
	if err != nil {
		return err
	}

	for _, in := range d.ActiveInputs(choices) {
		fmt.Printf("  %s = %s\n", in.Key, inputs[in.Key])
	}
	fmt.Printf("%s = %s\n", choices[d.Output.Name],
		y.Format(cfg.Format.Precision, cfg.LanguageTag()))

	recordHistory(cfg, storage.Entry{
		Model:   d.Key,
		Inputs:  inputs,
		Choices: choices,
		Result:  y.String(),
	})
	return nil
}

// resolveChoices builds the choice map, starting from the defaults.
// Options are selected either with a flag named after the option
// (--Medium Feststoff) or with the repeatable --opt name=choice form.
func resolveChoices(d *model.Descriptor, args *ArgParser) (model.Choices, error) {
	choices := d.DefaultChoices()
	opts := append([]model.Option{d.Output}, d.Options...)

	for _, opt := range opts {
		want := args.Flag(opt.Name)
		if want == "" {
			continue
		}
		if err := selectChoice(choices, opt, want); err != nil {
			return nil, err
		}
	}

	for _, pair := range args.FlagValues("opt") {
		name, want, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("--opt wants <name>=<choice>, got %q", pair)
		}
		found := false
		for _, opt := range opts {
			if opt.Name == name {
				if err := selectChoice(choices, opt, want); err != nil {
					return nil, err
				}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("model %q has no option %q", d.Key, name)
		}
	}
	return choices, nil
}

func selectChoice(choices model.Choices, opt model.Option, want string) error {
	for _, c := range opt.Choices {
		if c == want {
			choices[opt.Name] = want
			return nil
		}
	}
	return fmt.Errorf("option %q has no choice %q", opt.Name, want)
}

// recordHistory stores the calculation when the history is enabled.
// Storage failures only warn; the result was already printed.
func recordHistory(cfg *config.Config, e storage.Entry) {
	if !cfg.Storage.Enabled {
		return
	}
	path, err := cfg.StoragePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	h, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history unavailable: %v\n", err)
		return
	}
	defer h.Close()
	h.MaxEntries = cfg.Storage.MaxEntries
	if _, err := h.Record(e); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record calculation: %v\n", err)
	}
}
