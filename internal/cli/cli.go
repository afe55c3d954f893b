// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for easyguing.
package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdList
	CmdShow
	CmdCalc
	CmdPlot
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `easyguing - interactive explorer for parametric engineering models

Every input is a physical quantity with a unit; entering "500 mm" into a
field declared in meters just works, entering "5 s" does not. Inputs take
semicolon-separated value lists to plot whole curve families at once.

Usage:
  easyguing                        Start the TUI (default)
  easyguing list                   List the registered models
  easyguing show <model>           Show a model's description and inputs
  easyguing calc <model> [flags]   Run one point calculation
    --<input> "<quantity>"         Set an input (e.g. --length "2 m")
    --opt <name>=<choice>          Select an option choice
  easyguing plot <model> [flags]   Render a model plot to PNG
    --<input> "<list>"             Set an input list (e.g. --x "0 m; 1 m")
    --opt <name>=<choice>          Select an option choice
    --out FILE                     Output file (default <model>.png)
    --points N                     Samples along the x axis
    --ascii                        Print a terminal plot instead of PNG
  easyguing history [subcommand]   Calculation history
    history list [--limit N] [--model KEY]
    history show <id>
    history delete <id>
    history clear --confirm
  easyguing config [show|init|path]
  easyguing version [--json]
  easyguing help

TUI keys:
  tab / shift+tab   switch model
  up / down         move between fields
  left / right      cycle option choices, toggle markers
  enter             point calculation (on a field)
  ctrl+e            export the plot as PNG
  ctrl+d            model description
  ctrl+c            quit
`

// Parse parses os.Args into a command and its argument parser.
func Parse() (Command, *ArgParser) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, NewArgParser(nil)
	}

	cmd := args[0]
	parser := NewArgParser(args[1:])
	switch cmd {
	case "list", "ls":
		return CmdList, parser
	case "show", "info":
		return CmdShow, parser
	case "calc":
		return CmdCalc, parser
	case "plot":
		return CmdPlot, parser
	case "history", "hist":
		return CmdHistory, parser
	case "config":
		return CmdConfig, parser
	case "version", "-v", "--version":
		return CmdVersion, parser
	case "help", "-h", "--help":
		return CmdHelp, parser
	default:
		return CmdTUI, NewArgParser(args)
	}
}

// HandleHelp prints usage.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information, optionally as JSON.
func HandleVersion(args *ArgParser) {
	if args.BoolFlag("json") {
		fmt.Printf(`{"version":%q,"commit":%q,"date":%q,"go":%q}`+"\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	fmt.Printf("easyguing %s\n", Version)
	fmt.Printf("  commit: %s\n", GitCommit)
	fmt.Printf("  built:  %s\n", BuildDate)
	fmt.Printf("  go:     %s\n", runtime.Version())
}
