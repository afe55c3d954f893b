// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser gives every command the same flag handling:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	--flag           Boolean flag (no value)
//
// Arguments without a dash are positional; the first one is the
// subcommand.
type ArgParser struct {
	subcommand string
	flags      map[string]string
	flagValues map[string][]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw arguments.
func NewArgParser(raw []string) *ArgParser {
	p := &ArgParser{
		flags:      make(map[string]string),
		flagValues: make(map[string][]string),
		boolFlags:  make(map[string]bool),
	}

	for i := 0; i < len(raw); {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			p.positional = append(p.positional, arg)
			i++
			continue
		}

		if name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "="); ok {
			// Boolean flags can be explicit: --json=true, --json=false
			if value == "true" || value == "false" {
				p.boolFlags[name] = value == "true"
			} else {
				p.setFlag(name, value)
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.setFlag(name, raw[i+1])
			i += 2
		} else {
			p.boolFlags[name] = true
			i++
		}
	}

	if len(p.positional) > 0 {
		p.subcommand = p.positional[0]
	}
	return p
}

// Subcommand returns the first positional argument, "" when absent.
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Positional returns the positional arguments including the subcommand.
func (p *ArgParser) Positional() []string {
	return p.positional
}

func (p *ArgParser) setFlag(name, value string) {
	p.flags[name] = value
	p.flagValues[name] = append(p.flagValues[name], value)
}

// Flag returns the value of a string flag, "" when absent. A repeated
// flag returns its last value; see FlagValues for all of them.
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagValues returns every value a repeatable flag was given, in order.
func (p *ArgParser) FlagValues(name string) []string {
	return p.flagValues[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value or a default when absent.
func (p *ArgParser) FlagOrDefault(name, def string) string {
	if v := p.Flag(name); v != "" {
		return v
	}
	return def
}

// IntFlag returns a numeric flag value, def when absent or malformed.
func (p *ArgParser) IntFlag(name string, def int) int {
	v := p.Flag(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// BoolFlag reports whether a boolean flag is set.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// Flags returns all string flags, for commands that treat flag names as
// open-ended keys (model inputs).
func (p *ArgParser) Flags() map[string]string {
	return p.flags
}
