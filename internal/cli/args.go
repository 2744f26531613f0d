// args.go - Unified argument parsing for all CLI commands in orion.
//
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

// Args provides unified argument parsing for CLI commands. It handles:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	-f value         Short flag with space-separated value
//	--flag           Boolean flag (no value)
//
// and positional arguments, with the first positional treated as the
// subcommand.
type Args struct {
	subcommand string
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// ParseArgs creates an Args from raw arguments.
func ParseArgs(raw []string) Args {
	a := Args{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			a.positional = append(a.positional, arg)
			i++
			continue
		}

		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			name := strings.TrimLeft(parts[0], "-")
			if parts[1] == "true" || parts[1] == "false" {
				a.boolFlags[name] = parts[1] == "true"
			} else {
				a.flags[name] = parts[1]
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			a.flags[name] = raw[i+1]
			i += 2
		} else {
			a.boolFlags[name] = true
			i++
		}
	}

	if len(a.positional) > 0 {
		a.subcommand = a.positional[0]
	}
	return a
}

// Subcommand returns the first positional argument, or "".
func (a Args) Subcommand() string {
	return a.subcommand
}

// Positional returns all positional arguments.
func (a Args) Positional() []string {
	return a.positional
}

// Flag returns the value of a string flag, or "".
func (a Args) Flag(names ...string) string {
	for _, name := range names {
		if v, ok := a.flags[strings.TrimLeft(name, "-")]; ok {
			return v
		}
	}
	return ""
}

// BoolFlag reports whether a boolean flag was set.
func (a Args) BoolFlag(names ...string) bool {
	for _, name := range names {
		if a.boolFlags[strings.TrimLeft(name, "-")] {
			return true
		}
	}
	return false
}

// IntFlag returns an integer flag value, or def when absent or malformed.
func (a Args) IntFlag(def int, names ...string) int {
	s := a.Flag(names...)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
