// cli.go - Command routing for the orion CLI.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of the orion client:
// auth, a plain REPL, session listing and export, models, and usage stats.
package cli

import (
	"fmt"
	"os"
)

// Version information, synced from main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies a top-level CLI command.
type Command int

const (
	CmdTUI  Command = iota // Default: launch the full-screen client
	CmdChat                // Plain line-based REPL
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdSessions
	CmdExport
	CmdModels
	CmdStats
	CmdVersion
	CmdHelp
)

// Parse reads os.Args and routes to a command. No arguments means the TUI.
func Parse() (Command, Args) {
	raw := os.Args[1:]
	if len(raw) == 0 {
		return CmdTUI, ParseArgs(nil)
	}

	args := ParseArgs(raw[1:])
	switch raw[0] {
	case "chat", "repl":
		return CmdChat, args
	case "login":
		return CmdLogin, args
	case "register":
		return CmdRegister, args
	case "logout":
		return CmdLogout, args
	case "whoami", "me":
		return CmdWhoami, args
	case "sessions", "ls":
		return CmdSessions, args
	case "export":
		return CmdExport, args
	case "models":
		return CmdModels, args
	case "stats", "usage":
		return CmdStats, args
	case "version", "--version", "-v":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		// Unknown word: treat the whole line as a TUI launch.
		return CmdTUI, ParseArgs(raw)
	}
}

// HandleVersion prints version information.
func HandleVersion(_ Args) error {
	fmt.Printf("orion %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	return nil
}

// HandleHelp prints command usage.
func HandleHelp(_ Args) error {
	fmt.Print(`orion - terminal client for Orion Chat

Usage:
  orion                       Launch the full-screen client
  orion chat                  Plain line-based chat REPL
  orion login [-u USER]       Sign in (password prompted)
  orion register              Create an account
  orion logout                Sign out
  orion whoami                Show the signed-in account
  orion sessions              List conversations
  orion export ID [--format]  Download a conversation (text|structured|document)
  orion models                List selectable models
  orion stats                 Show usage statistics
  orion version               Show version

Flags:
  --server URL    Backend base URL (default http://localhost:5000)
`)
	return nil
}
