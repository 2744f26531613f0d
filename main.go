// orion - A terminal client for the Orion Chat backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/cli"
	"github.com/orionchat/orion-tui/internal/config"
	"github.com/orionchat/orion-tui/internal/ui/chat"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdChat:
		err = cli.HandleChat(args)
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdRegister:
		err = cli.HandleRegister(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdWhoami:
		err = cli.HandleWhoami(args)
	case cli.CmdSessions:
		err = cli.HandleSessions(args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdModels:
		err = cli.HandleModels(args)
	case cli.CmdStats:
		err = cli.HandleStats(args)
	case cli.CmdVersion:
		err = cli.HandleVersion(args)
	case cli.CmdHelp:
		err = cli.HandleHelp(args)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI launches the full-screen client.
func runTUI(args cli.Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Log to a file: stdout belongs to the TUI.
	if logPath, err := config.LogPath(); err == nil {
		if f, err := tea.LogToFile(logPath, "orion"); err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(os.Stderr)
	}

	baseURL := cfg.Server.BaseURL
	if s := args.Flag("server", "s"); s != "" {
		baseURL = s
	}
	client := api.NewClient(baseURL).WithTimeout(cfg.Server.Timeout())
	if path, err := config.SessionPath(); err == nil {
		_ = client.LoadCookies(path)
	}

	settings := cfg.Settings()
	theme := styles.NewTheme(string(settings.Theme), string(settings.FontSize))

	m := chat.New(theme, client, settings)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload settings when the config file changes on disk.
	if cfgPath, err := config.Path(); err == nil {
		if w, err := config.Watch(cfgPath, func(c *config.Config) {
			p.Send(chat.SettingsReloadedMsg{Settings: c.Settings()})
		}); err == nil {
			defer w.Close()
		}
	}

	_, err = p.Run()
	return err
}
