// sessions_cmd.go - Session listing, export, models, and stats handlers.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/export"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/stats"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	listMetaStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	listBadgeStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)
)

// HandleSessions handles the "sessions" command: a plain listing in the
// same order the sidebar shows (pinned first, then recency).
func HandleSessions(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}

	var sessions []*model.Session
	if q := args.Flag("search", "q"); q != "" {
		sessions, err = client.SearchSessions(context.Background(), q)
	} else {
		sessions, err = client.ListSessions(context.Background())
	}
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}

	if len(sessions) == 0 {
		fmt.Println("No conversations yet")
		return nil
	}
	for _, s := range sessions {
		badge := "  "
		if s.Pinned {
			badge = listBadgeStyle.Render("^ ")
		} else if s.Archived {
			badge = listMetaStyle.Render("~ ")
		}
		fmt.Printf("%s%s  %s  %s\n",
			badge,
			listTitleStyle.Render(s.DisplayTitle()),
			listMetaStyle.Render(s.ID),
			listMetaStyle.Render(fmt.Sprintf("%d messages", s.MessageCount)),
		)
	}
	return nil
}

// HandleExport handles the "export" command: download one session to a
// local file. Formats: text (default), structured, document.
func HandleExport(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}

	id := args.Subcommand()
	if id == "" {
		return fmt.Errorf("usage: orion export SESSION_ID [--format text|structured|document]")
	}
	format := api.ExportFormat(args.Flag("format", "f"))
	if format == "" {
		format = api.ExportText
	}
	if !format.Valid() {
		return fmt.Errorf("unknown export format %q", format)
	}

	body, err := client.ExportSession(context.Background(), id, format)
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	path, err := export.Save(args.Flag("out", "o"), id, format, body)
	if err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", path)
	return nil
}

// HandleModels handles the "models" command.
func HandleModels(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	models, def, err := client.Models(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	fmt.Print(stats.RenderModels(models, def))
	return nil
}

// HandleStats handles the "stats" command.
func HandleStats(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	usage, err := client.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	fmt.Println(stats.Render(usage))
	return nil
}
