// chat.go - Plain line-based chat REPL.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Handles the "orion chat" command: a readline-style loop against the
// backend for terminals where the full-screen client is unwanted (ssh
// sessions, scripts, screen readers).
//
// Commands inside the REPL:
//	/new            Start a fresh conversation
//	/open ID        Continue an existing conversation
//	/sessions       List conversations
//	/regen          Regenerate the last reply
//	/quit           Exit
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/config"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/render"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput wraps liner with persistent history in the config directory.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if dir, err := config.Dir(); err == nil {
		historyFile = filepath.Join(dir, "chat_history")
	}

	r := &replInput{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *replInput) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// Read reads one line, recording non-blank input in history.
func (r *replInput) Read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (r *replInput) Close() {
	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// HANDLE CHAT
// =============================================================================

// HandleChat handles the "chat" command.
func HandleChat(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newClient(args)
	if err != nil {
		return err
	}

	settings := cfg.Settings()
	if m := args.Flag("model", "m"); m != "" {
		settings.Model = m
	}

	d := dispatch.New(client)
	// No typing indicator to hold on screen in the plain REPL.
	d.SetFloor(0)

	renderer := render.New(settings.Theme, 100, cfg.UI.Markdown)

	input := newReplInput()
	defer input.Close()

	fmt.Println(welcomeStyle.Render("orion chat"))
	fmt.Println(infoStyle.Render("model: " + settings.Model + "    /quit to exit, /new for a fresh conversation"))
	fmt.Println()

	sessionID := args.Flag("session")

	for {
		text, err := input.Read(promptStyle.Render("> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(infoStyle.Render("bye"))
				return nil
			}
			return nil // EOF
		}

		if strings.HasPrefix(strings.TrimSpace(text), "/") {
			done, newID := replCommand(client, d, sessionID, text)
			sessionID = newID
			if done {
				return nil
			}
			continue
		}

		sessionID = replSend(d, renderer, settings, sessionID, text)
	}
}

// replCommand executes one slash command. It returns (quit, sessionID).
func replCommand(client *api.Client, d *dispatch.Dispatcher, sessionID, text string) (bool, string) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(text), "/"))
	if len(fields) == 0 {
		return false, sessionID
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return true, sessionID

	case "new", "n":
		fmt.Println(infoStyle.Render("new conversation"))
		return false, ""

	case "open", "o":
		if len(fields) < 2 {
			fmt.Println(errorStyle.Render("usage: /open SESSION_ID"))
			return false, sessionID
		}
		detail, err := client.GetSession(context.Background(), fields[1])
		if err != nil {
			fmt.Println(errorStyle.Render(api.UserText(err)))
			return false, sessionID
		}
		fmt.Println(infoStyle.Render("continuing: " + detail.Session.DisplayTitle()))
		return false, detail.Session.ID

	case "sessions", "ls":
		if err := HandleSessions(ParseArgs(nil)); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
		}
		return false, sessionID

	case "regen", "r":
		task, err := d.SendRegenerate(sessionID)
		if err != nil {
			fmt.Println(errorStyle.Render(replNotice(err)))
			return false, sessionID
		}
		res := task.Run(context.Background())
		d.Finish()
		printResult(res)
		return false, sessionID

	default:
		fmt.Println(errorStyle.Render("unknown command: /" + fields[0]))
		return false, sessionID
	}
}

// replSend dispatches one message synchronously and prints the reply. It
// returns the session ID, adopting a newly created one.
func replSend(d *dispatch.Dispatcher, renderer *render.Renderer, settings *model.Settings, sessionID, text string) string {
	task, err := d.Send(sessionID, text, settings)
	if err != nil {
		if !errors.Is(err, dispatch.ErrEmptyMessage) {
			fmt.Println(errorStyle.Render(replNotice(err)))
		}
		return sessionID
	}

	res := task.Run(context.Background())
	d.Finish()

	if res.Err != nil {
		fmt.Println(errorStyle.Render(api.UserText(res.Err)))
		return sessionID
	}
	if res.SessionCreated {
		sessionID = res.SessionID
		fmt.Println(infoStyle.Render("session: " + sessionID))
	}
	fmt.Println(renderer.Assistant(res.Reply.Reply))
	fmt.Println()
	return sessionID
}

// printResult prints a regenerate outcome.
func printResult(res *dispatch.Result) {
	if res.Err != nil {
		fmt.Println(errorStyle.Render(api.UserText(res.Err)))
		return
	}
	fmt.Println(res.Reply.Reply)
	fmt.Println()
}

// replNotice maps dispatcher rejections to REPL text.
func replNotice(err error) string {
	switch {
	case errors.Is(err, dispatch.ErrBusy):
		return "still waiting for the previous reply"
	case errors.Is(err, dispatch.ErrThrottled):
		return "rate limit reached, wait a moment"
	case errors.Is(err, dispatch.ErrNoSession):
		return "no conversation yet"
	default:
		return api.UserText(err)
	}
}
