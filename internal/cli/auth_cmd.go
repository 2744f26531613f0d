// auth_cmd.go - Login, register, logout, whoami command handlers.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/config"
)

// newClient builds a backend client for CLI commands: config plus --server
// override, with any saved login cookie restored.
func newClient(args Args) (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	base := cfg.Server.BaseURL
	if s := args.Flag("server", "s"); s != "" {
		base = s
	}
	client := api.NewClient(base)
	if path, err := config.SessionPath(); err == nil {
		_ = client.LoadCookies(path)
	}
	return client, nil
}

// saveSession persists the login cookie for later CLI invocations.
func saveSession(client *api.Client) {
	path, err := config.SessionPath()
	if err != nil {
		return
	}
	if err := client.SaveCookies(path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
	}
}

// promptLine reads one line from stdin with a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	defer fmt.Println()
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// HandleLogin handles the "login" command.
func HandleLogin(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}

	username := args.Flag("user", "u")
	if username == "" {
		if username, err = promptLine("Username: "); err != nil {
			return err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := client.Login(context.Background(), username, password)
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	saveSession(client)
	fmt.Printf("Signed in as %s\n", user.Username)
	return nil
}

// HandleRegister handles the "register" command.
func HandleRegister(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}

	username, err := promptLine("Username: ")
	if err != nil {
		return err
	}
	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := client.Register(context.Background(), username, email, password)
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	saveSession(client)
	fmt.Printf("Account created, signed in as %s\n", user.Username)
	return nil
}

// HandleLogout handles the "logout" command.
func HandleLogout(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	// Best effort on the backend side; the local cookie is removed anyway.
	_ = client.Logout(context.Background())
	if path, err := config.SessionPath(); err == nil {
		_ = api.ClearCookies(path)
	}
	fmt.Println("Signed out")
	return nil
}

// HandleWhoami handles the "whoami" command.
func HandleWhoami(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	user, err := client.Me(context.Background())
	if err != nil {
		return fmt.Errorf("%s", api.UserText(err))
	}
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\n", user.Username, user.Email)
	return nil
}
