// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN FORM - Username/password form shown when the backend wants auth
// =============================================================================

// LoginForm collects credentials when a request comes back unauthenticated.
// Tab switches between login and register modes.
type LoginForm struct {
	Username textinput.Model
	Email    textinput.Model // Only shown in register mode
	Password textinput.Model
	Register bool   // True when submitting creates an account
	Err      string // Last auth failure, shown under the fields
	focus    int    // 0 = username, 1 = email (register only), 2 = password
	active   bool
	theme    *styles.Theme
}

// NewLoginForm creates an inactive login form.
func NewLoginForm(theme *styles.Theme) LoginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword

	return LoginForm{Username: user, Email: email, Password: pass, theme: theme}
}

// Show activates the form in login mode with the username focused.
func (f *LoginForm) Show() tea.Cmd {
	f.active = true
	f.Register = false
	f.Err = ""
	f.Password.SetValue("")
	f.focus = 0
	f.Email.Blur()
	f.Password.Blur()
	return f.Username.Focus()
}

// Hide deactivates the form.
func (f *LoginForm) Hide() {
	f.active = false
	f.Username.Blur()
	f.Email.Blur()
	f.Password.Blur()
}

// Active reports whether the form is showing.
func (f *LoginForm) Active() bool {
	return f.active
}

// SetError records an auth failure to display.
func (f *LoginForm) SetError(msg string) {
	f.Err = msg
}

// Submission carries the credentials when the form is submitted.
type Submission struct {
	Username string
	Email    string
	Password string
	Register bool
}

// Update handles form keys. It returns a non-nil Submission when the user
// pressed enter on a complete form, plus any input command.
func (f *LoginForm) Update(msg tea.Msg) (*Submission, tea.Cmd) {
	if !f.active {
		return nil, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			f.Register = !f.Register
			if !f.Register && f.focus == 1 {
				return nil, f.setFocus(0)
			}
			return nil, nil
		case "up":
			return nil, f.moveFocus(-1)
		case "down":
			return nil, f.moveFocus(1)
		case "enter":
			if f.focus != 2 {
				return nil, f.moveFocus(1)
			}
			user := strings.TrimSpace(f.Username.Value())
			pass := f.Password.Value()
			if user == "" || pass == "" {
				f.Err = "Username and password are required"
				return nil, nil
			}
			return &Submission{
				Username: user,
				Email:    strings.TrimSpace(f.Email.Value()),
				Password: pass,
				Register: f.Register,
			}, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.Username, cmd = f.Username.Update(msg)
	case 1:
		f.Email, cmd = f.Email.Update(msg)
	default:
		f.Password, cmd = f.Password.Update(msg)
	}
	return nil, cmd
}

// moveFocus advances focus by dir, skipping the email field in login mode.
func (f *LoginForm) moveFocus(dir int) tea.Cmd {
	next := f.focus + dir
	if next == 1 && !f.Register {
		next += dir
	}
	if next < 0 {
		next = 0
	}
	if next > 2 {
		next = 2
	}
	return f.setFocus(next)
}

func (f *LoginForm) setFocus(n int) tea.Cmd {
	f.focus = n
	f.Username.Blur()
	f.Email.Blur()
	f.Password.Blur()
	switch n {
	case 0:
		return f.Username.Focus()
	case 1:
		return f.Email.Focus()
	default:
		return f.Password.Focus()
	}
}

// View renders the form box.
func (f *LoginForm) View() string {
	if !f.active {
		return ""
	}

	title := "Sign in"
	hint := "tab: create account  esc: cancel"
	if f.Register {
		title = "Create account"
		hint = "tab: sign in  esc: cancel"
	}

	var b strings.Builder
	b.WriteString(f.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.theme.FormLabel.Render("Username"))
	b.WriteString(f.Username.View())
	b.WriteString("\n")
	if f.Register {
		b.WriteString(f.theme.FormLabel.Render("Email"))
		b.WriteString(f.Email.View())
		b.WriteString("\n")
	}
	b.WriteString(f.theme.FormLabel.Render("Password"))
	b.WriteString(f.Password.View())
	b.WriteString("\n")
	if f.Err != "" {
		b.WriteString("\n")
		b.WriteString(f.theme.FormError.Render(f.Err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.theme.FormHint.Render(hint))

	return f.theme.FormBox.Render(b.String())
}
