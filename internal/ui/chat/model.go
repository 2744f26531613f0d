// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view for the Orion TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/render"
	"github.com/orionchat/orion-tui/internal/ui/components"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

// Focus identifies which pane receives keyboard input.
type Focus int

const (
	FocusInput Focus = iota
	FocusSidebar
)

// Layout constants.
const (
	sidebarWidth  = 34
	inputCharMax  = 4096
	minimumWidth  = 60
	minimumHeight = 12
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole client: session sidebar,
// conversation pane, input line, and the overlays.
type Model struct {
	theme    *styles.Theme
	client   *api.Client
	dispatch *dispatch.Dispatcher
	renderer *render.Renderer
	settings *model.Settings

	width  int
	height int

	// Conversation state
	transcript  *model.Transcript
	activeID    string // Backend ID of the open session, "" before creation
	activeTitle string
	activeTag   string // Tag of the outstanding exchange, "" when idle

	// Components
	header        *components.Header
	sidebar       *components.SessionList
	statusBar     *components.StatusBar
	typing        components.Typing
	confirm       components.Confirm
	login         components.LoginForm
	settingsPanel components.SettingsPanel

	viewport    viewport.Model
	input       textinput.Model
	searchInput textinput.Model
	renameInput textinput.Model

	keyMap KeyMap

	focus      Focus
	searchMode bool
	renameMode bool
	renameID   string

	// Pending delete target while the confirm modal is open
	deleteID string

	user *api.User
}

// New creates the chat model.
func New(theme *styles.Theme, client *api.Client, settings *model.Settings) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = inputCharMax
	ti.Focus()

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search sessions"
	search.CharLimit = 256

	rename := textinput.New()
	rename.Prompt = "Rename: "
	rename.CharLimit = 120

	vp := viewport.New(80, 20)

	return Model{
		theme:    theme,
		client:   client,
		dispatch: dispatch.New(client),
		renderer: render.New(settings.Theme, 80, true),
		settings: settings,

		transcript: model.NewTranscript(),

		header:        components.NewHeader(theme),
		sidebar:       components.NewSessionList(theme),
		statusBar:     components.NewStatusBar(theme),
		typing:        components.NewTyping(theme),
		confirm:       components.NewConfirm(theme),
		login:         components.NewLoginForm(theme),
		settingsPanel: components.NewSettingsPanel(theme, settings),

		viewport:    vp,
		input:       ti,
		searchInput: search,
		renameInput: rename,

		keyMap: DefaultKeyMap(),
	}
}

// Init starts the initial data loads.
func (m Model) Init() tea.Cmd {
	m.header.SetModel(m.settings.Model)
	return tea.Batch(
		textinput.Blink,
		m.loadSessions(),
		m.fetchModels(),
	)
}

// resize recomputes the pane layout after a terminal size change.
func (m *Model) resize(width, height int) {
	if width < minimumWidth {
		width = minimumWidth
	}
	if height < minimumHeight {
		height = minimumHeight
	}
	m.width = width
	m.height = height
	m.theme.Resize(width, height)

	contentWidth := width - sidebarWidth - 2
	// Header, input, status bar, and borders eat five rows.
	contentHeight := height - 5

	m.header.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.input.Width = width - 6
	m.renderer.Resize(contentWidth - 4)
	m.refreshViewport()
}
