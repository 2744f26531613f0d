// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/dispatch"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	theme := styles.NewTheme("dark", "normal")
	m := New(theme, api.NewClient("http://localhost:9"), model.DefaultSettings())
	m.resize(100, 30)
	return m
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typeText(m Model, s string) Model {
	m.input.SetValue(s)
	return m
}

// =============================================================================
// SENDING
// =============================================================================

func TestSendAppendsUserAndTyping(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "hello there")

	next, cmd := m.handleKey(enterKey())
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.transcript.Len())
	assert.True(t, m.transcript.HasTyping())
	assert.NotEmpty(t, m.activeTag)
	assert.Empty(t, m.input.Value())
	assert.True(t, m.dispatch.InFlight())
}

func TestSendRejectsBlankInput(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "   \t  ")

	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	assert.Equal(t, 0, m.transcript.Len())
	assert.False(t, m.transcript.HasTyping())
	assert.False(t, m.dispatch.InFlight())
	assert.Equal(t, "   \t  ", m.input.Value())
}

func TestSendRejectedWhileInFlight(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "first")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	m = typeText(m, "second")
	next, cmd := m.handleKey(enterKey())
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.transcript.Len())
	assert.Equal(t, "second", m.input.Value())
}

// =============================================================================
// RESULT CONSUMPTION
// =============================================================================

func resultFor(m Model, reply, title string) *dispatch.Result {
	return &dispatch.Result{
		Tag:       m.activeTag,
		SessionID: m.activeID,
		Reply:     &api.ChatReply{Reply: reply, SessionTitle: title},
	}
}

func TestReplyReplacesTypingPlaceholder(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	next, _ = m.handleChatResult(resultFor(m, "Hello back", ""))
	m = next.(Model)

	assert.False(t, m.transcript.HasTyping())
	require.NotNil(t, m.transcript.LastAssistant())
	assert.Equal(t, "Hello back", m.transcript.LastAssistant().Content)
	assert.False(t, m.dispatch.InFlight())
	assert.Empty(t, m.activeTag)
}

func TestStaleReplyIsDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)
	staleTag := m.activeTag

	// User switches to another session before the reply lands.
	detail := &api.SessionDetail{
		Session:  &model.Session{ID: "s2", Title: "Other"},
		Messages: []*model.Message{model.NewUserMessage("old")},
	}
	next, _ = m.handleSessionOpened(SessionOpenedMsg{ID: "s2", Detail: detail})
	m = next.(Model)

	next, cmd := m.handleChatResult(&dispatch.Result{
		Tag:       staleTag,
		SessionID: "s1",
		Reply:     &api.ChatReply{Reply: "late"},
	})
	m = next.(Model)

	// The late reply must not leak into the new session's transcript.
	assert.Nil(t, m.transcript.LastAssistant())
	assert.Equal(t, 1, m.transcript.Len())
	// The flag still clears so the user can send again.
	assert.False(t, m.dispatch.InFlight())
	// The backend did persist the exchange, so the listing still refreshes.
	assert.NotNil(t, cmd)
}

func TestStaleFailureSkipsRefresh(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)
	staleTag := m.activeTag

	m.startNewChat()

	next, cmd := m.handleChatResult(&dispatch.Result{
		Tag:       staleTag,
		SessionID: "s1",
		Err:       api.ErrUnavailable,
	})
	m = next.(Model)

	// Nothing was persisted and nobody is waiting; no refresh, no notice.
	assert.Nil(t, cmd)
	assert.True(t, m.transcript.IsEmpty())
}

func TestImplicitSessionCreationAdoptsID(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "first message")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	next, cmd := m.handleChatResult(&dispatch.Result{
		Tag:            m.activeTag,
		SessionID:      "fresh-id",
		SessionCreated: true,
		Reply:          &api.ChatReply{Reply: "welcome", SessionTitle: "First message"},
	})
	m = next.(Model)

	assert.Equal(t, "fresh-id", m.activeID)
	assert.Equal(t, "First message", m.activeTitle)
	assert.NotNil(t, cmd) // Directory refresh follows the successful send
}

func TestFailureAppendsTransientNotice(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	next, _ = m.handleChatResult(&dispatch.Result{
		Tag:       m.activeTag,
		SessionID: "s1",
		Err:       api.ErrUnavailable,
	})
	m = next.(Model)

	msgs := m.transcript.Messages()
	require.NotEmpty(t, msgs)
	notice := msgs[len(msgs)-1]
	assert.True(t, notice.Transient)
	assert.Equal(t, "Connection failed", notice.Content)
	// The user's message stays so they can retry.
	assert.Equal(t, 1, m.transcript.Len())
	assert.False(t, m.dispatch.InFlight())
}

func TestAuthFailureOpensLoginForm(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)

	next, _ = m.handleChatResult(&dispatch.Result{
		Tag:       m.activeTag,
		SessionID: "s1",
		Err:       api.ErrAuthRequired,
	})
	m = next.(Model)

	assert.True(t, m.login.Active())
}

func TestAuthFailureOnSessionOpenOpensLoginForm(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.handleSessionOpened(SessionOpenedMsg{ID: "s1", Err: api.ErrAuthRequired})
	m = next.(Model)

	assert.True(t, m.login.Active())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.activeID)
}

// =============================================================================
// REGENERATION
// =============================================================================

func TestRegenerateReplacesLatestReply(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m.transcript.AppendUser("question")
	m.transcript.AppendAssistant("first answer")

	next, cmd := m.regenerate()
	m = next.(Model)
	require.NotNil(t, cmd)
	// Old reply visible until the replacement arrives.
	assert.Equal(t, "first answer", m.transcript.LastAssistant().Content)
	assert.True(t, m.transcript.HasTyping())

	next, _ = m.handleChatResult(&dispatch.Result{
		Tag:        m.activeTag,
		SessionID:  "s1",
		Regenerate: true,
		Reply:      &api.ChatReply{Reply: "second answer"},
	})
	m = next.(Model)

	assert.Equal(t, "second answer", m.transcript.LastAssistant().Content)
	assert.Equal(t, 2, m.transcript.Len())
}

func TestRegenerateWithoutReplyIsNoop(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m.transcript.AppendUser("question")

	next, cmd := m.regenerate()
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.transcript.HasTyping())
	assert.False(t, m.dispatch.InFlight())
}

// =============================================================================
// SESSION DIRECTORY
// =============================================================================

func TestSessionsLoadedPopulatesSidebar(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.handleSessionsLoaded(SessionsLoadedMsg{Sessions: []*model.Session{
		{ID: "a", Title: "One", UpdatedAt: time.Now()},
		{ID: "b", Title: "Two", UpdatedAt: time.Now()},
	}})
	m = next.(Model)

	assert.Len(t, m.sidebar.Sessions, 2)
	assert.Empty(t, m.sidebar.Err)
}

func TestSessionsLoadErrorShownInline(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.handleSessionsLoaded(SessionsLoadedMsg{Err: api.ErrUnavailable})
	m = next.(Model)
	assert.Equal(t, "Connection failed", m.sidebar.Err)
}

func TestDeleteActiveSessionResetsConversation(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m.activeTitle = "Doomed"
	m.transcript.AppendUser("bye")

	next, cmd := m.handleSessionMutated(SessionMutatedMsg{Verb: "delete", ID: "s1", Deleted: true})
	m = next.(Model)

	assert.Empty(t, m.activeID)
	assert.True(t, m.transcript.IsEmpty())
	assert.NotNil(t, cmd) // Refresh follows every mutation
}

func TestMutationAlwaysRefreshesListing(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.handleSessionMutated(SessionMutatedMsg{Verb: "pin", ID: "x"})
	_ = next
	assert.NotNil(t, cmd)

	next, cmd = m.handleSessionMutated(SessionMutatedMsg{Verb: "pin", ID: "x", Err: errors.New("boom")})
	_ = next
	assert.NotNil(t, cmd)
}

// =============================================================================
// NEW CHAT
// =============================================================================

func TestNewChatClearsState(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m.activeTitle = "Old"
	m.transcript.AppendUser("old text")

	m.startNewChat()

	assert.Empty(t, m.activeID)
	assert.True(t, m.transcript.IsEmpty())
	assert.Contains(t, m.header.View(), "New Chat")
}

func TestNewChatInvalidatesInFlightReply(t *testing.T) {
	m := newTestModel(t)
	m.activeID = "s1"
	m = typeText(m, "hi")
	next, _ := m.handleKey(enterKey())
	m = next.(Model)
	tag := m.activeTag

	m.startNewChat()

	next, _ = m.handleChatResult(&dispatch.Result{
		Tag:       tag,
		SessionID: "s1",
		Reply:     &api.ChatReply{Reply: "late"},
	})
	m = next.(Model)
	assert.True(t, m.transcript.IsEmpty())
}
