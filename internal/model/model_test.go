// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SESSION ORDERING
// =============================================================================

func TestSortSessions_PinnedFirstThenRecency(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []*Session{
		{ID: "a", UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "b", UpdatedAt: base.Add(1 * time.Hour), Pinned: true},
		{ID: "c", UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "d", UpdatedAt: base, Pinned: true},
	}

	SortSessions(sessions)

	order := []string{sessions[0].ID, sessions[1].ID, sessions[2].ID, sessions[3].ID}
	assert.Equal(t, []string{"b", "d", "a", "c"}, order)
}

func TestSortSessions_StableAfterMutations(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []*Session{
		{ID: "a", UpdatedAt: base.Add(time.Hour)},
		{ID: "b", UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "c", UpdatedAt: base.Add(3 * time.Hour)},
	}

	// Pin, rename, archive in arbitrary orders; the invariant must hold
	// after every step: pinned partition first, each descending by update
	// time.
	steps := []func(){
		func() { sessions[0].Pinned = true; sessions[0].UpdatedAt = base.Add(4 * time.Hour) },
		func() { sessions[2].Title = "renamed"; sessions[2].UpdatedAt = base.Add(5 * time.Hour) },
		func() { sessions[1].Archived = true },
		func() { sessions[0].Pinned = false },
	}

	for _, step := range steps {
		step()
		SortSessions(sessions)
		seenUnpinned := false
		var prev *Session
		for _, s := range sessions {
			if !s.Pinned {
				seenUnpinned = true
			} else {
				assert.False(t, seenUnpinned, "pinned session after unpinned")
			}
			if prev != nil && prev.Pinned == s.Pinned {
				assert.False(t, s.UpdatedAt.After(prev.UpdatedAt), "recency order violated")
			}
			prev = s
		}
	}
}

func TestSessionDisplayTitle(t *testing.T) {
	s := &Session{}
	assert.Equal(t, DefaultSessionTitle, s.DisplayTitle())

	s.Title = "short title"
	assert.Equal(t, "short title", s.DisplayTitle())

	s.Title = "a very long session title that certainly exceeds the header width limit"
	got := s.DisplayTitle()
	assert.LessOrEqual(t, len(got), len(s.Title))
	assert.Contains(t, got, "...")
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func TestTranscript_AppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("one")
	tr.AppendAssistant("two")
	tr.AppendUser("three")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "two", msgs[1].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestTranscript_TypingPlaceholderIsSingular(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("hi")

	tr.SetTyping()
	tr.SetTyping() // replaces, never stacks

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Transient)
	assert.True(t, tr.HasTyping())

	tr.ClearTyping()
	assert.False(t, tr.HasTyping())
	assert.Len(t, tr.Messages(), 1)
}

func TestTranscript_RemoveLastAssistant(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("q1")
	tr.AppendAssistant("a1")
	tr.AppendUser("q2")
	tr.AppendAssistant("a2")

	removed := tr.RemoveLastAssistant()
	assert.True(t, removed)

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "a1", tr.LastAssistant().Content)
}

func TestTranscript_RemoveLastAssistant_SkipsTransient(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("q")
	tr.AppendAssistant("a")
	tr.AppendFailure("Connection failed")

	removed := tr.RemoveLastAssistant()
	assert.True(t, removed)
	// The failure notice survives; the real assistant entry is gone.
	assert.Nil(t, tr.LastAssistant())
	assert.Len(t, tr.Messages(), 2)
}

func TestTranscript_RemoveLastAssistant_EmptyIsNoError(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("q")
	assert.False(t, tr.RemoveLastAssistant())
}

func TestTranscript_RepeatedRegeneration(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("q")
	tr.AppendAssistant("a1")

	// Regenerate five times: remove the latest assistant entry, append the
	// replacement. Exactly one assistant message must remain throughout.
	for i := 0; i < 5; i++ {
		tr.RemoveLastAssistant()
		tr.AppendAssistant("regen")
		count := 0
		for _, m := range tr.Messages() {
			if m.Role == RoleAssistant && !m.Transient {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestTranscript_ReplaceAndClear(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("old")
	tr.SetTyping()

	tr.Replace([]*Message{NewUserMessage("new"), NewAssistantMessage("reply")})
	assert.False(t, tr.HasTyping())
	assert.Equal(t, 2, tr.Len())

	tr.Clear()
	assert.True(t, tr.IsEmpty())
}

func TestTranscript_IsLastAssistant(t *testing.T) {
	tr := NewTranscript()
	first := tr.AppendAssistant("a1")
	second := tr.AppendAssistant("a2")

	assert.False(t, tr.IsLastAssistant(first))
	assert.True(t, tr.IsLastAssistant(second))
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettings_TemperatureClamping(t *testing.T) {
	s := DefaultSettings()

	s.SetTemperature(1.7)
	assert.Equal(t, TemperatureMax, s.Temperature)

	s.SetTemperature(-0.2)
	assert.Equal(t, TemperatureMin, s.Temperature)

	s.SetTemperature(0.349)
	assert.InDelta(t, 0.35, s.Temperature, 1e-9)
}

func TestSettings_AdjustTemperature(t *testing.T) {
	s := DefaultSettings()
	s.SetTemperature(0.5)

	s.AdjustTemperature(3)
	assert.InDelta(t, 0.53, s.Temperature, 1e-9)

	s.AdjustTemperature(-100)
	assert.Equal(t, TemperatureMin, s.Temperature)
}

func TestSettings_Toggles(t *testing.T) {
	s := DefaultSettings()

	s.ToggleTheme()
	assert.Equal(t, ThemeLight, s.Theme)
	s.ToggleTheme()
	assert.Equal(t, ThemeDark, s.Theme)

	s.ToggleFontSize()
	assert.Equal(t, FontLarge, s.FontSize)
	s.ToggleFontSize()
	assert.Equal(t, FontNormal, s.FontSize)
}
