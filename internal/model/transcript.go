// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered message log for the active session.
//
// The transcript is append-only: messages are never reordered. The only
// removal operations are the typing placeholder (at most one at a time) and
// the most recent assistant entry during regeneration. All mutation happens
// on the UI event loop, so no locking is needed.
type Transcript struct {
	messages []*Message

	// typing is the current typing placeholder, or nil. It is tracked
	// separately from messages so clearing it is O(1) and cannot remove a
	// real entry by accident.
	typing *Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg *Message) {
	t.messages = append(t.messages, msg)
}

// AppendUser creates and appends a user message.
func (t *Transcript) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	t.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message.
func (t *Transcript) AppendAssistant(content string) *Message {
	msg := NewAssistantMessage(content)
	t.Append(msg)
	return msg
}

// AppendFailure creates and appends a transient failure notice.
func (t *Transcript) AppendFailure(content string) *Message {
	msg := NewFailureNotice(content)
	t.Append(msg)
	return msg
}

// Replace swaps the entire transcript for a new message list. Used when
// switching sessions: the visible log is fully rebuilt from backend state.
func (t *Transcript) Replace(messages []*Message) {
	t.typing = nil
	t.messages = append([]*Message(nil), messages...)
}

// Clear removes all messages and any typing placeholder. Used when a new
// session is created or the active session is deleted.
func (t *Transcript) Clear() {
	t.typing = nil
	t.messages = nil
}

// Messages returns the visible log in order, including the typing
// placeholder as the final entry when one is active.
func (t *Transcript) Messages() []*Message {
	if t.typing == nil {
		return t.messages
	}
	out := make([]*Message, 0, len(t.messages)+1)
	out = append(out, t.messages...)
	return append(out, t.typing)
}

// Len returns the number of non-transient messages.
func (t *Transcript) Len() int {
	n := 0
	for _, msg := range t.messages {
		if !msg.Transient {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the transcript has no messages at all.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0 && t.typing == nil
}

// =============================================================================
// LATEST ASSISTANT MESSAGE
// =============================================================================

// LastAssistant returns the most recent non-transient assistant message, or
// nil. Only this entry carries the copy/regenerate affordances.
func (t *Transcript) LastAssistant() *Message {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant && !t.messages[i].Transient {
			return t.messages[i]
		}
	}
	return nil
}

// IsLastAssistant reports whether msg is the latest assistant entry.
func (t *Transcript) IsLastAssistant(msg *Message) bool {
	last := t.LastAssistant()
	return last != nil && msg == last
}

// RemoveLastAssistant removes the most recent non-transient assistant entry
// and reports whether one was removed. Regeneration calls this before
// appending the replacement; when no such entry exists the caller proceeds
// with a plain append.
func (t *Transcript) RemoveLastAssistant() bool {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant && !t.messages[i].Transient {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return true
		}
	}
	return false
}

// =============================================================================
// TYPING PLACEHOLDER
// =============================================================================

// SetTyping inserts the typing placeholder, replacing any existing one.
// At most one placeholder exists at a time.
func (t *Transcript) SetTyping() {
	msg := NewMessage(RoleAssistant, "")
	msg.Transient = true
	t.typing = msg
}

// ClearTyping removes the typing placeholder if present.
func (t *Transcript) ClearTyping() {
	t.typing = nil
}

// HasTyping reports whether the typing placeholder is visible.
func (t *Transcript) HasTyping() bool {
	return t.typing != nil
}
