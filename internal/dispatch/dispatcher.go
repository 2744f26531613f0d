// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch implements the message dispatcher: it sends a user's
// message (or a regenerate directive) plus the current generation settings
// to the backend and shapes the result for the UI.
//
// Two contracts live here and nowhere else:
//
//   - In-flight gating. While one exchange is outstanding, further sends
//     are rejected, not queued. The flag is owned by the UI event loop:
//     Send/Regenerate set it, Finish clears it when the result message is
//     consumed.
//
//   - Perceived-latency floor. The typing indicator stays visible for at
//     least TypingFloor even when the backend answers faster. The wait is
//     two-phase: the network call completes first, then the task sleeps
//     max(0, floor-elapsed) on the injected clock. The floor never delays
//     the network call itself.
//
// Each task carries a tag and the session ID it was issued for, so the UI
// can discard a reply that arrives after the active session has changed.
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/orionchat/orion-tui/internal/api"
	"github.com/orionchat/orion-tui/internal/model"
	"github.com/orionchat/orion-tui/internal/util"
)

// TypingFloor is the minimum time the typing indicator remains visible.
const TypingFloor = 800 * time.Millisecond

// Backend rate limit on the chat endpoint: 15 requests per minute. The
// client enforces the same budget locally so a fast typist sees a polite
// local notice instead of a 429.
const (
	chatRatePerMinute = 15
)

// Rejection reasons returned by Send and Regenerate. None of them have
// side effects: no network call is made and no transcript entry appears.
var (
	// ErrEmptyMessage rejects empty or whitespace-only input.
	ErrEmptyMessage = errors.New("empty message")

	// ErrBusy rejects a send while another one is in flight.
	ErrBusy = errors.New("send already in flight")

	// ErrNoSession rejects a regenerate with no active session.
	ErrNoSession = errors.New("no active session")

	// ErrThrottled rejects a send that would exceed the chat rate limit.
	ErrThrottled = errors.New("rate limit reached")
)

// Backend is the slice of the API client the dispatcher needs. The UI
// tests inject a fake.
type Backend interface {
	SendMessage(ctx context.Context, sessionID, message string, settings *model.Settings) (*api.ChatReply, error)
	Regenerate(ctx context.Context, sessionID string) (*api.ChatReply, error)
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (string, error)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher coordinates chat exchanges with the backend. It is owned by
// the UI event loop; only Task.Run executes off it.
type Dispatcher struct {
	backend Backend
	clock   Clock
	limiter *rate.Limiter
	floor   time.Duration

	inFlight bool
}

// New creates a dispatcher with the real clock and the standard floor.
func New(backend Backend) *Dispatcher {
	return NewWithClock(backend, SystemClock())
}

// NewWithClock creates a dispatcher with an injected clock. Tests pass a
// fake clock to make the floor deterministic.
func NewWithClock(backend Backend, clock Clock) *Dispatcher {
	return &Dispatcher{
		backend: backend,
		clock:   clock,
		limiter: rate.NewLimiter(rate.Limit(float64(chatRatePerMinute)/60.0), chatRatePerMinute),
		floor:   TypingFloor,
	}
}

// SetFloor overrides the latency floor. Used by tests and the plain REPL
// mode, which has no typing indicator to hold on screen.
func (d *Dispatcher) SetFloor(floor time.Duration) {
	d.floor = floor
}

// InFlight reports whether an exchange is outstanding.
func (d *Dispatcher) InFlight() bool {
	return d.inFlight
}

// Finish clears the in-flight flag. The UI calls this when it consumes a
// task result, whether the exchange succeeded or failed, so the user can
// always retry.
func (d *Dispatcher) Finish() {
	d.inFlight = false
}

// =============================================================================
// TASK
// =============================================================================

// Task is one accepted exchange. Run performs the network call and the
// floor wait; it is safe to execute on a separate goroutine because it
// touches no dispatcher state.
type Task struct {
	// Tag uniquely identifies this exchange.
	Tag string

	// SessionID is the session the exchange was issued for. Empty when
	// the session will be created implicitly by Run.
	SessionID string

	// Regenerate marks a regenerate-last directive instead of a new send.
	Regenerate bool

	message  string
	settings model.Settings
	create   api.CreateSessionRequest

	backend Backend
	clock   Clock
	floor   time.Duration
}

// Result is the outcome of a task, delivered back to the UI event loop.
type Result struct {
	// Tag and SessionID echo the task. SessionID is authoritative: for an
	// implicit creation it carries the backend-assigned ID.
	Tag       string
	SessionID string

	// SessionCreated is true when the session was created implicitly as
	// part of this exchange.
	SessionCreated bool

	// CreateFailed is true when implicit creation failed; the send was
	// abandoned without side effects and Err holds the creation error.
	CreateFailed bool

	Regenerate bool
	Reply      *api.ChatReply
	Err        error
}

// Send accepts a new message exchange or rejects it without side effects.
// A blank message, an exchange already in flight, or an exhausted rate
// budget all reject. When sessionID is empty the task will create a
// session first using the current settings.
func (d *Dispatcher) Send(sessionID, message string, settings *model.Settings) (*Task, error) {
	if util.IsBlank(message) {
		return nil, ErrEmptyMessage
	}
	if d.inFlight {
		return nil, ErrBusy
	}
	if d.limiter != nil && !d.limiter.Allow() {
		return nil, ErrThrottled
	}

	d.inFlight = true
	return &Task{
		Tag:       uuid.NewString(),
		SessionID: sessionID,
		message:   message,
		settings:  *settings,
		create: api.CreateSessionRequest{
			Model:        settings.Model,
			SystemPrompt: settings.SystemPrompt,
		},
		backend: d.backend,
		clock:   d.clock,
		floor:   d.floor,
	}, nil
}

// SendRegenerate accepts a regenerate-last exchange for the session, under
// the same in-flight and rate gating as Send.
func (d *Dispatcher) SendRegenerate(sessionID string) (*Task, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	if d.inFlight {
		return nil, ErrBusy
	}
	if d.limiter != nil && !d.limiter.Allow() {
		return nil, ErrThrottled
	}

	d.inFlight = true
	return &Task{
		Tag:        uuid.NewString(),
		SessionID:  sessionID,
		Regenerate: true,
		backend:    d.backend,
		clock:      d.clock,
		floor:      d.floor,
	}, nil
}

// Run executes the exchange: implicit session creation when needed, the
// chat call, then the remaining-floor wait. The floor applies to failures
// too, so the typing indicator never flickers.
func (t *Task) Run(ctx context.Context) *Result {
	res := &Result{
		Tag:        t.Tag,
		SessionID:  t.SessionID,
		Regenerate: t.Regenerate,
	}

	start := t.clock.Now()

	if res.SessionID == "" {
		id, err := t.backend.CreateSession(ctx, t.create)
		if err != nil {
			// Abandon the send entirely: no chat call, no floor wait.
			res.CreateFailed = true
			res.Err = err
			return res
		}
		res.SessionID = id
		res.SessionCreated = true
	}

	var reply *api.ChatReply
	var err error
	if t.Regenerate {
		reply, err = t.backend.Regenerate(ctx, res.SessionID)
	} else {
		reply, err = t.backend.SendMessage(ctx, res.SessionID, t.message, &t.settings)
	}

	if remaining := t.floor - t.clock.Now().Sub(start); remaining > 0 {
		t.clock.Sleep(remaining)
	}

	res.Reply = reply
	res.Err = err
	return res
}
