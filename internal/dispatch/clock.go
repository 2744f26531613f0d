// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import "time"

// Clock abstracts wall-clock reads and sleeping so the typing-indicator
// floor can be tested without real timers.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// systemClock is the real clock used outside tests.
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock {
	return systemClock{}
}
