// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync/atomic"

// Header labels for the two states.
const (
	StatusOnline    = "online"
	StatusComposing = "digitando..."
)

// Status is the conversation-wide "remote is composing" flag. Only the send
// pipeline writes it. With overlapping submissions the last write wins, so
// the first reply to settle turns the indicator off even if another request
// is still in flight.
type Status struct {
	composing atomic.Bool
}

// SetRemoteComposing sets the flag.
func (s *Status) SetRemoteComposing(v bool) {
	s.composing.Store(v)
}

// RemoteComposing reports the flag.
func (s *Status) RemoteComposing() bool {
	return s.composing.Load()
}

// Label is the header text for the current state.
func (s *Status) Label() string {
	if s.RemoteComposing() {
		return StatusComposing
	}
	return StatusOnline
}
