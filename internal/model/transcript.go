// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"sync"
)

// DefaultMaxMessages bounds the transcript when no limit is given.
const DefaultMaxMessages = 1000

// Handle refers to one transcript entry. It stays valid while the entry is
// on screen. After the entry is evicted or the transcript is cleared the
// handle is dead, and operations through it become no-ops.
type Handle struct {
	ID  string
	gen uint64
}

// IsZero reports whether h was never issued by a transcript.
func (h Handle) IsZero() bool {
	return h.ID == ""
}

// Transcript is the ordered list of messages in the conversation. Entries are
// appended at the end and evicted from the front once MaxMessages is reached.
// Safe for concurrent use.
type Transcript struct {
	mu      sync.RWMutex
	entries []*Message
	byID    map[string]*Message
	gen     uint64
	max     int
}

// NewTranscript returns an empty transcript holding at most max messages
// (DefaultMaxMessages when max <= 0).
func NewTranscript(max int) *Transcript {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &Transcript{
		byID: make(map[string]*Message),
		max:  max,
	}
}

// Append adds msg at the end. Messages whose text is blank after trimming
// are ignored and ok is false.
func (t *Transcript) Append(msg Message) (h Handle, ok bool) {
	if strings.TrimSpace(msg.Text) == "" {
		return Handle{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.max {
		oldest := t.entries[0]
		t.entries[0] = nil
		t.entries = t.entries[1:]
		delete(t.byID, oldest.ID)
	}

	m := msg
	t.entries = append(t.entries, &m)
	t.byID[m.ID] = &m
	return Handle{ID: m.ID, gen: t.gen}, true
}

// MarkDelivered moves the entry behind h from Sent to Delivered. It returns
// true only for the single call that performs the transition. Dead handles,
// remote messages and already delivered messages are left alone.
func (t *Transcript) MarkDelivered(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.lookup(h)
	if m == nil || m.Sender != Local || m.Delivery == Delivered {
		return false
	}
	m.Delivery = Delivered
	return true
}

// IsLive reports whether h still refers to an entry in the transcript.
func (t *Transcript) IsLive(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lookup(h) != nil
}

// Get returns a copy of the entry behind h.
func (t *Transcript) Get(h Handle) (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m := t.lookup(h)
	if m == nil {
		return Message{}, false
	}
	return *m, true
}

// Messages returns a snapshot of every entry in order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.entries))
	for i, m := range t.entries {
		out[i] = *m
	}
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Clear removes every entry. Handles issued before Clear are dead even if
// an entry with the same ID shows up again later.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
	t.byID = make(map[string]*Message)
	t.gen++
}

// lookup must be called with t.mu held.
func (t *Transcript) lookup(h Handle) *Message {
	if h.IsZero() || h.gen != t.gen {
		return nil
	}
	return t.byID[h.ID]
}
