// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import "sync"

// DefaultHistoryLimit is the number of turns kept per user.
const DefaultHistoryLimit = 20

// Role of a history turn.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of a user's conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History keeps a bounded list of turns per user id. The oldest turn is
// dropped when a new one would exceed the limit. Safe for concurrent use.
type History struct {
	mu    sync.Mutex
	limit int
	turns map[string][]Turn
}

// NewHistory creates a history keeping at most limit turns per user.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit, turns: make(map[string][]Turn)}
}

// Append records a turn for userID.
func (h *History) Append(userID string, t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.turns[userID]
	for len(turns) >= h.limit {
		turns = turns[1:]
	}
	// Copy so the dropped prefix can be collected.
	next := make([]Turn, len(turns), len(turns)+1)
	copy(next, turns)
	h.turns[userID] = append(next, t)
}

// Turns returns a copy of userID's history, oldest first.
func (h *History) Turns(userID string) []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Turn(nil), h.turns[userID]...)
}

// Len returns the number of turns stored for userID.
func (h *History) Len(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns[userID])
}

// Reset forgets userID's history.
func (h *History) Reset(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.turns, userID)
}
