// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/clara-tui/internal/model"
)

// Default bounds for the simulated read receipt.
const (
	DefaultReceiptMin = 1500 * time.Millisecond
	DefaultReceiptMax = 2500 * time.Millisecond
)

// transcriptRenderer appends pipeline output to the transcript and queues a
// receipt tick for every local message. Update drains the queued commands
// after each pipeline call.
type transcriptRenderer struct {
	transcript *model.Transcript
	rng        *rand.Rand
	minDelay   time.Duration
	maxDelay   time.Duration
	pending    []tea.Cmd

	// tick schedules the receipt; tea.Tick outside tests.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

func newTranscriptRenderer(t *model.Transcript, rng *rand.Rand, min, max time.Duration) *transcriptRenderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if min <= 0 || max <= min {
		min, max = DefaultReceiptMin, DefaultReceiptMax
	}
	return &transcriptRenderer{
		transcript: t,
		rng:        rng,
		minDelay:   min,
		maxDelay:   max,
		tick:       tea.Tick,
	}
}

// Render implements conversation.Renderer.
func (r *transcriptRenderer) Render(msg model.Message) {
	if _, cmd := r.Append(msg); cmd != nil {
		r.pending = append(r.pending, cmd)
	}
}

// Append adds msg to the transcript. Blank messages are dropped. Local
// messages get a one-shot receipt tick.
func (r *transcriptRenderer) Append(msg model.Message) (model.Handle, tea.Cmd) {
	if strings.TrimSpace(msg.Text) == "" {
		return model.Handle{}, nil
	}
	h, ok := r.transcript.Append(msg)
	if !ok {
		return model.Handle{}, nil
	}
	if !msg.IsLocal() {
		return h, nil
	}
	return h, r.tick(r.receiptDelay(), func(time.Time) tea.Msg {
		return receiptMsg{handle: h}
	})
}

// receiptDelay is uniform in [minDelay, maxDelay).
func (r *transcriptRenderer) receiptDelay() time.Duration {
	span := int64(r.maxDelay - r.minDelay)
	return r.minDelay + time.Duration(r.rng.Int63n(span))
}

// drain returns and forgets the queued commands.
func (r *transcriptRenderer) drain() []tea.Cmd {
	cmds := r.pending
	r.pending = nil
	return cmds
}
