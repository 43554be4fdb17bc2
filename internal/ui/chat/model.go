// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/ui/components"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
)

// Options configures a chat Model.
type Options struct {
	// Context bounds every outbound request. Defaults to context.Background.
	Context context.Context

	Identity conversation.IdentitySource
	Sender   conversation.Sender

	// Status and Transcript may be shared with other front ends. Nil
	// values are allocated.
	Status     *model.Status
	Transcript *model.Transcript

	AssistantName  string
	ShowTimestamps bool

	// Receipt delay bounds; zero values use the defaults.
	ReceiptMin time.Duration
	ReceiptMax time.Duration

	// Rand drives the receipt delay. Nil seeds from the clock.
	Rand *rand.Rand
}

// Model is the chat screen.
type Model struct {
	ctx   context.Context
	theme *styles.Theme
	keys  KeyMap

	transcript *model.Transcript
	status     *model.Status
	renderer   *transcriptRenderer
	pipeline   *conversation.Pipeline

	header   *components.Header
	list     *components.MessageList
	composer *components.Composer
	overlay  *OverlayManager
	viewport viewport.Model
	help     help.Model

	width  int
	height int
}

// New creates the chat model.
func New(theme *styles.Theme, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Transcript == nil {
		opts.Transcript = model.NewTranscript(model.DefaultMaxMessages)
	}
	if opts.Status == nil {
		opts.Status = &model.Status{}
	}

	renderer := newTranscriptRenderer(opts.Transcript, opts.Rand, opts.ReceiptMin, opts.ReceiptMax)

	header := components.NewHeader(theme, opts.AssistantName)

	list := components.NewMessageList(theme)
	list.ShowTimestamp = opts.ShowTimestamps
	list.EmptyText = fmt.Sprintf("Envie uma mensagem para %s", header.Title)

	m := Model{
		ctx:        opts.Context,
		theme:      theme,
		keys:       DefaultKeyMap(),
		transcript: opts.Transcript,
		status:     opts.Status,
		renderer:   renderer,
		pipeline:   conversation.New(opts.Identity, opts.Sender, renderer, opts.Status),
		header:     header,
		list:       list,
		composer:   components.NewComposer(theme),
		overlay:    NewOverlayManager(theme),
		viewport:   viewport.New(80, 20),
		help:       help.New(),
		width:      80,
		height:     24,
	}
	m.syncLayout()
	m.refresh(true)
	return m
}

// Transcript returns the conversation shown on screen.
func (m Model) Transcript() *model.Transcript {
	return m.transcript
}

// Composer returns the input.
func (m Model) Composer() *components.Composer {
	return m.composer
}

// Overlay returns the emoji picker manager.
func (m Model) Overlay() *OverlayManager {
	return m.overlay
}

// Status returns the shared composing flag.
func (m Model) Status() *model.Status {
	return m.status
}

// refresh re-renders the transcript into the viewport, optionally jumping
// to the newest message.
func (m *Model) refresh(bottom bool) {
	m.list.SetWidth(m.viewport.Width)
	m.list.SetMessages(m.transcript.Messages())
	m.viewport.SetContent(m.list.View())
	if bottom {
		m.viewport.GotoBottom()
	}
}
