// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/ui/components"
)

// ClearCommand typed into the composer wipes the transcript.
const ClearCommand = "/clear"

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncLayout()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case replyMsg:
		return m.handleReply(msg)

	case receiptMsg:
		if m.transcript.MarkDelivered(msg.handle) {
			m.refresh(false)
		}
		return m, nil

	case armMsg:
		m.overlay.Arm(msg)
		return m, nil

	case components.EmojiSelectedMsg:
		if !m.overlay.IsOpen() {
			return m, nil
		}
		m.composer.Insert(msg.Emoji)
		m.composer.Focus()
		return m, nil
	}

	// Spinner ticks and anything else the header animates on.
	var cmd tea.Cmd
	m.header, cmd = m.header.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Emoji):
		return m, m.overlay.Toggle()

	case m.overlay.IsOpen() && key.Matches(msg, m.keys.Close):
		m.overlay.Close()
		return m, nil

	case m.overlay.IsOpen() && (key.Matches(msg, m.keys.PickerMove) || key.Matches(msg, m.keys.PickerPick)):
		_, cmd := m.overlay.Picker().Update(msg)
		return m, cmd

	case components.IsSubmitKey(msg):
		return m.submit()

	case key.Matches(msg, m.keys.ClearInput):
		m.composer.Clear()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	_, cmd := m.composer.Update(msg)
	return m, cmd
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)
	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
	case tea.MouseLeft:
		return m.handlePress(msg.X, msg.Y)
	}
	return m, nil
}

// handlePress routes a left press. The outside-click listener sees it
// first, then the toggle button, then the picker's cells.
func (m Model) handlePress(x, y int) (Model, tea.Cmd) {
	l := m.layout()

	if m.overlay.HandlePress(x, y, l.toggle) == ClickDismissed {
		return m, nil
	}

	if l.toggle.Contains(x, y) {
		return m, m.overlay.Toggle()
	}

	if p := m.overlay.Picker(); p != nil && p.Bounds().Contains(x, y) {
		return m, p.Click(x, y)
	}
	return m, nil
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

func (m Model) submit() (Model, tea.Cmd) {
	if strings.TrimSpace(m.composer.Value()) == ClearCommand {
		m.transcript.Clear()
		m.composer.Clear()
		m.refresh(true)
		return m, nil
	}

	s, ok := m.pipeline.Submit(m.ctx, m.composer)
	if !ok {
		return m, nil
	}
	m.refresh(true)

	ctx := m.ctx
	cmds := m.renderer.drain()
	cmds = append(cmds,
		m.header.SetComposing(m.status.RemoteComposing()),
		func() tea.Msg {
			return replyMsg{submission: s, outcome: s.Await(ctx)}
		},
	)
	return m, tea.Batch(cmds...)
}

func (m Model) handleReply(msg replyMsg) (Model, tea.Cmd) {
	m.pipeline.Settle(msg.submission, msg.outcome)
	m.refresh(true)

	cmds := m.renderer.drain()
	cmds = append(cmds, m.header.SetComposing(m.status.RemoteComposing()))
	return m, tea.Batch(cmds...)
}

// Compile-time check that the renderer satisfies the pipeline.
var _ conversation.Renderer = (*transcriptRenderer)(nil)
