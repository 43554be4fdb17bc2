// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/ui/components"
)

const (
	toggleGlyph = "☺"
	// Send and voice glyphs differ in width; the slot fits both.
	affordanceSlot = 4
	// Columns between the screen edge and the picker.
	pickerMargin = 1
)

// =============================================================================
// LAYOUT
// =============================================================================

// layout is where each part of the screen goes, top to bottom:
// header, transcript, picker (when open), input bar, help line.
type layout struct {
	headerHeight   int
	viewportHeight int
	pickerY        int
	pickerHeight   int
	inputY         int
	composerWidth  int
	toggle         components.Rect
}

func (m Model) layout() layout {
	l := layout{headerHeight: m.header.Height()}

	if p := m.overlay.Picker(); p != nil {
		_, l.pickerHeight = p.Size()
	}

	toggleWidth := lipgloss.Width(m.theme.ToggleButton.Render(toggleGlyph))

	// Border and padding of the input bar take four columns.
	l.composerWidth = m.width - 4 - toggleWidth - affordanceSlot
	if l.composerWidth < 1 {
		l.composerWidth = 1
	}

	// Input bar: composer lines plus two border rows.
	inputHeight := m.composer.Height() + 2
	const helpHeight = 1

	l.viewportHeight = m.height - l.headerHeight - l.pickerHeight - inputHeight - helpHeight
	if l.viewportHeight < 1 {
		l.viewportHeight = 1
	}

	l.pickerY = l.headerHeight + l.viewportHeight
	l.inputY = l.pickerY + l.pickerHeight
	l.toggle = components.Rect{
		X:      2,
		Y:      l.inputY + 1,
		Width:  toggleWidth,
		Height: inputHeight - 2,
	}
	return l
}

// syncLayout pushes the current geometry into the sub-components.
func (m *Model) syncLayout() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width

	l := m.layout()
	m.composer.SetWidth(l.composerWidth)
	// The composer's height depends on its width.
	l = m.layout()

	atBottom := m.viewport.AtBottom()
	if m.viewport.Width != m.width || m.viewport.Height != l.viewportHeight {
		m.viewport.Width = m.width
		m.viewport.Height = l.viewportHeight
		m.refresh(atBottom)
	}

	if p := m.overlay.Picker(); p != nil {
		p.SetPosition(pickerMargin, l.pickerY)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	parts := []string{
		m.header.View(),
		m.viewport.View(),
	}

	if p := m.overlay.Picker(); p != nil {
		parts = append(parts, lipgloss.NewStyle().MarginLeft(pickerMargin).Render(p.View()))
	}

	parts = append(parts, m.renderInputBar(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderInputBar() string {
	toggle := m.theme.ToggleButton
	if m.overlay.IsOpen() {
		toggle = m.theme.ToggleActive
	}

	button := m.theme.VoiceButton
	if m.composer.Affordance() == components.AffordanceSend {
		button = m.theme.SendButton
	}
	affordance := lipgloss.PlaceHorizontal(affordanceSlot, lipgloss.Right,
		button.Render(m.composer.Affordance().Glyph()))

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		toggle.Render(toggleGlyph),
		m.composer.View(),
		affordance,
	)

	container := m.theme.InputContainer
	if m.composer.Focused() {
		container = m.theme.InputFocused
	}
	return container.Render(row)
}

func (m Model) renderHelp() string {
	bindings := m.keys.ShortHelp()
	if m.overlay.IsOpen() {
		bindings = m.keys.PickerHelp()
	}
	return m.help.ShortHelpView(bindings)
}
