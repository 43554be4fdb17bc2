// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the chat screen's keyboard bindings. Editing keys belong
// to the composer and are not listed here.
type KeyMap struct {
	Submit     key.Binding
	Newline    key.Binding
	Emoji      key.Binding
	Close      key.Binding
	PickerMove key.Binding
	PickerPick key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ClearInput key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "enviar"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "nova linha"),
		),
		Emoji: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "emoji"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "fechar"),
		),
		PickerMove: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("setas", "escolher"),
		),
		PickerPick: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "inserir"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "rolar"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "rolar"),
		),
		ClearInput: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "limpar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "sair"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Emoji, k.Quit}
}

// PickerHelp returns the bindings shown while the emoji picker is open.
func (k KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.PickerMove, k.PickerPick, k.Close}
}

// FullHelp returns every binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.ClearInput},
		{k.Emoji, k.PickerMove, k.PickerPick, k.Close},
		{k.PageUp, k.PageDown, k.Quit},
	}
}
