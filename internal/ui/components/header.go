// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/jeranaias/clara-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: the assistant's name and whether it is online
// or composing a reply.
type Header struct {
	Title     string
	Width     int
	composing bool
	spinner   Spinner
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme, title string) *Header {
	if title == "" {
		title = "Clara"
	}
	return &Header{
		Title:   title,
		Width:   80,
		spinner: NewSpinner(),
		theme:   theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetComposing switches the status line. Turning it on starts the spinner
// and returns its first tick.
func (h *Header) SetComposing(composing bool) tea.Cmd {
	h.composing = composing
	if composing {
		return h.spinner.Start()
	}
	h.spinner.Stop()
	return nil
}

// Composing reports whether the header shows the typing status.
func (h *Header) Composing() bool {
	return h.composing
}

// StatusLabel is the status text without styling.
func (h *Header) StatusLabel() string {
	if h.composing {
		return model.StatusComposing
	}
	return model.StatusOnline
}

// Update forwards spinner ticks.
func (h *Header) Update(msg tea.Msg) (*Header, tea.Cmd) {
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	return h, cmd
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}

	title := h.theme.HeaderTitle.Render(h.Title)

	var status string
	if h.composing {
		status = h.theme.StatusTyping.Render(h.StatusLabel() + " " + h.spinner.View())
	} else {
		status = h.theme.StatusOnline.Render("● " + h.StatusLabel())
	}

	// Padding takes two columns.
	inner := width - 2
	gap := inner - lipgloss.Width(title) - lipgloss.Width(status)
	line := title + "  " + status
	if gap >= 2 {
		line = lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), status)
	} else if util.StringWidth(h.Title) > inner {
		line = h.theme.HeaderTitle.Render(util.TruncateWidth(h.Title, inner))
	}

	return h.theme.Header.Width(width).Render(line)
}

// Height returns the rows the header occupies.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}
