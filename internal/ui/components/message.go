// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/jeranaias/clara-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	theme         *styles.Theme
}

// NewMessageBubble creates a new MessageBubble
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetWidth sets the width of the area the bubble is aligned in.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble: local messages hug the right edge, remote ones
// the left. An empty message renders nothing.
func (b *MessageBubble) View() string {
	if strings.TrimSpace(b.Message.Text) == "" {
		return ""
	}

	style := b.theme.RemoteBubble
	if b.Message.IsLocal() {
		style = b.theme.LocalBubble
	}

	// Border and padding take four columns.
	maxText := b.maxBubbleWidth() - 4
	if maxText < 1 {
		maxText = 1
	}
	lines := util.WrapText(b.Message.Text, maxText)

	footer := b.renderFooter()
	textWidth := maxLineWidth(lines)
	if fw := lipgloss.Width(footer); fw > textWidth && fw <= maxText {
		textWidth = fw
	}

	body := strings.Join(lines, "\n")
	if footer != "" {
		body += "\n" + lipgloss.PlaceHorizontal(textWidth, lipgloss.Right, footer)
	}

	bubble := style.Width(textWidth + 2).Render(body)

	align := lipgloss.Left
	if b.Message.IsLocal() {
		align = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(b.Width, align, bubble)
}

// renderFooter renders "HH:MM" and, for local messages, the delivery
// indicator.
func (b *MessageBubble) renderFooter() string {
	var parts []string
	if b.ShowTimestamp {
		parts = append(parts, b.theme.BubbleFooter.Render(b.Message.Clock()))
	}
	if b.Message.IsLocal() {
		check := b.theme.CheckSent
		if b.Message.Delivery == model.Delivered {
			check = b.theme.CheckRead
		}
		parts = append(parts, check.Render(b.Message.Delivery.Indicator()))
	}
	return strings.Join(parts, " ")
}

func (b *MessageBubble) maxBubbleWidth() int {
	w := b.Width * 3 / 4
	if w < 20 {
		w = 20
	}
	if b.Width > 0 && w > b.Width {
		w = b.Width
	}
	return w
}

func maxLineWidth(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := util.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders a whole transcript, one bubble per message.
type MessageList struct {
	Messages      []model.Message
	Width         int
	ShowTimestamp bool
	EmptyText     string
	theme         *styles.Theme
}

// NewMessageList creates a new MessageList
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
	}
}

// SetMessages replaces the rendered messages.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders every message, separated by a blank line.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		if ml.EmptyText == "" {
			return ""
		}
		return lipgloss.PlaceHorizontal(ml.Width, lipgloss.Center, ml.theme.Empty.Render(ml.EmptyText))
	}

	views := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)
		bubble.ShowTimestamp = ml.ShowTimestamp
		if v := bubble.View(); v != "" {
			views = append(views, v)
		}
	}
	return strings.Join(views, "\n\n")
}
