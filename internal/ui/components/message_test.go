// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func localAt(text string, hour, min int) model.Message {
	m := model.NewLocalMessage(text)
	m.SentAt = time.Date(2025, 3, 1, hour, min, 0, 0, time.Local)
	return m
}

func TestMessageBubble_LocalShowsTimeAndSingleCheck(t *testing.T) {
	b := NewMessageBubble(localAt("oi", 9, 5), styles.NewTheme())
	b.SetWidth(60)

	view := b.View()
	assert.Contains(t, view, "oi")
	assert.Contains(t, view, "09:05")
	assert.Contains(t, view, "✓")
	assert.NotContains(t, view, "✓✓")
}

func TestMessageBubble_DeliveredShowsDoubleCheck(t *testing.T) {
	msg := localAt("oi", 9, 5)
	msg.Delivery = model.Delivered

	view := NewMessageBubble(msg, styles.NewTheme()).View()
	assert.Contains(t, view, "✓✓")
}

func TestMessageBubble_RemoteHasNoCheck(t *testing.T) {
	view := NewMessageBubble(model.NewRemoteMessage("Olá!"), styles.NewTheme()).View()
	assert.Contains(t, view, "Olá!")
	assert.NotContains(t, view, "✓")
}

func TestMessageBubble_Alignment(t *testing.T) {
	theme := styles.NewTheme()

	local := NewMessageBubble(localAt("oi", 9, 5), theme)
	local.SetWidth(60)
	first := strings.Split(local.View(), "\n")[0]
	assert.True(t, strings.HasPrefix(first, " "), "local bubble should be pushed right: %q", first)

	remote := NewMessageBubble(model.NewRemoteMessage("oi"), theme)
	remote.SetWidth(60)
	first = strings.Split(remote.View(), "\n")[0]
	assert.False(t, strings.HasPrefix(first, " "), "remote bubble should start at the left edge: %q", first)
}

func TestMessageBubble_KeepsNewlines(t *testing.T) {
	view := NewMessageBubble(localAt("linha 1\nlinha 2", 10, 0), styles.NewTheme()).View()

	var one, two int
	for i, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "linha 1") {
			one = i
		}
		if strings.Contains(line, "linha 2") {
			two = i
		}
	}
	assert.Equal(t, one+1, two)
}

func TestMessageBubble_EmptyRendersNothing(t *testing.T) {
	msg := model.NewLocalMessage("   ")
	assert.Empty(t, NewMessageBubble(msg, styles.NewTheme()).View())
}

func TestMessageList(t *testing.T) {
	theme := styles.NewTheme()
	ml := NewMessageList(theme)
	ml.SetWidth(60)
	ml.EmptyText = "Nenhuma mensagem"

	assert.Contains(t, ml.View(), "Nenhuma mensagem")

	ml.SetMessages([]model.Message{localAt("primeira", 8, 0), model.NewRemoteMessage("segunda")})
	view := ml.View()
	assert.Less(t, strings.Index(view, "primeira"), strings.Index(view, "segunda"))
	assert.NotContains(t, view, "Nenhuma mensagem")
}
