// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(c *Composer, s string) {
	for _, r := range s {
		if r == ' ' {
			c.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestComposer_InsertAtCaret(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.SetValue("olá")
	c.SetCaret(1)

	c.Insert("😀")

	assert.Equal(t, "o😀lá", c.Value())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 2, c.Caret())
}

func TestComposer_InsertIntoEmptyFlipsAffordance(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	require.Equal(t, AffordanceVoice, c.Affordance())

	c.Insert("👍")

	assert.Equal(t, 1, c.Caret())
	assert.Equal(t, AffordanceSend, c.Affordance())
	assert.Equal(t, "➤", c.Affordance().Glyph())
}

func TestComposer_WhitespaceIsEmpty(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.SetValue("  \n\t ")
	assert.True(t, c.IsEmpty())
	assert.Equal(t, AffordanceVoice, c.Affordance())
	assert.Equal(t, "🎤", c.Affordance().Glyph())
}

func TestComposer_SetCaretClamps(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.SetValue("abc")

	c.SetCaret(-5)
	assert.Equal(t, 0, c.Caret())
	c.SetCaret(50)
	assert.Equal(t, 3, c.Caret())
}

func TestComposer_NewlineChords(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}},
		{"ctrl+j", tea.KeyMsg{Type: tea.KeyCtrlJ}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposer(styles.NewTheme())
			typeText(c, "a")
			c.Update(tt.key)
			typeText(c, "b")

			assert.True(t, IsNewlineKey(tt.key))
			assert.False(t, IsSubmitKey(tt.key))
			assert.Equal(t, "a\nb", c.Value())
		})
	}
}

func TestComposer_EnterIsLeftToCaller(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	typeText(c, "oi")

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	c.Update(enter)

	assert.True(t, IsSubmitKey(enter))
	assert.False(t, IsNewlineKey(enter))
	assert.Equal(t, "oi", c.Value())
}

func TestComposer_Editing(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	typeText(c, "bom dia")
	assert.Equal(t, "bom dia", c.Value())

	c.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "bom di", c.Value())

	c.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, c.Caret())
	c.Update(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "om di", c.Value())

	c.Update(tea.KeyMsg{Type: tea.KeyRight})
	c.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, c.Caret())

	c.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 5, c.Caret())

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, "om ", c.Value())

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Caret())
}

func TestComposer_HomeEndStayOnLine(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.SetValue("ab\ncd")
	c.SetCaret(4)

	c.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 3, c.Caret())
	c.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, 5, c.Caret())
}

func TestComposer_PastedCRLFIsOneLineBreak(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb")})
	assert.Equal(t, "a\nb", c.Value())
	assert.Equal(t, 3, c.Caret())
}

func TestComposer_CaretAcrossLines(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.SetValue("um\ndois\ntrês")
	assert.Equal(t, 12, c.Caret())

	c.SetCaret(5)
	assert.Equal(t, 5, c.Caret())

	c.Insert("X")
	assert.Equal(t, "um\ndoXis\ntrês", c.Value())
	assert.Equal(t, 6, c.Caret())
}

func TestComposer_GrowsWithLines(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	assert.Equal(t, 1, c.Height())

	c.SetValue("1\n2\n3\n4\n5\n6\n7")
	assert.Equal(t, MaxComposerRows, c.Height())

	c.Clear()
	assert.Equal(t, 1, c.Height())
	assert.Equal(t, 0, c.Caret())
}

func TestComposer_BlurredIgnoresKeys(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	c.Blur()
	typeText(c, "x")
	assert.False(t, c.Focused())
	assert.Empty(t, c.Value())

	c.Focus()
	typeText(c, "x")
	assert.Equal(t, "x", c.Value())
}

func TestComposer_View(t *testing.T) {
	c := NewComposer(styles.NewTheme())
	assert.Contains(t, c.View(), "Digite uma mensagem")

	c.SetValue("linha 1\nlinha 2")
	view := c.View()
	assert.Contains(t, view, "linha 1")
	assert.Contains(t, view, "linha 2")
	assert.Equal(t, 2, c.Height())
}
