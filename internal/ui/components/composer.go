// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/jeranaias/clara-tui/internal/util"
)

// =============================================================================
// AFFORDANCE
// =============================================================================

// Affordance is the action offered next to the composer.
type Affordance int

const (
	// AffordanceVoice is shown while the composer is empty. It is only a glyph.
	AffordanceVoice Affordance = iota
	// AffordanceSend is shown once there is something to send.
	AffordanceSend
)

// Glyph returns the button label for the affordance.
func (a Affordance) Glyph() string {
	if a == AffordanceSend {
		return "➤"
	}
	return "🎤"
}

func (a Affordance) String() string {
	if a == AffordanceSend {
		return "send"
	}
	return "voice"
}

// =============================================================================
// COMPOSER
// =============================================================================

// MaxComposerRows caps how tall the composer grows before it scrolls.
const MaxComposerRows = 5

// newlineKeys insert a line break. Most terminals cannot tell Shift+Enter
// from Enter, so Alt+Enter and Ctrl+J are the ones that work in practice.
var newlineKeys = key.NewBinding(key.WithKeys("alt+enter", "shift+enter", "ctrl+j"))

// Composer is the message input: a textarea that grows with its content.
// Plain Enter is left to the caller so it can mean "submit"; the newline
// chords insert a line break instead.
type Composer struct {
	input textarea.Model

	Placeholder string
	Width       int

	theme *styles.Theme
}

// NewComposer creates a focused, empty composer.
func NewComposer(theme *styles.Theme) *Composer {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.EndOfBufferCharacter = ' '
	ta.KeyMap.InsertNewline = newlineKeys

	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  theme.InputText,
		Text:        theme.InputText,
		Placeholder: theme.InputPlaceholder,
	}
	ta.BlurredStyle = ta.FocusedStyle
	ta.Cursor.Style = theme.Cursor
	ta.Cursor.SetMode(cursor.CursorStatic)

	c := &Composer{
		input:       ta,
		Placeholder: "Digite uma mensagem",
		Width:       60,
		theme:       theme,
	}
	c.input.Focus()
	c.resize()
	return c
}

// IsNewlineKey reports whether msg is one of the chords that insert a line
// break.
func IsNewlineKey(msg tea.KeyMsg) bool {
	return key.Matches(msg, newlineKeys)
}

// IsSubmitKey reports whether msg is a plain Enter.
func IsSubmitKey(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter && !msg.Alt
}

// Value returns the full text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the text and moves the caret to the end.
func (c *Composer) SetValue(s string) {
	c.input.SetValue(normalizeNewlines(s))
	c.resize()
}

// Caret returns the caret position as a rune index into Value.
func (c *Composer) Caret() int {
	lines := strings.Split(c.input.Value(), "\n")
	row := c.input.Line()

	pos := 0
	for i := 0; i < row && i < len(lines); i++ {
		pos += utf8.RuneCountInString(lines[i]) + 1
	}
	li := c.input.LineInfo()
	return pos + li.StartColumn + li.ColumnOffset
}

// SetCaret moves the caret, clamped to the text.
func (c *Composer) SetCaret(p int) {
	text := []rune(c.input.Value())
	if p < 0 {
		p = 0
	}
	if p > len(text) {
		p = len(text)
	}

	row, col := 0, 0
	for _, r := range text[:p] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}

	// The textarea only moves between rows through its cursor, so walk up
	// from the end. Each step moves at least one visual line.
	c.input.SetValue(string(text))
	for steps := len(text) + 1; c.input.Line() > row && steps > 0; steps-- {
		c.input.CursorUp()
	}
	c.input.SetCursor(col)
}

// Len returns the text length in runes.
func (c *Composer) Len() int {
	return utf8.RuneCountInString(c.input.Value())
}

// Clear empties the composer.
func (c *Composer) Clear() {
	c.input.Reset()
	c.resize()
}

// IsEmpty reports whether the text is blank once trimmed.
func (c *Composer) IsEmpty() bool {
	return strings.TrimSpace(c.input.Value()) == ""
}

// Affordance returns Send when there is text, Voice otherwise.
func (c *Composer) Affordance() Affordance {
	if c.IsEmpty() {
		return AffordanceVoice
	}
	return AffordanceSend
}

// Insert puts s at the caret and moves the caret past it.
func (c *Composer) Insert(s string) {
	if s == "" {
		return
	}
	c.input.InsertString(normalizeNewlines(s))
	c.resize()
}

// Focus gives the composer keyboard focus.
func (c *Composer) Focus() {
	c.input.Focus()
}

// Blur removes keyboard focus.
func (c *Composer) Blur() {
	c.input.Blur()
}

// Focused reports whether the composer has focus.
func (c *Composer) Focused() bool {
	return c.input.Focused()
}

// SetWidth sets the text area width.
func (c *Composer) SetWidth(width int) {
	c.Width = width
	c.resize()
}

// =============================================================================
// EDITING
// =============================================================================

// Update applies an editing key. Plain Enter is ignored.
func (c *Composer) Update(msg tea.Msg) (*Composer, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if IsSubmitKey(k) {
			return c, nil
		}
		// Pasted CRLF would otherwise become two line breaks.
		if k.Type == tea.KeyRunes && strings.ContainsRune(string(k.Runes), '\r') {
			if c.input.Focused() {
				c.Insert(string(k.Runes))
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.resize()
	return c, cmd
}

// resize fits the textarea to Width and grows it to the wrapped content,
// up to MaxComposerRows.
func (c *Composer) resize() {
	width := c.Width
	if width < 2 {
		width = 2
	}
	c.input.SetWidth(width)

	rows := 0
	for _, line := range strings.Split(c.input.Value(), "\n") {
		w := util.StringWidth(line)
		if w == 0 {
			rows++
			continue
		}
		rows += (w + width - 1) / width
	}
	if rows < 1 {
		rows = 1
	}
	if rows > MaxComposerRows {
		rows = MaxComposerRows
	}
	c.input.SetHeight(rows)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the text with the caret, or the placeholder when empty.
func (c *Composer) View() string {
	c.input.Placeholder = c.Placeholder
	return c.input.View()
}

// Height returns the number of terminal rows View occupies.
func (c *Composer) Height() int {
	return c.input.Height()
}
