// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/jeranaias/clara-tui/internal/util"
)

// DefaultEmojis is the picker's palette. Every entry is two columns wide so
// the grid stays aligned.
var DefaultEmojis = []string{
	"😀", "😂", "😊", "😍", "🥰", "😉",
	"😎", "🤔", "😢", "😭", "😡", "😴",
	"👍", "👎", "👏", "🙏", "💪", "👋",
	"💖", "💔", "🎉", "🔥", "🌸", "🌈",
}

const (
	pickerColumns = 6
	// Each cell is the emoji plus one column of padding per side.
	pickerCellWidth = 4
	pickerHint      = "tab inserir · esc fechar"
)

// EmojiSelectedMsg is emitted when the user picks an emoji.
type EmojiSelectedMsg struct {
	Emoji string
}

// Rect is a screen region in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// =============================================================================
// EMOJI PICKER
// =============================================================================

// EmojiPicker is a grid of emojis with a highlighted cell. It knows where
// it was drawn so mouse clicks can be mapped back to cells.
type EmojiPicker struct {
	emojis   []string
	columns  int
	selected int
	x, y     int
	theme    *styles.Theme
}

// NewEmojiPicker creates a picker over DefaultEmojis.
func NewEmojiPicker(theme *styles.Theme) *EmojiPicker {
	return &EmojiPicker{
		emojis:  DefaultEmojis,
		columns: pickerColumns,
		theme:   theme,
	}
}

// Emojis returns the palette.
func (p *EmojiPicker) Emojis() []string {
	return p.emojis
}

// Selected returns the index of the highlighted cell.
func (p *EmojiPicker) Selected() int {
	return p.selected
}

// SelectedEmoji returns the highlighted emoji.
func (p *EmojiPicker) SelectedEmoji() string {
	if len(p.emojis) == 0 {
		return ""
	}
	return p.emojis[p.selected]
}

// SetPosition records the top-left corner the picker is drawn at.
func (p *EmojiPicker) SetPosition(x, y int) {
	p.x, p.y = x, y
}

func (p *EmojiPicker) rows() int {
	return (len(p.emojis) + p.columns - 1) / p.columns
}

// Size returns the rendered width and height, border included.
func (p *EmojiPicker) Size() (width, height int) {
	// One row per grid line, one hint line, two border lines.
	return p.columns*pickerCellWidth + 2, p.rows() + 3
}

// Bounds returns the screen region the picker covers.
func (p *EmojiPicker) Bounds() Rect {
	w, h := p.Size()
	return Rect{X: p.x, Y: p.y, Width: w, Height: h}
}

// CellAt maps a screen position to a palette index.
func (p *EmojiPicker) CellAt(x, y int) (int, bool) {
	col := (x - p.x - 1) / pickerCellWidth
	row := y - p.y - 1
	if x-p.x-1 < 0 || col >= p.columns || row < 0 || row >= p.rows() {
		return 0, false
	}
	i := row*p.columns + col
	if i >= len(p.emojis) {
		return 0, false
	}
	return i, true
}

// Move shifts the highlight by dx columns and dy rows, clamped to the grid.
func (p *EmojiPicker) Move(dx, dy int) {
	if len(p.emojis) == 0 {
		return
	}
	i := p.selected + dx + dy*p.columns
	if i < 0 {
		i = 0
	}
	if i >= len(p.emojis) {
		i = len(p.emojis) - 1
	}
	p.selected = i
}

// Choose emits the highlighted emoji.
func (p *EmojiPicker) Choose() tea.Cmd {
	emoji := p.SelectedEmoji()
	if emoji == "" {
		return nil
	}
	return func() tea.Msg {
		return EmojiSelectedMsg{Emoji: emoji}
	}
}

// Click highlights and emits the emoji under (x, y). Clicks on the border
// or the hint line return nil.
func (p *EmojiPicker) Click(x, y int) tea.Cmd {
	i, ok := p.CellAt(x, y)
	if !ok {
		return nil
	}
	p.selected = i
	return p.Choose()
}

// Update handles navigation and selection keys.
func (p *EmojiPicker) Update(msg tea.Msg) (*EmojiPicker, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.Type {
	case tea.KeyLeft:
		p.Move(-1, 0)
	case tea.KeyRight:
		p.Move(1, 0)
	case tea.KeyUp:
		p.Move(0, -1)
	case tea.KeyDown:
		p.Move(0, 1)
	case tea.KeyTab:
		return p, p.Choose()
	}
	return p, nil
}

// View renders the grid.
func (p *EmojiPicker) View() string {
	inner := p.columns * pickerCellWidth

	var rows []string
	for r := 0; r < p.rows(); r++ {
		var sb strings.Builder
		for c := 0; c < p.columns; c++ {
			i := r*p.columns + c
			if i >= len(p.emojis) {
				sb.WriteString(strings.Repeat(" ", pickerCellWidth))
				continue
			}
			style := p.theme.PickerCell
			if i == p.selected {
				style = p.theme.PickerSelected
			}
			sb.WriteString(style.Render(p.emojis[i]))
		}
		rows = append(rows, sb.String())
	}

	hint := util.TruncateWidth(pickerHint, inner)
	rows = append(rows, p.theme.PickerHint.Width(inner).Render(hint))

	return p.theme.Picker.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
