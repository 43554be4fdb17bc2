// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	StatusOnline lipgloss.Style
	StatusTyping lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	LocalBubble  lipgloss.Style
	RemoteBubble lipgloss.Style
	BubbleFooter lipgloss.Style
	CheckSent    lipgloss.Style
	CheckRead    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputFocused     lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	Cursor           lipgloss.Style
	ToggleButton     lipgloss.Style
	ToggleActive     lipgloss.Style
	SendButton       lipgloss.Style
	VoiceButton      lipgloss.Style

	// ==========================================================================
	// EMOJI PICKER STYLES
	// ==========================================================================

	Picker         lipgloss.Style
	PickerCell     lipgloss.Style
	PickerSelected lipgloss.Style
	PickerHint     lipgloss.Style

	// ==========================================================================
	// MISC
	// ==========================================================================

	Hint  lipgloss.Style
	Empty lipgloss.Style
}

// NewTheme creates a new theme with all styles configured, following the
// terminal's own background.
func NewTheme() *Theme {
	return NewThemeFor("auto")
}

// NewThemeFor creates a theme for mode: "dark", "light" or "auto".
// Forcing a mode also tells lipgloss which half of each AdaptiveColor to use.
func NewThemeFor(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// DisableColor strips colors from every style rendered through lipgloss's
// default renderer.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.StatusOnline = lipgloss.NewStyle().
		Foreground(Emerald)

	t.StatusTyping = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Message bubbles
	t.LocalBubble = lipgloss.NewStyle().
		Foreground(LocalBubbleFg).
		Background(LocalBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(LocalBubbleBorder).
		Padding(0, 1)

	t.RemoteBubble = lipgloss.NewStyle().
		Foreground(RemoteBubbleFg).
		Background(RemoteBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(RemoteBubbleBorder).
		Padding(0, 1)

	t.BubbleFooter = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CheckSent = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CheckRead = lipgloss.NewStyle().
		Foreground(ReadBlue).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.InputFocused = t.InputContainer.
		BorderForeground(FocusRing)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Cursor = lipgloss.NewStyle().
		Reverse(true)

	t.ToggleButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ToggleActive = t.ToggleButton.
		Foreground(Purple).
		Bold(true)

	t.SendButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 1)

	t.VoiceButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	// Emoji picker
	t.Picker = lipgloss.NewStyle().
		Background(SurfaceBright).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple)

	t.PickerCell = lipgloss.NewStyle().
		Padding(0, 1)

	t.PickerSelected = t.PickerCell.
		Background(SelectionBg)

	t.PickerHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Misc
	t.Hint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
