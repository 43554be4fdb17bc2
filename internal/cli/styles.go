// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
)

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// promptStyle renders the line-mode "você>" prompt.
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	// assistantStyle prefixes the responder's lines.
	assistantStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// welcomeStyle is the banner printed when chat starts.
	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Teal).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// dimStyle is used for timestamps and hints.
	dimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// readStyle colors the double check once a message is delivered.
	readStyle = lipgloss.NewStyle().
			Foreground(styles.ReadBlue)
)

// field renders "label value" on one line.
func field(label, value string) string {
	return labelStyle.Render(label) + " " + valueStyle.Render(value)
}
