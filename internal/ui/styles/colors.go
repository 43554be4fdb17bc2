// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Teal - Brand color, header, send affordance
var Teal = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}

// TealDeep - Darker teal for backgrounds
var TealDeep = lipgloss.AdaptiveColor{Light: "#115E59", Dark: "#134E4A"}

// Purple - Assistant name, picker highlight
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - Online indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, composing indicator
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// ReadBlue - Double check mark once a message has been read
var ReadBlue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#53BDEB"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header and input bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// SurfaceBright - Overlay background
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// OverlayDim - Dimmer borders
var OverlayDim = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, the single check mark
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// Local message bubble - green tones
var LocalBubbleBg = lipgloss.AdaptiveColor{Light: "#DCF8C6", Dark: "#005C4B"}
var LocalBubbleFg = lipgloss.AdaptiveColor{Light: "#111B21", Dark: "#E9EDEF"}
var LocalBubbleBorder = lipgloss.AdaptiveColor{Light: "#86EFAC", Dark: "#00A884"}

// Remote message bubble - neutral tones
var RemoteBubbleBg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#202C33"}
var RemoteBubbleFg = lipgloss.AdaptiveColor{Light: "#111B21", Dark: "#E9EDEF"}
var RemoteBubbleBorder = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3B4A54"}

// =============================================================================
// INTERACTIVE ELEMENTS
// =============================================================================

// FocusRing - Focused input border
var FocusRing = Teal

// SelectionBg - Highlighted picker cell
var SelectionBg = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#4C1D95"}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderError renders an error line with a text prefix, so it reads
// without color as well.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Render("[ERR] " + message)
}

// RenderWarning renders a warning line.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Render("[!] " + message)
}

// RenderInfo renders an informational line.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(Teal).Render("[i] " + message)
}
