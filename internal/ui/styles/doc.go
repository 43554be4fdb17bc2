// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the clara TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. NewThemeFor can force either half when the terminal guesses wrong.

# Color System (colors.go)

  - Teal - Brand color, header title, send button
  - Purple - Picker border and active toggle
  - Emerald - "online" indicator
  - Amber - "digitando..." indicator
  - ReadBlue - Double check mark on read messages

Bubbles use LocalBubble* (green) and RemoteBubble* (neutral) tokens.

# Theme (theme.go)

Theme groups the lipgloss styles per screen area: header, bubbles, input
bar and emoji picker.

	theme := styles.NewThemeFor(cfg.UI.Theme)
	theme.SetSize(width, height)
	bubble := theme.LocalBubble.Render(text)
*/
package styles
