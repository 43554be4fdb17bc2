// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI pieces of the clara TUI, built on
Bubble Tea and Lip Gloss.

# Components

  - MessageBubble, MessageList (message.go) - Chat bubbles with time and delivery checks
  - Composer (composer.go) - Multi-line input with a caret and the send/voice affordance
  - EmojiPicker (emoji_picker.go) - Emoji grid with keyboard and mouse selection
  - Header (header.go) - Assistant name and online/typing status
  - Spinner (spinner.go) - Typing animation used by the header

Components take a *styles.Theme and render with View. Interactive ones
expose Update(tea.Msg) and return commands instead of touching the program.

# Geometry

EmojiPicker remembers where it was drawn (SetPosition) so the chat model
can hit-test mouse clicks against Bounds and CellAt.
*/
package components
