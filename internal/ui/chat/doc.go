// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea model for the clara chat screen.
//
// Update is the only place state changes. Work that waits, such as the
// round trip to the responder, the read-receipt delay and arming the
// emoji picker's outside-click listener, is returned as tea.Cmd values
// whose results come back as messages:
//
//   - replyMsg settles a submission through the send pipeline
//   - receiptMsg marks a local message read, if it is still on screen
//   - armMsg arms the picker's click listener one tick after it opened
//
// # Files
//
//   - model.go: Model, Options and construction
//   - update.go: message, key and mouse handling
//   - view.go: layout and rendering
//   - overlay.go: OverlayManager for the emoji picker
//   - renderer.go: transcript renderer and receipt scheduling
//   - keys.go: KeyMap
package chat
