// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation.
//
// # Key Types
//
//   - Message: one chat bubble, local (typed here) or remote (the responder's reply)
//   - Transcript: the ordered, bounded list of messages on screen
//   - Handle: a reference to a transcript entry that goes stale when the entry is evicted
//   - Status: the shared "remote is composing" bit
//
// # Usage
//
//	tr := model.NewTranscript(0)
//	h, ok := tr.Append(model.NewLocalMessage("oi"))
//	...
//	tr.MarkDelivered(h) // false if h was cleared away meanwhile
package model
