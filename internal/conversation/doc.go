// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation implements the send pipeline: taking what the user
// typed, echoing it immediately, asking the responder, and rendering the
// answer or an explanation of what went wrong.
//
// The pipeline does not know about terminals. Front ends supply a Renderer
// and a Composer and decide where the blocking Await runs: the TUI runs it
// inside a tea.Cmd, line mode calls Run directly.
//
// # Lifecycle
//
//	Idle -> Submitting -> AwaitingReply -> Settled -> Idle
//
// Submit covers Submitting (guard, echo, clear, composing on). Await is the
// single network exchange. Settle renders the reply and always turns the
// composing flag off. Submissions are independent: two can be in flight at
// once and their replies may settle in either order.
package conversation
