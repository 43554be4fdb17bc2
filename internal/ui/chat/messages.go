// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/model"
)

// =============================================================================
// PIPELINE MESSAGES
// =============================================================================

// replyMsg carries the outcome of one submission back to Update.
type replyMsg struct {
	submission *conversation.Submission
	outcome    conversation.Outcome
}

// receiptMsg fires when a local message's read receipt is due.
type receiptMsg struct {
	handle model.Handle
}

// =============================================================================
// OVERLAY MESSAGES
// =============================================================================

// armMsg arms the outside-click listener one tick after the picker opened.
type armMsg struct {
	generation int
}
