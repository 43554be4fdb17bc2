// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER
// =============================================================================

// Sender identifies who authored a message.
type Sender int

const (
	// Local messages were typed in this client.
	Local Sender = iota
	// Remote messages came back from the responder.
	Remote
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	switch s {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "unknown"
	}
}

// =============================================================================
// DELIVERY STATE
// =============================================================================

// DeliveryState is the simulated receipt status of a local message.
type DeliveryState int

const (
	// Sent renders as a single check mark.
	Sent DeliveryState = iota
	// Delivered (read) renders as a double check mark.
	Delivered
)

// String returns the string representation of the state.
func (d DeliveryState) String() string {
	if d == Delivered {
		return "delivered"
	}
	return "sent"
}

// Indicator returns the glyph shown next to the timestamp.
func (d DeliveryState) Indicator() string {
	if d == Delivered {
		return "✓✓"
	}
	return "✓"
}

// =============================================================================
// MESSAGE
// =============================================================================

// TimeFormat is the 24h clock used in bubble footers.
const TimeFormat = "15:04"

// Message is a single chat bubble. Once appended to a Transcript only
// Delivery ever changes.
type Message struct {
	ID     string
	Sender Sender
	Text   string
	SentAt time.Time

	// Delivery is meaningful for Local messages only.
	Delivery DeliveryState
}

// NewLocalMessage creates a message authored by the user, in the Sent state.
func NewLocalMessage(text string) Message {
	return newMessage(Local, text)
}

// NewRemoteMessage creates a message authored by the responder.
func NewRemoteMessage(text string) Message {
	return newMessage(Remote, text)
}

func newMessage(sender Sender, text string) Message {
	return Message{
		ID:       uuid.NewString(),
		Sender:   sender,
		Text:     text,
		SentAt:   time.Now(),
		Delivery: Sent,
	}
}

// IsLocal reports whether the user authored the message.
func (m Message) IsLocal() bool {
	return m.Sender == Local
}

// Clock returns SentAt formatted as HH:MM.
func (m Message) Clock() string {
	return m.SentAt.Format(TimeFormat)
}
