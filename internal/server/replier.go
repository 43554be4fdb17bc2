// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"fmt"
)

// ErrReplierUnavailable signals that the reply backend could not be reached.
// The handler answers 503 instead of 500.
var ErrReplierUnavailable = errors.New("reply backend unavailable")

// Replier produces the assistant's answer. messages starts with the system
// prompt, followed by the user's history ending with the new message.
type Replier interface {
	Reply(ctx context.Context, userID string, messages []Turn) (string, error)
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, userID string, messages []Turn) (string, error)

func (f ReplierFunc) Reply(ctx context.Context, userID string, messages []Turn) (string, error) {
	return f(ctx, userID, messages)
}

// EchoReplier acknowledges the last user message without generating
// anything.
type EchoReplier struct{}

func (EchoReplier) Reply(_ context.Context, userID string, messages []Turn) (string, error) {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			last = messages[i].Content
			break
		}
	}
	return fmt.Sprintf("Backend recebeu: '%s' (ID: %s). Resposta real da IA virá aqui.", last, userID), nil
}
