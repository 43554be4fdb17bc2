// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/spf13/cobra"
)

// ErrNoQuestion is returned by ask when neither arguments nor stdin carry
// any text.
var ErrNoQuestion = errors.New("nothing to send: pass the message as arguments or on stdin")

func newAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [message...]",
		Short: "Send one message and print the reply",
		Long: `Send a single message to the responder and print the reply.

The message is taken from the arguments, or read from stdin when there
are none:

  clara ask "Quais são os sintomas da anemia?"
  echo "Olá" | clara ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" && !isTerminal(cmd.InOrStdin()) {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}
			return runAsk(cmd, text)
		},
	}
}

// replyRenderer keeps only the remote side of the exchange.
type replyRenderer struct {
	reply string
}

func (r *replyRenderer) Render(msg model.Message) {
	if !msg.IsLocal() {
		r.reply = msg.Text
	}
}

func runAsk(cmd *cobra.Command, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNoQuestion
	}

	a := newApp(config.Global())
	defer a.Close()

	r := &replyRenderer{}
	// A failed exchange still prints its warning as the reply and exits 0.
	_, out, _ := a.pipeline(r).Run(cmd.Context(), conversation.NewTextComposer(text))
	if !out.OK() {
		a.log.Warn().Err(out.Err).Msg("ask failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.reply)
	return nil
}
