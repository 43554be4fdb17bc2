// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat for terminals where the full-screen UI is not
// wanted (or stdout is not a terminal at all).
//
// Interactive Commands (during chat):
//   /clear              Clear the conversation
//   /quit, /q           Exit chat
//   Ctrl+C, Ctrl+D      Exit chat

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/ui/chat"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode with prompt history",
		Long: `Chat with the assistant one line at a time.

Interactive commands:
  /clear   clear the conversation
  /quit    exit (Ctrl+C and Ctrl+D work too)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd)
		},
	}
}

// =============================================================================
// INPUT
// =============================================================================

// lineReader yields one line of user input per call. io.EOF ends the chat.
type lineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI and loads the saved prompt history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	c := &ChatCLI{line: line, historyFile: historyFile}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if c.historyFile == "" {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Ctrl+C is
// reported as io.EOF.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if c.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// plainReader reads lines from a non-terminal input. The prompt is still
// written so transcripts of piped sessions read naturally.
type plainReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPlainReader(in io.Reader, out io.Writer) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *plainReader) ReadInput(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *plainReader) Close() {}

// =============================================================================
// OUTPUT
// =============================================================================

// lineRenderer prints every message as it is rendered and schedules the
// read receipt for local ones. A receipt is printed as its own line since
// a terminal line cannot be recolored once written.
type lineRenderer struct {
	mu         sync.Mutex
	out        io.Writer
	transcript *model.Transcript
	assistant  string
	rng        *rand.Rand
	minDelay   time.Duration
	maxDelay   time.Duration
	timers     []*time.Timer

	// after schedules the receipt; time.AfterFunc outside tests.
	after func(time.Duration, func()) *time.Timer
}

func newLineRenderer(out io.Writer, t *model.Transcript, assistant string, minDelay, maxDelay time.Duration) *lineRenderer {
	if minDelay <= 0 || maxDelay <= minDelay {
		minDelay, maxDelay = chat.DefaultReceiptMin, chat.DefaultReceiptMax
	}
	return &lineRenderer{
		out:        out,
		transcript: t,
		assistant:  assistant,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		after:      time.AfterFunc,
	}
}

// Render implements conversation.Renderer.
func (r *lineRenderer) Render(msg model.Message) {
	if strings.TrimSpace(msg.Text) == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.transcript.Append(msg)
	if !ok {
		return
	}

	if msg.IsLocal() {
		fmt.Fprintf(r.out, "%s %s\n", dimStyle.Render(msg.Clock()), dimStyle.Render(msg.Delivery.Indicator()))
		delay := r.minDelay + time.Duration(r.rng.Int63n(int64(r.maxDelay-r.minDelay)))
		r.timers = append(r.timers, r.after(delay, func() { r.deliver(h) }))
		return
	}

	fmt.Fprintf(r.out, "%s %s\n%s\n",
		assistantStyle.Render(r.assistant+">"),
		dimStyle.Render(msg.Clock()),
		msg.Text)
}

// deliver marks h delivered and prints the receipt. Nothing is printed
// for a message that was cleared in the meantime.
func (r *lineRenderer) deliver(h model.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.transcript.MarkDelivered(h) {
		return
	}
	fmt.Fprintln(r.out, readStyle.Render(model.Delivered.Indicator()+" lida"))
}

// Stop cancels pending receipts.
func (r *lineRenderer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

// =============================================================================
// REPL
// =============================================================================

func runChat(cmd *cobra.Command) error {
	cfg := config.Global()
	a := newApp(cfg)
	defer a.Close()

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()

	var reader lineReader
	if interactive(in, out) {
		reader = NewChatCLI()
	} else {
		reader = newPlainReader(in, out)
	}
	defer reader.Close()

	renderer := newLineRenderer(out, a.transcript, cfg.UI.AssistantName,
		time.Duration(cfg.Receipt.MinDelayMs)*time.Millisecond,
		time.Duration(cfg.Receipt.MaxDelayMs)*time.Millisecond)
	defer renderer.Stop()

	return chatLoop(cmd.Context(), a.pipeline(renderer), a.transcript, reader, out, cfg.UI.AssistantName)
}

// chatLoop reads lines until EOF or /quit and runs each through p.
func chatLoop(ctx context.Context, p *conversation.Pipeline, t *model.Transcript, reader lineReader, out io.Writer, assistant string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out, welcomeStyle.Render(fmt.Sprintf("Conversa com %s", assistant)))
	fmt.Fprintln(out, dimStyle.Render("/clear limpa a conversa · /quit sai"))

	prompt := promptStyle.Render("você> ")
	for {
		input, err := reader.ReadInput(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(input) {
		case "":
			continue
		case "/quit", "/q", "/exit":
			return nil
		case chat.ClearCommand:
			t.Clear()
			fmt.Fprintln(out, dimStyle.Render("conversa limpa"))
			continue
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.Run(ctx, conversation.NewTextComposer(input))
	}
}
