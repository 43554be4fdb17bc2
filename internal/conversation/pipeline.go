// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/responder"
	"github.com/rs/zerolog"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// IdentitySource yields the user id sent with each message.
type IdentitySource interface {
	GetOrCreate(ctx context.Context) string
}

// Sender performs one exchange with the responder.
type Sender interface {
	Send(ctx context.Context, req responder.Request) (responder.Reply, error)
}

// Renderer displays a message in the conversation.
type Renderer interface {
	Render(msg model.Message)
}

// Composer is the input the pipeline reads from and clears.
type Composer interface {
	Value() string
	Clear()
}

// =============================================================================
// FAILURE TEXT
// =============================================================================

const (
	// FailurePrefix starts every failure message.
	FailurePrefix = "⚠️ Ops! "

	// GenericFailure is used when an error carries no description.
	GenericFailure = "Tive um problema para me conectar."
)

// Describe explains err in one line: "Erro <code>: <detail>" for a rejected
// request, the transport's own text for network failures, GenericFailure
// when there is nothing better.
func Describe(err error) string {
	if err == nil {
		return GenericFailure
	}
	var se *responder.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return GenericFailure
}

// FailureText is the remote message shown for a failed exchange.
func FailureText(err error) string {
	return FailurePrefix + Describe(err)
}

// =============================================================================
// SUBMISSION
// =============================================================================

// State is where a submission is in its lifecycle.
type State int32

const (
	Idle State = iota
	Submitting
	AwaitingReply
	Settled
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case AwaitingReply:
		return "awaiting_reply"
	case Settled:
		return "settled"
	default:
		return "idle"
	}
}

// Outcome is the result of Await.
type Outcome struct {
	Reply   responder.Reply
	Err     error
	Elapsed time.Duration
}

// OK reports whether the exchange succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Text is what Settle renders: the reply, or the failure explanation.
func (o Outcome) Text() string {
	if o.Err != nil {
		return FailureText(o.Err)
	}
	if strings.TrimSpace(o.Reply.Text) == "" {
		return responder.FallbackReply
	}
	return o.Reply.Text
}

// Submission is one message on its way to the responder.
type Submission struct {
	ID     string
	Text   string
	UserID string
	// Echo is the optimistic local message rendered at submit time.
	Echo model.Message

	pipeline *Pipeline
	state    atomic.Int32
	started  time.Time
}

// State returns the submission's current state.
func (s *Submission) State() State {
	return State(s.state.Load())
}

// Await performs exactly one exchange with the responder. It blocks, so
// front ends run it off their UI loop. A panicking Sender is recovered and
// reported as a failed outcome.
func (s *Submission) Await(ctx context.Context) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: fmt.Errorf("%v", r)}
		}
		out.Elapsed = time.Since(start)
	}()

	reply, err := s.pipeline.sender.Send(ctx, responder.Request{Text: s.Text, UserID: s.UserID})
	return Outcome{Reply: reply, Err: err}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline wires the collaborators of the send flow together.
type Pipeline struct {
	identity IdentitySource
	sender   Sender
	renderer Renderer
	status   *model.Status
	log      zerolog.Logger
}

// New creates a pipeline. status may be nil, in which case a private one
// is allocated.
func New(identity IdentitySource, sender Sender, renderer Renderer, status *model.Status) *Pipeline {
	if status == nil {
		status = &model.Status{}
	}
	return &Pipeline{
		identity: identity,
		sender:   sender,
		renderer: renderer,
		status:   status,
		log:      logging.Component("pipeline"),
	}
}

// Status returns the shared composing flag.
func (p *Pipeline) Status() *model.Status {
	return p.status
}

// Submit validates the composer's text and, if it is not blank, renders the
// local echo, clears the composer and marks the remote as composing. It
// returns false and touches nothing when the trimmed text is empty.
func (p *Pipeline) Submit(ctx context.Context, c Composer) (*Submission, bool) {
	text := strings.TrimSpace(c.Value())
	if text == "" {
		return nil, false
	}

	s := &Submission{
		ID:       uuid.NewString(),
		Text:     text,
		pipeline: p,
		started:  time.Now(),
	}
	s.state.Store(int32(Submitting))

	s.UserID = p.identity.GetOrCreate(ctx)
	s.Echo = model.NewLocalMessage(text)
	p.renderer.Render(s.Echo)
	c.Clear()
	p.status.SetRemoteComposing(true)

	s.state.Store(int32(AwaitingReply))
	p.log.Debug().Str("submission", s.ID).Str("user_id", s.UserID).Msg("submitted")
	return s, true
}

// Settle renders the outcome of s as a remote message. The composing flag
// is cleared even if rendering panics; the panic is logged, not re-raised.
func (p *Pipeline) Settle(s *Submission, out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error().
				Str("submission", s.ID).
				Interface("panic", rec).
				Msg("renderer panicked while settling")
		}
		p.status.SetRemoteComposing(false)
		s.state.Store(int32(Settled))
	}()

	ev := p.log.Info()
	if !out.OK() {
		ev = p.log.Warn().Err(out.Err)
	}
	ev.Str("submission", s.ID).
		Str("user_id", s.UserID).
		Bool("ok", out.OK()).
		Dur("latency", time.Since(s.started)).
		Msg("settled")

	p.renderer.Render(model.NewRemoteMessage(out.Text()))
}

// Run is Submit, Await and Settle back to back for front ends without an
// event loop.
func (p *Pipeline) Run(ctx context.Context, c Composer) (*Submission, Outcome, bool) {
	s, ok := p.Submit(ctx, c)
	if !ok {
		return nil, Outcome{}, false
	}
	out := s.Await(ctx)
	p.Settle(s, out)
	return s, out, true
}

// =============================================================================
// TEXT COMPOSER
// =============================================================================

// TextComposer is a Composer over a plain string, for line mode and
// one-shot sends.
type TextComposer struct {
	text string
}

// NewTextComposer returns a composer holding text.
func NewTextComposer(text string) *TextComposer {
	return &TextComposer{text: text}
}

func (t *TextComposer) Value() string { return t.text }
func (t *TextComposer) Clear()        { t.text = "" }
