// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FAKES
// =============================================================================

type fixedIdentity string

func (f fixedIdentity) GetOrCreate(context.Context) string { return string(f) }

type recordingRenderer struct {
	mu   sync.Mutex
	msgs []model.Message
	// onRender runs before the message is recorded, for ordering checks.
	onRender func(model.Message)
}

func (r *recordingRenderer) Render(m model.Message) {
	if r.onRender != nil {
		r.onRender(m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *recordingRenderer) all() []model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Message(nil), r.msgs...)
}

type fakeSender struct {
	mu    sync.Mutex
	calls []responder.Request
	reply responder.Reply
	err   error
	panic any
	// before runs inside Send, before returning.
	before func()
}

func (f *fakeSender) Send(_ context.Context, req responder.Request) (responder.Reply, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.before != nil {
		f.before()
	}
	if f.panic != nil {
		panic(f.panic)
	}
	return f.reply, f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestPipeline(sender Sender) (*Pipeline, *recordingRenderer) {
	r := &recordingRenderer{}
	return New(fixedIdentity("user-test"), sender, r, nil), r
}

// =============================================================================
// GUARD
// =============================================================================

func TestSubmit_BlankInputIsIgnored(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n", "\t \n"} {
		sender := &fakeSender{}
		p, r := newTestPipeline(sender)
		c := NewTextComposer(text)

		_, _, ok := p.Run(context.Background(), c)

		assert.False(t, ok, "%q", text)
		assert.Empty(t, r.all(), "%q rendered something", text)
		assert.Zero(t, sender.count(), "%q reached the network", text)
		assert.Equal(t, text, c.Value(), "composer must not be cleared")
		assert.False(t, p.Status().RemoteComposing())
	}
}

// =============================================================================
// HAPPY PATH
// =============================================================================

func TestRun_EchoThenReply(t *testing.T) {
	sender := &fakeSender{reply: responder.Reply{Text: "Olá!"}}
	p, r := newTestPipeline(sender)
	c := NewTextComposer("  oi  ")

	_, out, ok := p.Run(context.Background(), c)
	require.True(t, ok)
	require.True(t, out.OK())

	msgs := r.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.Local, msgs[0].Sender)
	assert.Equal(t, "oi", msgs[0].Text)
	assert.Equal(t, model.Sent, msgs[0].Delivery)
	assert.Equal(t, model.Remote, msgs[1].Sender)
	assert.Equal(t, "Olá!", msgs[1].Text)

	assert.Equal(t, "", c.Value())
	require.Equal(t, 1, sender.count())
	assert.Equal(t, responder.Request{Text: "oi", UserID: "user-test"}, sender.calls[0])
	assert.False(t, p.Status().RemoteComposing())
}

func TestSubmit_EchoPrecedesNetwork(t *testing.T) {
	var p *Pipeline
	var r *recordingRenderer
	sender := &fakeSender{reply: responder.Reply{Text: "ok"}}
	sender.before = func() {
		msgs := r.all()
		require.Len(t, msgs, 1, "local echo must be rendered before Send")
		assert.True(t, msgs[0].IsLocal())
		assert.True(t, p.Status().RemoteComposing(), "composing must be on while awaiting")
	}
	p, r = newTestPipeline(sender)

	s, ok := p.Submit(context.Background(), NewTextComposer("oi"))
	require.True(t, ok)
	assert.Equal(t, AwaitingReply, s.State())
	assert.Zero(t, sender.count(), "Submit must not touch the network")

	out := s.Await(context.Background())
	p.Settle(s, out)
	assert.Equal(t, Settled, s.State())
}

func TestSettle_FallbackOnEmptyReply(t *testing.T) {
	p, r := newTestPipeline(&fakeSender{reply: responder.Reply{}})
	p.Run(context.Background(), NewTextComposer("oi"))

	msgs := r.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, responder.FallbackReply, msgs[1].Text)
}

func TestRun_KeepsInnerNewlines(t *testing.T) {
	sender := &fakeSender{reply: responder.Reply{Text: "ok"}}
	p, r := newTestPipeline(sender)
	p.Run(context.Background(), NewTextComposer("\nlinha 1\nlinha 2\n"))

	assert.Equal(t, "linha 1\nlinha 2", r.all()[0].Text)
	assert.Equal(t, "linha 1\nlinha 2", sender.calls[0].Text)
}

// =============================================================================
// FAILURES
// =============================================================================

func TestRun_StatusErrorRendersWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"timeout"}`))
	}))
	defer srv.Close()

	p, r := newTestPipeline(responder.NewClient(srv.URL))
	_, out, ok := p.Run(context.Background(), NewTextComposer("oi"))
	require.True(t, ok)
	assert.False(t, out.OK())

	msgs := r.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.Remote, msgs[1].Sender)
	assert.True(t, strings.HasPrefix(msgs[1].Text, "⚠️ Ops!"))
	assert.Contains(t, msgs[1].Text, "timeout")
	assert.Equal(t, "⚠️ Ops! Erro 500: timeout", msgs[1].Text)
	assert.False(t, p.Status().RemoteComposing())
}

func TestRun_TransportErrorText(t *testing.T) {
	sender := &fakeSender{err: &responder.TransportError{Err: errors.New("connection refused")}}
	p, r := newTestPipeline(sender)
	p.Run(context.Background(), NewTextComposer("oi"))

	assert.Equal(t, "⚠️ Ops! connection refused", r.all()[1].Text)
}

func TestRun_EmptyErrorUsesGeneric(t *testing.T) {
	p, r := newTestPipeline(&fakeSender{err: errors.New("")})
	p.Run(context.Background(), NewTextComposer("oi"))

	assert.Equal(t, FailurePrefix+GenericFailure, r.all()[1].Text)
}

func TestAwait_RecoversPanic(t *testing.T) {
	p, r := newTestPipeline(&fakeSender{panic: "boom"})
	_, out, ok := p.Run(context.Background(), NewTextComposer("oi"))

	require.True(t, ok)
	require.Error(t, out.Err)
	assert.Equal(t, "⚠️ Ops! boom", r.all()[1].Text)
	assert.False(t, p.Status().RemoteComposing())
}

type panickingRenderer struct{ n int }

func (p *panickingRenderer) Render(model.Message) {
	p.n++
	if p.n == 2 {
		panic("render failed")
	}
}

func TestSettle_ClearsStatusWhenRenderPanics(t *testing.T) {
	p := New(fixedIdentity("u"), &fakeSender{reply: responder.Reply{Text: "ok"}}, &panickingRenderer{}, nil)
	s, ok := p.Submit(context.Background(), NewTextComposer("oi"))
	require.True(t, ok)
	out := s.Await(context.Background())

	assert.NotPanics(t, func() { p.Settle(s, out) })
	assert.False(t, p.Status().RemoteComposing())
	assert.Equal(t, Settled, s.State())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, GenericFailure, Describe(nil))
	assert.Equal(t, "Erro 404: Not Found",
		Describe(&responder.StatusError{Code: 404, Detail: "Not Found"}))
	assert.Equal(t, "dial tcp: refused",
		Describe(&responder.TransportError{Err: errors.New("dial tcp: refused")}))
}

// =============================================================================
// CONCURRENT SUBMISSIONS
// =============================================================================

func TestSubmissions_AreIndependent(t *testing.T) {
	sender := &fakeSender{reply: responder.Reply{Text: "r"}}
	p, r := newTestPipeline(sender)

	a, ok := p.Submit(context.Background(), NewTextComposer("primeira"))
	require.True(t, ok)
	b, ok := p.Submit(context.Background(), NewTextComposer("segunda"))
	require.True(t, ok)
	assert.NotEqual(t, a.ID, b.ID)

	// settle out of order
	outB := b.Await(context.Background())
	p.Settle(b, outB)

	// last writer wins: b's settle cleared the flag while a is still pending
	assert.False(t, p.Status().RemoteComposing())
	assert.Equal(t, AwaitingReply, a.State())

	p.Settle(a, a.Await(context.Background()))

	msgs := r.all()
	require.Len(t, msgs, 4)
	assert.Equal(t, "primeira", msgs[0].Text)
	assert.Equal(t, "segunda", msgs[1].Text)
	assert.Equal(t, 2, sender.count())
}
