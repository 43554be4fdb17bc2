// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewLocalMessage(t *testing.T) {
	m := NewLocalMessage("oi")
	if m.ID == "" {
		t.Error("expected generated ID")
	}
	if !m.IsLocal() {
		t.Error("expected local sender")
	}
	if m.Delivery != Sent {
		t.Errorf("Delivery = %v, want sent", m.Delivery)
	}
	if m.Delivery.Indicator() != "✓" {
		t.Errorf("Indicator = %q, want single check", m.Delivery.Indicator())
	}
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRemoteMessage("x").ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestMessageClock(t *testing.T) {
	m := NewLocalMessage("oi")
	m.SentAt = time.Date(2025, 3, 1, 21, 7, 0, 0, time.Local)
	if got := m.Clock(); got != "21:07" {
		t.Errorf("Clock() = %q, want 21:07", got)
	}
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendIgnoresBlank(t *testing.T) {
	tr := NewTranscript(0)
	for _, text := range []string{"", "   ", "\n\t "} {
		if _, ok := tr.Append(NewLocalMessage(text)); ok {
			t.Errorf("Append(%q) accepted blank text", text)
		}
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
}

func TestTranscript_AppendKeepsNewlines(t *testing.T) {
	tr := NewTranscript(0)
	h, ok := tr.Append(NewLocalMessage("linha 1\nlinha 2"))
	if !ok {
		t.Fatal("Append rejected message")
	}
	m, _ := tr.Get(h)
	if m.Text != "linha 1\nlinha 2" {
		t.Errorf("Text = %q", m.Text)
	}
}

func TestTranscript_MarkDeliveredOnce(t *testing.T) {
	tr := NewTranscript(0)
	h, _ := tr.Append(NewLocalMessage("oi"))

	if !tr.MarkDelivered(h) {
		t.Fatal("first MarkDelivered should transition")
	}
	if tr.MarkDelivered(h) {
		t.Error("second MarkDelivered should be a no-op")
	}
	m, _ := tr.Get(h)
	if m.Delivery != Delivered {
		t.Errorf("Delivery = %v, want delivered", m.Delivery)
	}
	if m.Delivery.Indicator() != "✓✓" {
		t.Errorf("Indicator = %q, want double check", m.Delivery.Indicator())
	}
}

func TestTranscript_MarkDeliveredIgnoresRemote(t *testing.T) {
	tr := NewTranscript(0)
	h, _ := tr.Append(NewRemoteMessage("Olá!"))
	if tr.MarkDelivered(h) {
		t.Error("remote messages have no delivery state")
	}
}

func TestTranscript_ClearKillsHandles(t *testing.T) {
	tr := NewTranscript(0)
	h, _ := tr.Append(NewLocalMessage("oi"))

	tr.Clear()

	if tr.IsLive(h) {
		t.Error("handle should be dead after Clear")
	}
	if tr.MarkDelivered(h) {
		t.Error("MarkDelivered on a cleared entry must be a no-op")
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d after Clear", tr.Len())
	}
}

func TestTranscript_ClearThenReappendSameID(t *testing.T) {
	tr := NewTranscript(0)
	msg := NewLocalMessage("oi")
	old, _ := tr.Append(msg)
	tr.Clear()
	fresh, _ := tr.Append(msg)

	if tr.MarkDelivered(old) {
		t.Error("stale handle must not reach the new entry")
	}
	if !tr.MarkDelivered(fresh) {
		t.Error("fresh handle should transition")
	}
}

func TestTranscript_EvictsOldest(t *testing.T) {
	tr := NewTranscript(2)
	first, _ := tr.Append(NewLocalMessage("1"))
	tr.Append(NewLocalMessage("2"))
	third, _ := tr.Append(NewLocalMessage("3"))

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}
	if tr.IsLive(first) {
		t.Error("evicted entry should be dead")
	}
	if !tr.IsLive(third) {
		t.Error("newest entry should be live")
	}
	msgs := tr.Messages()
	if msgs[0].Text != "2" || msgs[1].Text != "3" {
		t.Errorf("order = %q, %q", msgs[0].Text, msgs[1].Text)
	}
}

func TestTranscript_MessagesIsSnapshot(t *testing.T) {
	tr := NewTranscript(0)
	h, _ := tr.Append(NewLocalMessage("oi"))
	snap := tr.Messages()
	tr.MarkDelivered(h)
	if snap[0].Delivery != Sent {
		t.Error("snapshot changed after MarkDelivered")
	}
}

func TestTranscript_ZeroHandle(t *testing.T) {
	tr := NewTranscript(0)
	if tr.IsLive(Handle{}) {
		t.Error("zero handle should never be live")
	}
}

func TestTranscript_ConcurrentAppendAndMark(t *testing.T) {
	tr := NewTranscript(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h, _ := tr.Append(NewLocalMessage("x"))
				tr.MarkDelivered(h)
				_ = tr.Messages()
			}
		}()
	}
	wg.Wait()
	if tr.Len() != 50 {
		t.Errorf("Len() = %d, want 50", tr.Len())
	}
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestStatus(t *testing.T) {
	var s Status
	if s.RemoteComposing() || s.Label() != "online" {
		t.Error("zero Status should be idle")
	}
	s.SetRemoteComposing(true)
	if s.Label() != "digitando..." {
		t.Errorf("Label() = %q", s.Label())
	}
	s.SetRemoteComposing(false)
	if s.RemoteComposing() {
		t.Error("expected composing cleared")
	}
}
