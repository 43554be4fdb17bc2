// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/clara-tui/internal/ui/styles"
)

func TestNewHeader(t *testing.T) {
	h := NewHeader(styles.NewTheme(), "")
	if h.Title != "Clara" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "Clara")
	}
	if h.Composing() {
		t.Error("NewHeader() should start online")
	}
}

func TestHeaderStatus(t *testing.T) {
	h := NewHeader(styles.NewTheme(), "Clara")
	h.SetWidth(60)

	view := h.View()
	if !strings.Contains(view, "Clara") || !strings.Contains(view, "online") {
		t.Errorf("View() = %q, want title and online status", view)
	}

	if cmd := h.SetComposing(true); cmd == nil {
		t.Error("SetComposing(true) should start the spinner")
	}
	if !strings.Contains(h.View(), "digitando...") {
		t.Errorf("View() while composing = %q", h.View())
	}

	if cmd := h.SetComposing(false); cmd != nil {
		t.Error("SetComposing(false) should not schedule anything")
	}
	if h.StatusLabel() != "online" {
		t.Errorf("StatusLabel() = %q, want online", h.StatusLabel())
	}
}

func TestHeaderNarrow(t *testing.T) {
	h := NewHeader(styles.NewTheme(), "Assistente com um nome bem comprido")
	h.SetWidth(10)
	if h.View() == "" {
		t.Error("View() should render at any width")
	}
}

func TestSpinner(t *testing.T) {
	s := NewSpinner()
	if s.IsActive() || s.View() != "" {
		t.Error("new spinner should be idle")
	}

	if s.Start() == nil {
		t.Error("Start() should return a tick")
	}
	if s.Start() != nil {
		t.Error("second Start() should not schedule another tick")
	}
	if s.View() == "" {
		t.Error("active spinner should render a frame")
	}

	s.Stop()
	if s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
	if _, cmd := s.Update(nil); cmd != nil {
		t.Error("stopped spinner should ignore messages")
	}
}
