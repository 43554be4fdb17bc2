// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Styles must at least pass text through.
	for name, style := range map[string]lipgloss.Style{
		"LocalBubble":  theme.LocalBubble,
		"RemoteBubble": theme.RemoteBubble,
		"Header":       theme.Header,
		"Picker":       theme.Picker,
		"SendButton":   theme.SendButton,
	} {
		if !strings.Contains(style.Render("test"), "test") {
			t.Errorf("%s should render its content", name)
		}
	}
}

func TestNewThemeFor(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(true)

	if !NewThemeFor("dark").IsDark {
		t.Error("dark theme should report IsDark")
	}
	if NewThemeFor("LIGHT").IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestRenderHelpersKeepPrefix(t *testing.T) {
	if !strings.Contains(RenderError("boom"), "[ERR] boom") {
		t.Error("RenderError should keep its text prefix")
	}
	if !strings.Contains(RenderWarning("careful"), "[!] careful") {
		t.Error("RenderWarning should keep its text prefix")
	}
	if !strings.Contains(RenderInfo("hi"), "[i] hi") {
		t.Error("RenderInfo should keep its text prefix")
	}
}
