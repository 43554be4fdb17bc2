// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/clara-tui/internal/ui/components"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
)

// =============================================================================
// OVERLAY MANAGER
// =============================================================================

// clickListener is the outside-click listener's state.
type clickListener int

const (
	listenerDisarmed clickListener = iota
	listenerArmed
)

// ClickResult tells the caller what the outside-click listener did with a
// press.
type ClickResult int

const (
	// ClickIgnored means no listener was armed.
	ClickIgnored ClickResult = iota
	// ClickRearmed means the press was inside the picker or on the toggle.
	ClickRearmed
	// ClickDismissed means the press was outside and the picker closed.
	ClickDismissed
)

// OverlayManager owns the emoji picker. A nil picker means closed. While
// open it holds a selection listener and, after one scheduling tick, an
// armed outside-click listener.
type OverlayManager struct {
	picker     *components.EmojiPicker
	selecting  bool
	listener   clickListener
	generation int
	theme      *styles.Theme
}

// NewOverlayManager creates a closed overlay manager.
func NewOverlayManager(theme *styles.Theme) *OverlayManager {
	return &OverlayManager{theme: theme}
}

// IsOpen reports whether the picker exists.
func (o *OverlayManager) IsOpen() bool {
	return o.picker != nil
}

// IsArmed reports whether the outside-click listener is armed.
func (o *OverlayManager) IsArmed() bool {
	return o.listener == listenerArmed
}

// Picker returns the open picker, or nil.
func (o *OverlayManager) Picker() *components.EmojiPicker {
	return o.picker
}

// ListenerCount reports how many listeners are attached: none while closed,
// the selection listener once open, plus the click listener once armed.
func (o *OverlayManager) ListenerCount() int {
	n := 0
	if o.selecting {
		n++
	}
	if o.listener == listenerArmed {
		n++
	}
	return n
}

// Toggle opens the picker when closed and closes it when open. Opening
// returns the command that arms the outside-click listener on the next
// tick, so the press that opened the picker is never seen by it.
func (o *OverlayManager) Toggle() tea.Cmd {
	if o.picker != nil {
		o.Close()
		return nil
	}

	o.generation++
	o.picker = components.NewEmojiPicker(o.theme)
	o.selecting = true
	o.listener = listenerDisarmed

	gen := o.generation
	return func() tea.Msg {
		return armMsg{generation: gen}
	}
}

// Arm handles a deferred arm request. Requests from an earlier opening,
// or for a picker that has since closed, are dropped.
func (o *OverlayManager) Arm(msg armMsg) bool {
	if o.picker == nil || msg.generation != o.generation {
		return false
	}
	o.listener = listenerArmed
	return true
}

// Close detaches both listeners and discards the picker. Closing a closed
// manager does nothing.
func (o *OverlayManager) Close() {
	if o.picker == nil {
		return
	}
	o.selecting = false
	o.listener = listenerDisarmed
	o.picker = nil
	o.generation++
}

// HandlePress runs the outside-click listener for a left press at (x, y).
// The listener fires once: it closes the picker when the press lands
// outside both the picker and toggle, and otherwise arms itself again.
func (o *OverlayManager) HandlePress(x, y int, toggle components.Rect) ClickResult {
	if o.picker == nil || o.listener != listenerArmed {
		return ClickIgnored
	}
	o.listener = listenerDisarmed

	if !o.picker.Bounds().Contains(x, y) && !toggle.Contains(x, y) {
		o.Close()
		return ClickDismissed
	}
	o.listener = listenerArmed
	return ClickRearmed
}
