// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	"github.com/jeranaias/clara-tui/internal/ui/components"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openArmed(t *testing.T) *OverlayManager {
	t.Helper()
	o := NewOverlayManager(styles.NewTheme())
	cmd := o.Toggle()
	require.NotNil(t, cmd)
	msg, ok := cmd().(armMsg)
	require.True(t, ok)
	require.True(t, o.Arm(msg))
	return o
}

func TestOverlay_ToggleTwiceLeavesNothing(t *testing.T) {
	o := NewOverlayManager(styles.NewTheme())

	o.Toggle()
	assert.True(t, o.IsOpen())
	o.Toggle()

	assert.False(t, o.IsOpen())
	assert.Nil(t, o.Picker())
	assert.Equal(t, 0, o.ListenerCount())
}

func TestOverlay_ArmingIsDeferred(t *testing.T) {
	o := NewOverlayManager(styles.NewTheme())

	cmd := o.Toggle()
	assert.False(t, o.IsArmed(), "the opening press must not reach the listener")
	assert.Equal(t, 1, o.ListenerCount())

	// A press before the arm tick is not seen.
	assert.Equal(t, ClickIgnored, o.HandlePress(500, 500, components.Rect{}))
	assert.True(t, o.IsOpen())

	o.Arm(cmd().(armMsg))
	assert.True(t, o.IsArmed())
	assert.Equal(t, 2, o.ListenerCount())
}

func TestOverlay_StaleArmIgnored(t *testing.T) {
	o := NewOverlayManager(styles.NewTheme())

	first := o.Toggle()().(armMsg)
	o.Toggle() // close
	second := o.Toggle()().(armMsg)

	assert.False(t, o.Arm(first))
	assert.False(t, o.IsArmed())
	assert.True(t, o.Arm(second))
	assert.Equal(t, 2, o.ListenerCount())

	o.Close()
	assert.False(t, o.Arm(second), "arming a closed picker does nothing")
	assert.Equal(t, 0, o.ListenerCount())
}

func TestOverlay_OutsidePressCloses(t *testing.T) {
	o := openArmed(t)
	o.Picker().SetPosition(1, 10)
	toggle := components.Rect{X: 2, Y: 20, Width: 3, Height: 1}

	assert.Equal(t, ClickDismissed, o.HandlePress(60, 2, toggle))
	assert.False(t, o.IsOpen())
	assert.Equal(t, 0, o.ListenerCount())
}

func TestOverlay_InsidePressRearms(t *testing.T) {
	o := openArmed(t)
	o.Picker().SetPosition(1, 10)
	toggle := components.Rect{X: 2, Y: 20, Width: 3, Height: 1}

	assert.Equal(t, ClickRearmed, o.HandlePress(3, 11, toggle))
	assert.True(t, o.IsArmed())

	assert.Equal(t, ClickRearmed, o.HandlePress(3, 20, toggle))
	assert.True(t, o.IsOpen())
	assert.Equal(t, 2, o.ListenerCount())
}

func TestOverlay_CloseIsIdempotent(t *testing.T) {
	o := openArmed(t)
	o.Close()
	o.Close()
	assert.False(t, o.IsOpen())
	assert.Equal(t, 0, o.ListenerCount())
}
