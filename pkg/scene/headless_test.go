package scene

import (
	"testing"

	"github.com/helixml/icm/pkg/registry"
	"github.com/stretchr/testify/require"
)

func TestHeadlessHostHitTestReportsWindowID(t *testing.T) {
	h := NewHeadlessHost()
	pixels := make([]byte, 4*4*4)

	handle, err := h.CreateBuffer(registry.LayerNormal, 42, pixels, 4, 4, 0)
	require.NoError(t, err)
	h.SetPosition(handle, 10, 10)
	h.SetDestSize(handle, 4, 4)

	_, windowID, sx, sy, ok := h.HitTest(registry.LayerNormal, 11, 12)
	require.True(t, ok)
	require.Equal(t, uint32(42), windowID)
	require.Equal(t, int32(1), sx)
	require.Equal(t, int32(2), sy)

	_, _, _, _, ok = h.HitTest(registry.LayerNormal, 0, 0)
	require.False(t, ok)
}

func TestHeadlessHostRaiseReordersWithinLayer(t *testing.T) {
	h := NewHeadlessHost()
	pixels := make([]byte, 4)

	bottom, _ := h.CreateBuffer(registry.LayerNormal, 1, pixels, 2, 2, 0)
	top, _ := h.CreateBuffer(registry.LayerNormal, 2, pixels, 2, 2, 0)
	for _, handle := range []any{bottom, top} {
		h.SetDestSize(handle, 2, 2)
	}

	// both occupy the same rect; topmost (top, last created) should win.
	_, windowID, _, _, ok := h.HitTest(registry.LayerNormal, 0, 0)
	require.True(t, ok)
	require.Equal(t, uint32(2), windowID)

	// raising bottom should make it win instead.
	h.Raise(bottom)
	_, windowID, _, _, ok = h.HitTest(registry.LayerNormal, 0, 0)
	require.True(t, ok)
	require.Equal(t, uint32(1), windowID)
}

func TestHeadlessHostReparentMovesBetweenLayers(t *testing.T) {
	h := NewHeadlessHost()
	pixels := make([]byte, 4)

	handle, _ := h.CreateBuffer(registry.LayerNormal, 7, pixels, 2, 2, 0)
	h.SetDestSize(handle, 2, 2)

	h.Reparent(handle, registry.LayerOverlay)

	_, _, _, _, ok := h.HitTest(registry.LayerNormal, 0, 0)
	require.False(t, ok)

	_, windowID, _, _, ok := h.HitTest(registry.LayerOverlay, 0, 0)
	require.True(t, ok)
	require.Equal(t, uint32(7), windowID)
}

func TestHeadlessHostDestroyRemovesNode(t *testing.T) {
	h := NewHeadlessHost()
	pixels := make([]byte, 4)

	handle, _ := h.CreateBuffer(registry.LayerNormal, 9, pixels, 2, 2, 0)
	h.SetDestSize(handle, 2, 2)
	h.Destroy(handle)

	_, _, _, _, ok := h.HitTest(registry.LayerNormal, 0, 0)
	require.False(t, ok)
}

func TestHeadlessHostScheduleFrameCounts(t *testing.T) {
	h := NewHeadlessHost()
	require.Equal(t, 0, h.ScheduledFrames())
	h.ScheduleFrame()
	h.ScheduleFrame()
	require.Equal(t, 2, h.ScheduledFrames())
}
