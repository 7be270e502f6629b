package scene

import (
	"testing"

	"github.com/helixml/icm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	layer          registry.Layer
	w, h           uint32
	x, y           int32
	destW, destH   float32
	opacity        float32
	matrix         [16]float32
	hasMatrix      bool
	enabled        bool
	destroyed      bool
	raised, lowered int
	windowID       uint32
}

type fakeHost struct {
	nodes        map[any]*fakeNode
	next         int
	scheduled    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{nodes: make(map[any]*fakeNode)}
}

func (h *fakeHost) CreateBuffer(layer registry.Layer, windowID uint32, pixels []byte, w, h2, format uint32) (any, error) {
	h.next++
	handle := h.next
	h.nodes[handle] = &fakeNode{layer: layer, w: w, h: h2, windowID: windowID}
	return handle, nil
}

func (h *fakeHost) SetBuffer(handle any, pixels []byte, w, h2 uint32) {
	n := h.nodes[handle]
	n.w, n.h = w, h2
}

func (h *fakeHost) SetPosition(handle any, x, y int32) {
	h.nodes[handle].x, h.nodes[handle].y = x, y
}

func (h *fakeHost) SetDestSize(handle any, w, h2 float32) {
	h.nodes[handle].destW, h.nodes[handle].destH = w, h2
}

func (h *fakeHost) SetOpacity(handle any, opacity float32) {
	h.nodes[handle].opacity = opacity
}

func (h *fakeHost) SetTransformMatrix(handle any, m [16]float32) {
	n := h.nodes[handle]
	n.matrix = m
	n.hasMatrix = true
}

func (h *fakeHost) ClearTransformMatrix(handle any) {
	h.nodes[handle].hasMatrix = false
}

func (h *fakeHost) Reparent(handle any, layer registry.Layer) {
	h.nodes[handle].layer = layer
}

func (h *fakeHost) Raise(handle any) { h.nodes[handle].raised++ }
func (h *fakeHost) Lower(handle any) { h.nodes[handle].lowered++ }

func (h *fakeHost) SetEnabled(handle any, enabled bool) {
	h.nodes[handle].enabled = enabled
}

func (h *fakeHost) Destroy(handle any) {
	h.nodes[handle].destroyed = true
	delete(h.nodes, handle)
}

func (h *fakeHost) HitTest(layer registry.Layer, x, y int32) (any, uint32, int32, int32, bool) {
	return nil, 0, 0, 0, false
}

func (h *fakeHost) ScheduleFrame() { h.scheduled++ }

func TestSyncCreatesNodeOnFirstCall(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 4, 4, 0)

	require.NoError(t, Sync(b, host))
	require.NotNil(t, b.SceneHandle)

	n := host.nodes[b.SceneHandle]
	assert.Equal(t, registry.LayerBg, n.layer)
	assert.Equal(t, float32(4), n.destW)
	assert.Equal(t, float32(4), n.destH)
	assert.Equal(t, float32(1), n.opacity)
	assert.True(t, n.enabled)
}

func TestSyncSwapsDirtyBufferAndClearsFlag(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	require.NoError(t, Sync(b, host))

	b.Pixels[0] = 0xAB
	b.Dirty = true
	require.NoError(t, Sync(b, host))

	assert.False(t, b.Dirty)
}

func TestSyncAppliesPositionAndScaledDestSize(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 10, 20, 0)
	b.X, b.Y = 5, 7
	b.ScaleX, b.ScaleY = 2, 0.5

	require.NoError(t, Sync(b, host))

	n := host.nodes[b.SceneHandle]
	assert.Equal(t, int32(5), n.x)
	assert.Equal(t, int32(7), n.y)
	assert.Equal(t, float32(20), n.destW)
	assert.Equal(t, float32(10), n.destH)
}

func TestSyncScalesOpacityWhenBlurEnabled(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	b.BlurEnabled = true
	b.BlurRadius = 4 // scale = 1 - 0.05*4 = 0.8

	require.NoError(t, Sync(b, host))

	n := host.nodes[b.SceneHandle]
	assert.InDelta(t, 0.8, n.opacity, 1e-6)
}

func TestSyncAppliesAndClearsTransformMatrix(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	b.HasMatrix = true
	b.Matrix[0] = 3

	require.NoError(t, Sync(b, host))
	n := host.nodes[b.SceneHandle]
	assert.True(t, n.hasMatrix)
	assert.Equal(t, float32(3), n.matrix[0])

	b.HasMatrix = false
	require.NoError(t, Sync(b, host))
	assert.False(t, host.nodes[b.SceneHandle].hasMatrix)
}

func TestSyncReparentsOnLayerChange(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	require.NoError(t, Sync(b, host))
	assert.Equal(t, registry.LayerBg, host.nodes[b.SceneHandle].layer)

	b.Layer = registry.LayerOverlay
	require.NoError(t, Sync(b, host))
	assert.Equal(t, registry.LayerOverlay, host.nodes[b.SceneHandle].layer)
}

func TestSyncDestroysNodeWhenBufferBecomesInvisible(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	require.NoError(t, Sync(b, host))
	handle := b.SceneHandle

	b.Visible = false
	require.NoError(t, Sync(b, host))

	assert.Nil(t, b.SceneHandle)
	_, stillTracked := host.nodes[handle]
	assert.False(t, stillTracked)
}

func TestSyncAllWalksEveryBuffer(t *testing.T) {
	host := newFakeHost()
	reg := registry.New()
	reg.Buffers.Add(registry.NewBuffer(1, 2, 2, 0))
	reg.Buffers.Add(registry.NewBuffer(2, 3, 3, 0))

	require.NoError(t, SyncAll(reg, host))
	assert.Len(t, host.nodes, 2)
}

func TestRaiseAndLowerForwardToHost(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)
	require.NoError(t, Sync(b, host))

	Raise(b, host)
	Lower(b, host)

	n := host.nodes[b.SceneHandle]
	assert.Equal(t, 1, n.raised)
	assert.Equal(t, 1, n.lowered)
}

func TestRaiseLowerNoopWithoutSceneHandle(t *testing.T) {
	host := newFakeHost()
	b := registry.NewBuffer(1, 2, 2, 0)

	assert.NotPanics(t, func() {
		Raise(b, host)
		Lower(b, host)
	})
}
