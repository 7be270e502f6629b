package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferDefaults(t *testing.T) {
	b := NewBuffer(7, 4, 2, 0)
	assert.Equal(t, float32(1), b.Opacity)
	assert.Equal(t, float32(1), b.ScaleX)
	assert.Equal(t, float32(1), b.ScaleY)
	assert.True(t, b.Visible)
	assert.False(t, b.Decorated)
	assert.Len(t, b.Pixels, 4*2*4)
	for _, p := range b.Pixels {
		assert.Zero(t, p)
	}
}

func TestEntityListAddFindRemove(t *testing.T) {
	var keybinds EntityList[*Keybind]
	k1 := &Keybind{ID: 1, Owner: 10}
	k2 := &Keybind{ID: 2, Owner: 20}
	keybinds.Add(k1)
	keybinds.Add(k2)

	got, ok := keybinds.Find(2)
	require.True(t, ok)
	assert.Equal(t, k2, got)

	assert.True(t, keybinds.Remove(1))
	assert.Equal(t, 1, keybinds.Len())
	_, ok = keybinds.Find(1)
	assert.False(t, ok)
}

func TestRemoveClientOwnedClearsAllThreeLists(t *testing.T) {
	r := New()
	const owner uint64 = 42
	r.Keybinds.Add(&Keybind{ID: 1, Owner: owner})
	r.Keybinds.Add(&Keybind{ID: 2, Owner: owner + 1})
	r.ClickRegions.Add(&ClickRegion{ID: 1, Owner: owner})
	r.ScreenCopies.Add(&ScreenCopyRequest{ID: 1, Owner: owner})

	r.RemoveClientOwned(owner)

	assert.Equal(t, 1, r.Keybinds.Len())
	assert.Equal(t, 0, r.ClickRegions.Len())
	assert.Equal(t, 0, r.ScreenCopies.Len())
	for _, k := range r.Keybinds.All() {
		assert.NotEqual(t, owner, k.Owner)
	}
}

func TestResolveWindowThreeWay(t *testing.T) {
	r := New()
	buf := NewBuffer(1, 10, 10, 0)
	r.Buffers.Add(buf)
	r.Views = append(r.Views, &ExternalSurface{WindowID: 2, Kind: KindView})
	r.LayerSurfaces = append(r.LayerSurfaces, &ExternalSurface{WindowID: 3, Kind: KindLayerSurface})

	kind, b, _, ok := r.ResolveWindow(1)
	require.True(t, ok)
	assert.Equal(t, KindBuffer, kind)
	assert.Same(t, buf, b)

	kind, _, ext, ok := r.ResolveWindow(2)
	require.True(t, ok)
	assert.Equal(t, KindView, kind)
	assert.Equal(t, uint32(2), ext.WindowID)

	kind, _, ext, ok = r.ResolveWindow(3)
	require.True(t, ok)
	assert.Equal(t, KindLayerSurface, kind)
	assert.Equal(t, uint32(3), ext.WindowID)

	_, _, _, ok = r.ResolveWindow(999)
	assert.False(t, ok)
}

func TestEnsureEffectDataInvariant(t *testing.T) {
	b := NewBuffer(1, 3, 2, 0)
	b.EnsureEffectData()
	assert.Nil(t, b.EffectData)

	b.EffectEnabled = true
	b.Equation = "r = r"
	b.EnsureEffectData()
	assert.Len(t, b.EffectData, 3*2*4)

	b.EffectEnabled = false
	b.EnsureEffectData()
	assert.Nil(t, b.EffectData)
}

func TestClickRegionContains(t *testing.T) {
	r := &ClickRegion{X: 10, Y: 10, Width: 20, Height: 5}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(29, 14))
	assert.False(t, r.Contains(30, 14))
	assert.False(t, r.Contains(9, 10))
}

func TestEffectiveOpacityBlurClamp(t *testing.T) {
	b := NewBuffer(1, 1, 1, 0)
	b.Opacity = 1
	assert.Equal(t, float32(1), b.EffectiveOpacity())

	b.BlurEnabled = true
	b.BlurRadius = 5
	assert.Equal(t, float32(0.75), b.EffectiveOpacity())

	b.BlurRadius = 100 // would drive scale negative, must clamp to 0.5
	assert.Equal(t, float32(0.5), b.EffectiveOpacity())
}
