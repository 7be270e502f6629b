package anim

import (
	"testing"

	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario3AnimationEndState(t *testing.T) {
	b := registry.NewBuffer(1, 10, 10, 0)
	Start(b, Params{
		DurationMs:    200,
		TargetX:       100,
		TargetY:       50,
		TargetOpacity: 0,
		Flags:         proto.AnimatePosition | proto.AnimateOpacity,
	})

	const step = int64(50)
	now := int64(0)
	var changed bool
	for elapsed := int64(0); elapsed <= 200; elapsed += step {
		changed = Tick(b, now+elapsed)
	}

	require.True(t, changed)
	assert.Equal(t, int32(100), b.X)
	assert.Equal(t, int32(50), b.Y)
	assert.Equal(t, float32(0), b.Opacity)
	assert.False(t, b.Anim.Animating)
}

func TestTickNoOpWhenNotAnimating(t *testing.T) {
	b := registry.NewBuffer(1, 10, 10, 0)
	assert.False(t, Tick(b, 1000))
}

func TestTickHoldsUnflaggedComponents(t *testing.T) {
	b := registry.NewBuffer(1, 10, 10, 0)
	b.ScaleX, b.ScaleY = 1, 1
	Start(b, Params{
		DurationMs:   100,
		TargetX:      50,
		TargetScaleX: 3,
		TargetScaleY: 3,
		Flags:        proto.AnimatePosition, // scale NOT flagged
	})
	Tick(b, 0)
	Tick(b, 100)
	assert.Equal(t, int32(50), b.X)
	assert.Equal(t, float32(1), b.ScaleX, "unflagged scale must hold at start, not jump to target")
	assert.Equal(t, float32(1), b.ScaleY)
}

func TestEaseInOutMonotonicAndBounded(t *testing.T) {
	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.05 {
		v := ease(p)
		assert.GreaterOrEqual(t, v, prev)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0001)
		prev = v
	}
	assert.InDelta(t, 0, ease(0), 1e-9)
	assert.InDelta(t, 1, ease(1), 1e-9)
}

func TestStopCancelsWithoutAlteringValues(t *testing.T) {
	b := registry.NewBuffer(1, 10, 10, 0)
	Start(b, Params{DurationMs: 1000, TargetX: 500, Flags: proto.AnimatePosition})
	Tick(b, 500)
	xMid := b.X
	Stop(b)
	assert.False(t, b.Anim.Animating)
	assert.False(t, Tick(b, 1000))
	assert.Equal(t, xMid, b.X)
}

func TestTickRebuildsMatrixEveryCall(t *testing.T) {
	b := registry.NewBuffer(1, 10, 10, 0)
	Start(b, Params{DurationMs: 100, TargetRotateZ: 90, Flags: proto.Animate3DRotate})
	Tick(b, 50)
	assert.True(t, b.HasMatrix)
}
