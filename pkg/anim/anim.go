// Package anim implements the tick-driven ease-in-out animation
// engine described in spec.md §4.7: per-buffer position, scale,
// opacity, and full 9-DoF 3D transform interpolation, rebuilding the
// transform matrix every tick.
package anim

import (
	"math"

	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/xform"
)

// Params carries the ANIMATE_WINDOW payload's targets and flags.
type Params struct {
	DurationMs int64

	TargetX, TargetY           float32
	TargetScaleX, TargetScaleY float32
	TargetOpacity              float32

	TargetTranslateX, TargetTranslateY, TargetTranslateZ float32
	TargetRotateX, TargetRotateY, TargetRotateZ          float32
	TargetScaleZ                                         float32

	Flags uint32
}

// Start begins a new animation on b, capturing the buffer's current
// values as the start of each targeted component. The wall-clock
// start is captured lazily on the first Tick, per spec.md §4.7.
func Start(b *registry.Buffer, p Params) {
	a := &b.Anim
	a.Flags = p.Flags
	a.DurationMs = p.DurationMs
	a.Animating = true
	a.Started = false

	a.X = registry.AnimationTarget{Start: float32(b.X), Target: p.TargetX, Current: float32(b.X)}
	a.Y = registry.AnimationTarget{Start: float32(b.Y), Target: p.TargetY, Current: float32(b.Y)}
	a.ScaleX = registry.AnimationTarget{Start: b.ScaleX, Target: p.TargetScaleX, Current: b.ScaleX}
	a.ScaleY = registry.AnimationTarget{Start: b.ScaleY, Target: p.TargetScaleY, Current: b.ScaleY}
	a.Opacity = registry.AnimationTarget{Start: b.Opacity, Target: p.TargetOpacity, Current: b.Opacity}

	a.TranslateX = registry.AnimationTarget{Start: b.TranslateX, Target: p.TargetTranslateX, Current: b.TranslateX}
	a.TranslateY = registry.AnimationTarget{Start: b.TranslateY, Target: p.TargetTranslateY, Current: b.TranslateY}
	a.TranslateZ = registry.AnimationTarget{Start: b.TranslateZ, Target: p.TargetTranslateZ, Current: b.TranslateZ}
	a.RotateX = registry.AnimationTarget{Start: b.RotateX, Target: p.TargetRotateX, Current: b.RotateX}
	a.RotateY = registry.AnimationTarget{Start: b.RotateY, Target: p.TargetRotateY, Current: b.RotateY}
	a.RotateZ = registry.AnimationTarget{Start: b.RotateZ, Target: p.TargetRotateZ, Current: b.RotateZ}
	a.ScaleZ = registry.AnimationTarget{Start: b.ScaleZ, Target: p.TargetScaleZ, Current: b.ScaleZ}
}

// Stop cancels any in-flight animation without altering the buffer's
// current values, per STOP_ANIMATION (spec.md §6 type 82).
func Stop(b *registry.Buffer) {
	b.Anim.Animating = false
	b.Anim.Started = false
}

// ease applies the ease-in-out curve from spec.md §4.7:
// t = progress<0.5 ? 2*progress^2 : 1-(-2*progress+2)^2/2
func ease(progress float64) float64 {
	if progress < 0.5 {
		return 2 * progress * progress
	}
	v := -2*progress + 2
	return 1 - (v*v)/2
}

// Tick advances b's animation by one output frame at the given
// monotonic time in milliseconds. Reports whether the buffer's
// visual state changed and the scene mirror should run.
func Tick(b *registry.Buffer, nowMs int64) bool {
	a := &b.Anim
	if !a.Animating {
		return false
	}
	if !a.Started {
		a.StartMs = nowMs
		a.Started = true
	}

	elapsed := nowMs - a.StartMs
	progress := 0.0
	if a.DurationMs > 0 {
		progress = float64(elapsed) / float64(a.DurationMs)
	} else {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	t := float32(ease(progress))
	done := progress >= 1

	interp := func(c *registry.AnimationTarget) float32 {
		if done {
			c.Current = c.Target
		} else {
			c.Current = lerp(c.Start, c.Target, t)
		}
		return c.Current
	}

	if a.Flags&proto.AnimatePosition != 0 {
		b.X = int32(math.Round(float64(interp(&a.X))))
		b.Y = int32(math.Round(float64(interp(&a.Y))))
	}
	if a.Flags&proto.AnimateScale != 0 {
		b.ScaleX = interp(&a.ScaleX)
		b.ScaleY = interp(&a.ScaleY)
	}
	if a.Flags&proto.AnimateOpacity != 0 {
		b.Opacity = interp(&a.Opacity)
	}
	if a.Flags&proto.Animate3DTranslate != 0 {
		b.TranslateX = interp(&a.TranslateX)
		b.TranslateY = interp(&a.TranslateY)
		b.TranslateZ = interp(&a.TranslateZ)
	}
	if a.Flags&proto.Animate3DRotate != 0 {
		b.RotateX = interp(&a.RotateX)
		b.RotateY = interp(&a.RotateY)
		b.RotateZ = interp(&a.RotateZ)
	}
	if a.Flags&proto.Animate3DScale != 0 {
		b.ScaleZ = interp(&a.ScaleZ)
	}

	if done {
		a.Animating = false
	}

	rebuildMatrix(b)
	return true
}

func rebuildMatrix(b *registry.Buffer) {
	b.Matrix = xform.Build(
		xform.Translate{X: b.TranslateX, Y: b.TranslateY, Z: b.TranslateZ},
		xform.Rotate{X: b.RotateX, Y: b.RotateY, Z: b.RotateZ},
		xform.Scale{X: b.ScaleX, Y: b.ScaleY, Z: b.ScaleZ},
	)
	b.HasMatrix = true
}

func lerp(start, target, t float32) float32 {
	return start + t*(target-start)
}
