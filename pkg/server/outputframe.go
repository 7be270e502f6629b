package server

import (
	"time"

	"github.com/helixml/icm/pkg/anim"
	"github.com/helixml/icm/pkg/decor"
	"github.com/helixml/icm/pkg/effect"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/scene"
)

// outputFrame runs once per tick (frameInterval, matching a ~60Hz
// swapchain), grounded directly on original_source/main.c's
// output_frame: advance animations, run the per-buffer and
// full-screen pixel-effect pipelines, repaint server-side window
// decorations, mirror the registry into the scene graph, and then
// answer any pending screen-copy requests against the result.
func (s *Server) outputFrame(now time.Time) {
	nowMs := now.UnixMilli()
	timeSeconds := float64(now.UnixNano()) / 1e9

	for _, b := range s.reg.Buffers.All() {
		anim.Tick(b, nowMs)
		s.applyWindowEffect(b, timeSeconds)
		if b.Decorated {
			decor.Render(b, s.reg.Decorations)
			b.Dirty = true
		}
	}

	s.applyScreenEffect(timeSeconds)

	if err := scene.SyncAll(s.reg, s.host); err != nil {
		s.logger.Warn("scene sync failed", "err", err)
	}

	s.fulfillScreenCopies()
}

// applyWindowEffect mirrors original_source/main.c's render_ipc_buffers
// per-buffer effect block: the shadow buffer is (re)computed only when
// the source pixels or the equation changed, and use_effect_buffer
// tracks which backing array the scene should present.
func (s *Server) applyWindowEffect(b *registry.Buffer, timeSeconds float64) {
	wantsEffect := b.EffectEnabled && b.Equation != ""
	b.EnsureEffectData()

	if wantsEffect && (b.Dirty || b.EffectDirty) {
		copy(b.EffectData, b.Pixels)
		effect.Apply(b.EffectData, int(b.Width), int(b.Height), b.Equation, timeSeconds)
		b.EffectDirty = false
	}

	if b.UseEffectBuffer != wantsEffect {
		b.UseEffectBuffer = wantsEffect
		b.Dirty = true
	}
}

// applyScreenEffect re-runs the full-screen equation against the
// dedicated screen buffer every frame while enabled, per spec.md
// §4.6's "always re-run" rule for the screen-wide pipeline (unlike
// the per-window pipeline, which only recomputes on change).
func (s *Server) applyScreenEffect(timeSeconds float64) {
	se := &s.reg.Screen
	if !se.Enabled || se.Buffer == nil {
		return
	}
	effect.Apply(se.Buffer.Pixels, int(se.Buffer.Width), int(se.Buffer.Height), se.Equation, timeSeconds)
	se.Buffer.Dirty = true
}
