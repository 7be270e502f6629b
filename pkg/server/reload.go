package server

import (
	"github.com/helixml/icm/pkg/config"
	"github.com/helixml/icm/pkg/registry"
)

// WatchConfig arms the dispatch loop to apply events from a running
// config.FileWatcher. Call before Run; dispatchLoop folds each event
// in on the single dispatch goroutine, the same as every
// client-originated handler, so a reload never races the registry.
func (s *Server) WatchConfig(events <-chan config.ReloadEvent) {
	s.configEvents = events
}

// applyConfigReload folds a hot-reloaded screen-effect equation or
// decoration-defaults file into the registry.
func (s *Server) applyConfigReload(ev config.ReloadEvent) {
	if ev.Err != nil {
		s.logger.Warn("config reload failed", "path", ev.Path, "err", ev.Err)
		return
	}

	switch ev.Kind {
	case config.ReloadScreenEffect:
		s.reg.Screen.Equation = ev.Equation
		s.reg.Screen.Enabled = ev.Equation != ""
		if s.reg.Screen.Enabled && s.reg.Screen.Buffer == nil {
			b := registry.NewBuffer(s.reg.NextID(), s.screenWidth, s.screenHeight, 0)
			b.Layer = registry.LayerBg
			s.reg.Screen.Buffer = b
			s.reg.Buffers.Add(b)
		}
		s.logger.Info("reloaded screen effect", "path", ev.Path, "enabled", s.reg.Screen.Enabled)

	case config.ReloadDecorations:
		s.reg.Decorations = registry.DecorationDefaults{
			ServerSide:     ev.Decor.ServerSide,
			TitleHeight:    ev.Decor.TitleHeight,
			BorderWidth:    ev.Decor.BorderWidth,
			ColorFocused:   ev.Decor.ColorFocused,
			ColorUnfocused: ev.Decor.ColorUnfocused,
		}
		for _, b := range s.reg.Buffers.All() {
			if b.Decorated {
				b.Dirty = true
			}
		}
		s.logger.Info("reloaded decoration defaults", "path", ev.Path)
	}

	s.host.ScheduleFrame()
}
