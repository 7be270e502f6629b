package server

import (
	"github.com/helixml/icm/pkg/anim"
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/scene"
	"github.com/helixml/icm/pkg/xform"
)

func (s *Server) handleSetWindowPosition(payload []byte) error {
	var m proto.SetWindowPositionMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.X, b.Y = m.X, m.Y
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowSize(payload []byte) error {
	var m proto.SetWindowSizeMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	s.resizeBuffer(b, m.Width, m.Height)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowOpacity(payload []byte) error {
	var m proto.SetWindowOpacityMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Opacity = m.Opacity
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowTransform(payload []byte) error {
	var m proto.SetWindowTransformMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.ScaleX, b.ScaleY = m.ScaleX, m.ScaleY
	b.RotateZ = m.Rotation
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowBlur(payload []byte) error {
	var m proto.SetWindowBlurMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.BlurRadius = m.BlurRadius
	b.BlurEnabled = m.Enabled != 0
	s.host.ScheduleFrame()
	return nil
}

// handleSetScreenEffect engages or disengages the full-screen pixel
// effect pipeline (spec.md §4.6), always re-run on every output frame
// while enabled regardless of dirty state.
func (s *Server) handleSetScreenEffect(payload []byte) error {
	var m proto.SetScreenEffectMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	s.reg.Screen.Enabled = m.Enabled != 0
	s.reg.Screen.Equation = m.Equation()
	if s.reg.Screen.Enabled && s.reg.Screen.Buffer == nil {
		b := registry.NewBuffer(s.reg.NextID(), s.screenWidth, s.screenHeight, 0)
		b.Layer = registry.LayerBg
		s.reg.Screen.Buffer = b
		s.reg.Buffers.Add(b)
	}
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowEffect(payload []byte) error {
	var m proto.SetWindowEffectMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.EffectEnabled = m.Enabled != 0
	b.Equation = m.Equation()
	b.EffectDirty = true
	b.EnsureEffectData()
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowLayer(payload []byte) error {
	var m proto.SetWindowLayerMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Layer = registry.Layer(m.Layer)
	s.host.ScheduleFrame()
	return nil
}

// handleRaiseWindow and handleLowerWindow call scene.Raise/Lower
// directly rather than waiting for the next output frame: spec.md
// §4.4 describes reordering as an immediate effect, unlike the rest
// of a buffer's state which the per-frame walk mirrors lazily.
func (s *Server) handleRaiseWindow(payload []byte) error {
	var m proto.RaiseWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	scene.Raise(b, s.host)
	return nil
}

func (s *Server) handleLowerWindow(payload []byte) error {
	var m proto.LowerWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	scene.Lower(b, s.host)
	return nil
}

func (s *Server) handleSetWindowParent(payload []byte) error {
	var m proto.SetWindowParentMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.ParentID = m.ParentID
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowTransform3D(payload []byte) error {
	var m proto.SetWindowTransform3DMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.TranslateX, b.TranslateY, b.TranslateZ = m.TranslateX, m.TranslateY, m.TranslateZ
	b.RotateX, b.RotateY, b.RotateZ = m.RotateX, m.RotateY, m.RotateZ
	b.ScaleX, b.ScaleY, b.ScaleZ = m.ScaleX, m.ScaleY, m.ScaleZ
	b.Matrix = xform.Build(
		xform.Translate{X: b.TranslateX, Y: b.TranslateY, Z: b.TranslateZ},
		xform.Rotate{X: b.RotateX, Y: b.RotateY, Z: b.RotateZ},
		xform.Scale{X: b.ScaleX, Y: b.ScaleY, Z: b.ScaleZ},
	)
	b.HasMatrix = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowMatrix(payload []byte) error {
	var m proto.SetWindowMatrixMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Matrix = m.Matrix
	b.HasMatrix = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleSetWindowState(payload []byte) error {
	var m proto.SetWindowStateMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Minimized = m.State&proto.WindowMinimized != 0
	b.Maximized = m.State&proto.WindowMaximized != 0
	b.Fullscreen = m.State&proto.WindowFullscreen != 0
	b.Decorated = m.State&proto.WindowDecorated != 0
	s.broadcastWindowStateChanged(b)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleFocusWindow(payload []byte) error {
	var m proto.FocusWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	s.focusWindow(b)
	return nil
}

func (s *Server) handleBlurWindow(payload []byte) error {
	var m proto.BlurWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Focused = false
	s.broadcastWindowStateChanged(b)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleAnimateWindow(payload []byte) error {
	var m proto.AnimateWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	anim.Start(b, anim.Params{
		DurationMs:       int64(m.DurationMs),
		TargetX:          m.TargetX,
		TargetY:          m.TargetY,
		TargetScaleX:     m.TargetScaleX,
		TargetScaleY:     m.TargetScaleY,
		TargetOpacity:    m.TargetOpacity,
		TargetTranslateX: m.TargetTranslateX,
		TargetTranslateY: m.TargetTranslateY,
		TargetTranslateZ: m.TargetTranslateZ,
		TargetRotateX:    m.TargetRotateX,
		TargetRotateY:    m.TargetRotateY,
		TargetRotateZ:    m.TargetRotateZ,
		TargetScaleZ:     m.TargetScaleZ,
		Flags:            m.Flags,
	})
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleStopAnimation(payload []byte) error {
	var m proto.StopAnimationMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	anim.Stop(b)
	return nil
}
