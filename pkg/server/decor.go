package server

import (
	"github.com/helixml/icm/pkg/decor"
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
)

// handleSetWindowDecorations toggles server-side decoration for
// m.WindowID and, when enabling, updates the server-wide decoration
// style (title height, border width, colors) that every decorated
// window shares — original_source/ipc_server.c's
// handle_set_window_decorations stores these fields on the server,
// not per-window.
func (s *Server) handleSetWindowDecorations(payload []byte) error {
	var m proto.SetWindowDecorationsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Decorated = m.ServerSide != 0
	if b.Decorated {
		s.reg.Decorations = registry.DecorationDefaults{
			ServerSide:     true,
			TitleHeight:    m.TitleHeight,
			BorderWidth:    m.BorderWidth,
			ColorFocused:   m.ColorFocused,
			ColorUnfocused: m.ColorUnfocused,
		}
	}
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

// handleRequestWindowDecorations re-renders b's decoration using the
// server's current defaults and echoes those defaults back to the
// requesting client as a SET_WINDOW_DECORATIONS event, matching
// original_source/ipc_server.c's handle_request_window_decorations.
func (s *Server) handleRequestWindowDecorations(c *Client, payload []byte) error {
	var m proto.RequestWindowDecorationsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	decor.Render(b, s.reg.Decorations)
	b.Dirty = true
	s.host.ScheduleFrame()

	reply := proto.SetWindowDecorationsMsg{
		WindowID:       m.WindowID,
		ServerSide:     boolToU8(s.reg.Decorations.ServerSide),
		TitleHeight:    s.reg.Decorations.TitleHeight,
		BorderWidth:    s.reg.Decorations.BorderWidth,
		ColorFocused:   s.reg.Decorations.ColorFocused,
		ColorUnfocused: s.reg.Decorations.ColorUnfocused,
	}
	out, err := proto.EncodeFixed(&reply)
	if err != nil {
		return err
	}
	s.send(c, proto.SetWindowDecorations, out, nil)
	return nil
}
