package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
)

func (s *Server) handleSubscribeWindowEvents(c *Client, payload []byte) error {
	var m proto.SubscribeWindowEventsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	c.windowEventMask |= m.EventMask
	return nil
}

func (s *Server) handleUnsubscribeWindowEvents(c *Client, payload []byte) error {
	var m proto.UnsubscribeWindowEventsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	c.windowEventMask &^= m.EventMask
	return nil
}

func (s *Server) broadcastMasked(bit uint32, msgType proto.MsgType, payload []byte) {
	for _, c := range s.clients {
		if c.windowEventMask&bit != 0 {
			s.send(c, msgType, payload, nil)
		}
	}
}

// broadcastWindowStateChanged notifies every subscriber whenever a
// window's minimized/maximized/fullscreen/decorated bits, visibility,
// or focus changes, per spec.md §4.9's "state changes delivered only
// to clients whose window_event_mask has the corresponding bit set."
func (s *Server) broadcastWindowStateChanged(b *registry.Buffer) {
	msg := proto.WindowStateChangedMsg{WindowID: b.ID, State: windowStateBits(b)}
	if b.Visible {
		msg.Visible = 1
	}
	if b.Focused {
		msg.Focused = 1
	}
	out, err := proto.EncodeFixed(&msg)
	if err != nil {
		return
	}
	s.broadcastMasked(proto.WindowEventState, proto.WindowStateChanged, out)
}

// NotifyWindowTitleChanged is called by the scene-host binding when a
// native XDG/layer-shell window changes its title: title changes for
// IPC-created buffers have no wire message of their own (spec.md §1
// scopes the host's native-client title bookkeeping out), so this is
// the only path that produces WINDOW_TITLE_CHANGED.
func (s *Server) NotifyWindowTitleChanged(windowID uint32, title string) {
	var msg proto.WindowTitleChangedMsg
	msg.WindowID = windowID
	msg.SetTitle(title)
	out, err := proto.EncodeFixed(&msg)
	if err != nil {
		return
	}
	s.broadcastMasked(proto.WindowEventTitle, proto.WindowTitleChanged, out)
}
