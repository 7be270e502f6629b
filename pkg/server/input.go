package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/scene"
)

func (s *Server) handleRegisterPointerEvent(c *Client, payload []byte) error {
	var m proto.RegisterPointerEventMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	c.registeredPointer = true
	c.eventWindowID = m.WindowID
	return nil
}

func (s *Server) handleRegisterKeyboardEvent(c *Client, payload []byte) error {
	var m proto.RegisterKeyboardEventMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	c.registeredKeyboard = true
	c.eventWindowID = m.WindowID
	return nil
}

// handleQueryCaptureMouse and handleQueryCaptureKeyboard mirror
// original_source/ipc_server.c's stub handlers: capture is always
// granted and no reply frame is sent.
func (s *Server) handleQueryCaptureMouse(_ *Client, payload []byte) error {
	var m proto.QueryCaptureMouseMsg
	return proto.DecodeFixed(payload, &m)
}

func (s *Server) handleQueryCaptureKeyboard(_ *Client, payload []byte) error {
	var m proto.QueryCaptureKeyboardMsg
	return proto.DecodeFixed(payload, &m)
}

func (s *Server) handleRegisterKeybind(c *Client, payload []byte) error {
	var m proto.RegisterKeybindMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	s.reg.Keybinds.Add(&registry.Keybind{
		ID: m.KeybindID, Modifiers: m.Modifiers, Keycode: m.Keycode, Owner: c.id,
	})
	return nil
}

func (s *Server) handleUnregisterKeybind(payload []byte) error {
	var m proto.UnregisterKeybindMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	if !s.reg.Keybinds.Remove(m.KeybindID) {
		return errNotFound("keybind", m.KeybindID)
	}
	return nil
}

func (s *Server) handleRegisterClickRegion(c *Client, payload []byte) error {
	var m proto.RegisterClickRegionMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	s.reg.ClickRegions.Add(&registry.ClickRegion{
		ID: m.RegionID, WindowID: m.WindowID,
		X: m.X, Y: m.Y, Width: m.Width, Height: m.Height,
		Owner: c.id,
	})
	return nil
}

func (s *Server) handleUnregisterClickRegion(payload []byte) error {
	var m proto.UnregisterClickRegionMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	if !s.reg.ClickRegions.Remove(m.RegionID) {
		return errNotFound("click region", m.RegionID)
	}
	return nil
}

// Wayland pointer/keyboard state-change constants, matching
// WL_POINTER_BUTTON_STATE_* / WL_KEYBOARD_KEY_STATE_*.
const (
	inputStateReleased uint32 = 0
	inputStatePressed  uint32 = 1
)

// hitTestTopmost scans layers overlay-down-to-bg for the surface
// under (x,y), per spec.md §4.9's "determine top-most surface at
// cursor by scene hit-test scanning layers overlay→bg."
func (s *Server) hitTestTopmost(x, y int32) (windowID uint32, sx, sy int32, ok bool) {
	layers := []registry.Layer{
		registry.LayerOverlay, registry.LayerTop, registry.LayerNormal,
		registry.LayerBottom, registry.LayerBg,
	}
	for _, layer := range layers {
		if _, wid, lsx, lsy, hit := s.host.HitTest(layer, x, y); hit {
			return wid, lsx, lsy, true
		}
	}
	return 0, 0, 0, false
}

// InjectPointerMotion is called by the scene-host binding when the
// cursor moves, absolute or relative, per spec.md §4.9's pointer
// motion rule.
func (s *Server) InjectPointerMotion(globalX, globalY int32, timeMs uint32) {
	windowID, sx, sy, hit := s.hitTestTopmost(globalX, globalY)
	if hit {
		for _, c := range s.clients {
			if c.registeredPointer && c.eventWindowID == windowID {
				s.sendPointerEvent(c, windowID, timeMs, 0, inputStateReleased, sx, sy)
			}
		}
	}
	for _, c := range s.clients {
		if c.globalPointer {
			s.sendPointerEvent(c, windowID, timeMs, 0, inputStateReleased, globalX, globalY)
		}
	}
}

// InjectPointerButton is called by the scene-host binding on a
// button press or release. On press it focuses and raises the hit
// window; on release it only forwards the event (grab handling is
// the host's responsibility, spec.md §1 Non-goals). Click-region
// matching runs against the same press/release.
func (s *Server) InjectPointerButton(globalX, globalY int32, timeMs, button, state uint32) {
	windowID, sx, sy, hit := s.hitTestTopmost(globalX, globalY)

	if hit && state == inputStatePressed {
		if b, ok := s.reg.Buffers.Find(windowID); ok {
			s.focusWindow(b)
		}
	}

	if hit {
		for _, c := range s.clients {
			if c.registeredPointer && c.eventWindowID == windowID {
				s.sendPointerEvent(c, windowID, timeMs, button, state, sx, sy)
			}
		}
		s.checkClickRegion(windowID, sx, sy, button, state)
	}
	for _, c := range s.clients {
		if c.globalPointer {
			s.sendPointerEvent(c, windowID, timeMs, button, state, globalX, globalY)
		}
	}
}

// focusWindow assigns keyboard/pointer focus to b, clearing focus on
// every other buffer, and raises it to the top of its layer, per
// spec.md §4.9's "Press: focus the hit view (raise, activate, assign
// keyboard focus)."
func (s *Server) focusWindow(b *registry.Buffer) {
	for _, other := range s.reg.Buffers.All() {
		if other.Focused && other != b {
			other.Focused = false
		}
	}
	b.Focused = true
	scene.Raise(b, s.host)
	s.broadcastWindowStateChanged(b)
	s.host.ScheduleFrame()
}

func (s *Server) checkClickRegion(windowID uint32, x, y int32, button, state uint32) {
	for _, r := range s.reg.ClickRegions.All() {
		if r.WindowID != windowID {
			continue
		}
		if x < r.X || x >= r.X+int32(r.Width) || y < r.Y || y >= r.Y+int32(r.Height) {
			continue
		}
		c, ok := s.clientByID(r.Owner)
		if !ok {
			continue
		}
		msg := proto.ClickRegionEventMsg{RegionID: r.ID, Button: button, State: state}
		out, _ := proto.EncodeFixed(&msg)
		s.send(c, proto.ClickRegionEvent, out, nil)
	}
}

// InjectKeyboardKey is called by the scene-host binding for every key
// press/release, after the host's own seat handling. Distribution
// ignores which window is focused: every client that registered a
// window-scoped keyboard listener receives events tagged with its own
// registered window_id, matching original_source/main.c's
// keyboard_handle_key.
func (s *Server) InjectKeyboardKey(timeMs, keycode, state, modifiers uint32) {
	for _, c := range s.clients {
		if c.registeredKeyboard {
			s.sendKeyboardEvent(c, c.eventWindowID, timeMs, keycode, state, modifiers)
		}
		if c.globalKeyboard {
			s.sendKeyboardEvent(c, 0, timeMs, keycode, state, modifiers)
		}
	}

	if state == inputStatePressed {
		s.checkKeybind(modifiers, keycode)
	}
}

func (s *Server) checkKeybind(modifiers, keycode uint32) {
	for _, k := range s.reg.Keybinds.All() {
		if k.Modifiers != modifiers || k.Keycode != keycode {
			continue
		}
		c, ok := s.clientByID(k.Owner)
		if !ok {
			continue
		}
		msg := proto.KeybindEventMsg{KeybindID: k.ID}
		out, _ := proto.EncodeFixed(&msg)
		s.send(c, proto.KeybindEvent, out, nil)
	}
}

func (s *Server) clientByID(id uint64) (*Client, bool) {
	c, ok := s.clients[id]
	return c, ok
}

func (s *Server) sendPointerEvent(c *Client, windowID uint32, timeMs, button, state uint32, x, y int32) {
	msg := proto.PointerEventMsg{WindowID: windowID, Time: timeMs, Button: button, State: state, X: x, Y: y}
	out, err := proto.EncodeFixed(&msg)
	if err != nil {
		return
	}
	s.send(c, proto.PointerEvent, out, nil)
}

func (s *Server) sendKeyboardEvent(c *Client, windowID uint32, timeMs, keycode, state, modifiers uint32) {
	msg := proto.KeyboardEventMsg{WindowID: windowID, Time: timeMs, Keycode: keycode, State: state, Modifiers: modifiers}
	out, err := proto.EncodeFixed(&msg)
	if err != nil {
		return
	}
	s.send(c, proto.KeyboardEvent, out, nil)
}
