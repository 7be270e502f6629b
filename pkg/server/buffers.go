package server

import (
	"fmt"

	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/raster"
	"github.com/helixml/icm/pkg/registry"
)

func (s *Server) handleCreateWindow(c *Client, payload []byte) error {
	var m proto.CreateWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b := registry.NewBuffer(m.WindowID, m.Width, m.Height, 0)
	b.X, b.Y = m.X, m.Y
	b.Layer = registry.Layer(m.Layer)
	b.OwnerClient = c.id
	raster.DrawRect(b.Pixels, b.Width, b.Height, 0, 0, b.Width, b.Height, m.ColorRGBA)
	b.Dirty = true
	s.reg.Buffers.Add(b)

	s.broadcastWindowCreated(b)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDestroyWindow(c *Client, payload []byte) error {
	var m proto.DestroyWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	return s.destroyBuffer(m.WindowID)
}

func (s *Server) destroyBuffer(id uint32) error {
	b, ok := s.reg.Buffers.Find(id)
	if !ok {
		return errNotFound("window", id)
	}
	for _, pl := range b.Planes {
		closeFD(pl.FD)
	}
	if b.SceneHandle != nil {
		s.host.Destroy(b.SceneHandle)
	}
	s.reg.Buffers.Remove(id)
	s.reg.RemoveClickRegionsForWindow(id)
	s.clearWindowScopedRegistrations(id)

	var msg proto.WindowDestroyedMsg
	msg.WindowID = id
	payload, _ := proto.EncodeFixed(&msg)
	s.broadcast(proto.WindowDestroyed, payload)
	s.host.ScheduleFrame()
	return nil
}

// clearWindowScopedRegistrations drops any client's window-scoped
// pointer/keyboard registration that targeted the now-unmapped
// window, per spec.md §3's unmap invariant.
func (s *Server) clearWindowScopedRegistrations(windowID uint32) {
	for _, c := range s.clients {
		if c.eventWindowID == windowID {
			c.registeredPointer = false
			c.registeredKeyboard = false
			c.eventWindowID = 0
		}
	}
}

func (s *Server) handleSetWindow(payload []byte) error {
	var m proto.SetWindowMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.X, b.Y = m.X, m.Y
	s.resizeBuffer(b, m.Width, m.Height)
	s.host.ScheduleFrame()
	return nil
}

// resizeBuffer reallocates a buffer's pixel storage (and effect
// shadow, if engaged) when its declared dimensions change, preserving
// spec.md §3's "pixels len == width*height*4" invariant.
func (s *Server) resizeBuffer(b *registry.Buffer, w, h uint32) {
	if w == b.Width && h == b.Height {
		return
	}
	b.Width, b.Height = w, h
	b.Pixels = make([]byte, int(w)*int(h)*4)
	b.EnsureEffectData()
	b.Dirty = true
}

func (s *Server) handleSetLayer(payload []byte) error {
	var m proto.SetLayerMsg
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

func (s *Server) handleSetAttachments(payload []byte) error {
	var m proto.SetAttachmentsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	win, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	src, ok := s.reg.Buffers.Find(m.BufferID)
	if !ok {
		return errNotFound("buffer", m.BufferID)
	}
	win.Width, win.Height, win.Format = src.Width, src.Height, src.Format
	win.Pixels = src.Pixels
	win.EnsureEffectData()
	win.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDrawRect(payload []byte) error {
	var m proto.DrawRectMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	raster.DrawRect(b.Pixels, b.Width, b.Height, m.X, m.Y, m.Width, m.Height, m.ColorRGBA)
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDrawLine(payload []byte) error {
	var m proto.DrawLineMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	raster.DrawLine(b.Pixels, b.Width, b.Height, m.X0, m.Y0, m.X1, m.Y1, m.ColorRGBA)
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDrawCircle(payload []byte) error {
	var m proto.DrawCircleMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	raster.DrawCircle(b.Pixels, b.Width, b.Height, m.CX, m.CY, int32(m.Radius), m.ColorRGBA)
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDrawPolygon(payload []byte) error {
	const headerSize = 16
	if len(payload) < headerSize {
		return errPayloadTooSmall("draw_polygon", headerSize, len(payload))
	}
	var hdr proto.DrawPolygonHeader
	if err := proto.DecodeFixed(payload[:headerSize], &hdr); err != nil {
		return err
	}
	pts, err := proto.DecodePolygonPoints(payload[headerSize:], hdr.NumPoints)
	if err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(hdr.WindowID)
	if !ok {
		return errNotFound("window", hdr.WindowID)
	}
	raster.DrawPolygon(b.Pixels, b.Width, b.Height, pts, hdr.ColorRGBA)
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDrawImage(payload []byte) error {
	var m proto.DrawImageMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	dst, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	src, ok := s.reg.Buffers.Find(m.BufferID)
	if !ok {
		return errNotFound("buffer", m.BufferID)
	}
	raster.BlitImage(dst.Pixels, dst.Width, dst.Height, m.X, m.Y,
		src.Pixels, src.Width, src.Height, m.SrcX, m.SrcY, m.Width, m.Height, m.Alpha)
	dst.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleBlitBuffer(payload []byte) error {
	var m proto.BlitBufferMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	if _, ok := s.reg.Buffers.Find(m.WindowID); !ok {
		return errNotFound("window", m.WindowID)
	}
	dst, ok := s.reg.Buffers.Find(m.DstBufferID)
	if !ok {
		return errNotFound("buffer", m.DstBufferID)
	}
	src, ok := s.reg.Buffers.Find(m.SrcBufferID)
	if !ok {
		return errNotFound("buffer", m.SrcBufferID)
	}
	raster.BlitImage(dst.Pixels, dst.Width, dst.Height, m.DstX, m.DstY,
		src.Pixels, src.Width, src.Height, uint32(m.SrcX), uint32(m.SrcY), m.Width, m.Height, 255)
	dst.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleBatchBegin(c *Client, payload []byte) error {
	var m proto.BatchBeginMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	c.batching = true
	c.batchID = m.BatchID
	return nil
}

func (s *Server) handleBatchEnd(c *Client, payload []byte) error {
	var m proto.BatchEndMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	if c.batchID == m.BatchID {
		c.batching = false
	}
	return nil
}

func (s *Server) handleCreateBuffer(c *Client, payload []byte) error {
	var m proto.CreateBufferMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b := registry.NewBuffer(m.BufferID, m.Width, m.Height, m.Format)
	b.OwnerClient = c.id
	s.reg.Buffers.Add(b)
	s.broadcastWindowCreated(b)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleDestroyBuffer(c *Client, payload []byte) error {
	var m proto.DestroyBufferMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	return s.destroyBuffer(m.BufferID)
}

func (s *Server) broadcastWindowCreated(b *registry.Buffer) {
	msg := proto.WindowCreatedMsg{WindowID: b.ID, Width: b.Width, Height: b.Height}
	if b.Decorated {
		msg.Decorated = 1
	}
	if b.Focused {
		msg.Focused = 1
	}
	payload, _ := proto.EncodeFixed(&msg)
	s.broadcast(proto.WindowCreated, payload)
}

func errPayloadTooSmall(what string, want, got int) error {
	return fmt.Errorf("%s payload too small: want %d, got %d", what, want, got)
}
