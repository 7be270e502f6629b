package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
	"github.com/helixml/icm/pkg/wire"
)

// handleQueryBufferInfo replies with the buffer's current dimensions
// and format. MmapFD is left as -1: CPU-mapped access to IPC-created
// buffers travels over the already-shared process memory in this
// Go port, not a re-exported fd, so no SCM_RIGHTS payload accompanies
// this reply (see DESIGN.md).
func (s *Server) handleQueryBufferInfo(c *Client, f wire.Frame) error {
	var m proto.QueryBufferInfoMsg
	if err := proto.DecodeFixed(f.Payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.BufferID)
	if !ok {
		return errNotFound("buffer", m.BufferID)
	}
	reply := proto.QueryBufferInfoReplyMsg{
		BufferID: b.ID,
		Width:    int32(b.Width), Height: int32(b.Height),
		Format: b.Format,
		Size:   uint32(len(b.Pixels)),
		Stride: b.Width * 4,
		MmapFD: -1,
	}
	out, err := proto.EncodeFixed(&reply)
	if err != nil {
		return err
	}
	s.send(c, proto.QueryBufferInfo, out, nil)
	return nil
}

func (s *Server) handleQueryWindowPosition(c *Client, payload []byte) error {
	var m proto.QueryWindowPositionMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowPositionDataMsg{WindowID: b.ID, X: b.X, Y: b.Y}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.WindowPositionData, out, nil)
	return nil
}

func (s *Server) handleQueryWindowSize(c *Client, payload []byte) error {
	var m proto.QueryWindowSizeMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowSizeDataMsg{WindowID: b.ID, Width: b.Width, Height: b.Height}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.WindowSizeData, out, nil)
	return nil
}

func (s *Server) handleQueryWindowAttributes(c *Client, payload []byte) error {
	var m proto.QueryWindowAttributesMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowAttributesDataMsg{
		WindowID: b.ID,
		Opacity:  b.Opacity, ScaleX: b.ScaleX, ScaleY: b.ScaleY, Rotation: b.RotateZ,
	}
	if b.Visible {
		reply.Visible = 1
	}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.WindowAttributesData, out, nil)
	return nil
}

func (s *Server) handleQueryWindowLayer(c *Client, payload []byte) error {
	var m proto.QueryWindowLayerMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowLayerDataMsg{WindowID: b.ID, Layer: int32(b.Layer), ParentID: b.ParentID}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.WindowLayerData, out, nil)
	return nil
}

func (s *Server) handleQueryWindowState(c *Client, payload []byte) error {
	var m proto.QueryWindowStateMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowStateDataMsg{WindowID: b.ID, State: windowStateBits(b)}
	if b.Focused {
		reply.Focused = 1
	}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.WindowStateData, out, nil)
	return nil
}

func (s *Server) handleQueryScreenDimensions(c *Client, payload []byte) error {
	reply := proto.ScreenDimensionsDataMsg{
		TotalWidth: s.screenWidth, TotalHeight: s.screenHeight, Scale: s.screenScale,
	}
	out, _ := proto.EncodeFixed(&reply)
	s.send(c, proto.ScreenDimensionsData, out, nil)
	return nil
}

func (s *Server) handleQueryMonitors(c *Client, payload []byte) error {
	hdr := proto.MonitorsDataHeader{NumMonitors: uint32(len(s.monitors))}
	hdrBytes, err := proto.EncodeFixed(&hdr)
	if err != nil {
		return err
	}
	tail, err := proto.EncodeMonitors(s.monitors)
	if err != nil {
		return err
	}
	s.send(c, proto.MonitorsData, append(hdrBytes, tail...), nil)
	return nil
}

func (s *Server) handleQueryWindowInfo(c *Client, payload []byte) error {
	var m proto.QueryWindowInfoMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	reply := proto.WindowInfoDataMsg{
		WindowID: b.ID, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
		Opacity: b.Opacity, ScaleX: b.ScaleX, ScaleY: b.ScaleY, Rotation: b.RotateZ,
		Layer: int32(b.Layer), ParentID: b.ParentID, State: windowStateBits(b),
	}
	if b.Visible {
		reply.Visible = 1
	}
	if b.Focused {
		reply.Focused = 1
	}
	out, err := proto.EncodeFixed(&reply)
	if err != nil {
		return err
	}
	s.send(c, proto.WindowInfoData, out, nil)
	return nil
}

func (s *Server) handleQueryToplevelWindows(c *Client, payload []byte) error {
	var m proto.QueryToplevelWindowsMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	var entries []proto.ToplevelWindowEntry
	for _, b := range s.reg.Buffers.All() {
		if m.Flags == 1 && !b.Visible {
			continue
		}
		e := proto.ToplevelWindowEntry{
			WindowID: b.ID, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
			State: windowStateBits(b),
		}
		if b.Visible {
			e.Visible = 1
		}
		if b.Focused {
			e.Focused = 1
		}
		entries = append(entries, e)
	}
	hdr := proto.ToplevelWindowsDataHeader{NumWindows: uint32(len(entries))}
	hdrBytes, err := proto.EncodeFixed(&hdr)
	if err != nil {
		return err
	}
	tail, err := proto.EncodeToplevelWindows(entries)
	if err != nil {
		return err
	}
	s.send(c, proto.ToplevelWindowsData, append(hdrBytes, tail...), nil)
	return nil
}

func windowStateBits(b *registry.Buffer) uint32 {
	var state uint32
	if b.Minimized {
		state |= proto.WindowMinimized
	}
	if b.Maximized {
		state |= proto.WindowMaximized
	}
	if b.Fullscreen {
		state |= proto.WindowFullscreen
	}
	if b.Decorated {
		state |= proto.WindowDecorated
	}
	return state
}
