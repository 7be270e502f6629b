package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
)

func (s *Server) handleImportDmabuf(c *Client, payload []byte, fds []int) error {
	var m proto.ImportDmabufMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b := registry.NewBuffer(m.BufferID, uint32(m.Width), uint32(m.Height), m.Format)
	b.OwnerClient = c.id
	b.Pixels = nil // DMA-BUF-backed buffers have no CPU-side shadow until exported

	n := int(m.NumPlanes)
	if n > len(fds) {
		n = len(fds)
	}
	if n > len(m.Planes) {
		n = len(m.Planes)
	}
	b.Planes = make([]registry.DmabufPlane, n)
	for i := 0; i < n; i++ {
		b.Planes[i] = registry.DmabufPlane{
			FD:       fds[i],
			Offset:   m.Planes[i].Offset,
			Stride:   m.Planes[i].Stride,
			Modifier: m.Planes[i].Modifier,
		}
	}
	// Close any surplus fds the client sent beyond num_planes.
	for _, fd := range fds[n:] {
		closeFD(fd)
	}

	s.reg.Buffers.Add(b)
	s.broadcastWindowCreated(b)
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleExportDmabuf(c *Client, payload []byte) error {
	var m proto.ExportDmabufMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.BufferID)
	if !ok {
		return errNotFound("buffer", m.BufferID)
	}
	reply := proto.ExportDmabufReplyMsg{
		BufferID: m.BufferID,
		Width:    int32(b.Width), Height: int32(b.Height),
		Format: b.Format, NumPlanes: uint32(len(b.Planes)),
	}
	fds := make([]int, 0, len(b.Planes))
	for i, pl := range b.Planes {
		if i >= len(reply.Planes) {
			break
		}
		reply.Planes[i] = proto.DmabufPlaneReply{Offset: pl.Offset, Stride: pl.Stride, Modifier: pl.Modifier}
		fds = append(fds, pl.FD)
	}
	out, err := proto.EncodeFixed(&reply)
	if err != nil {
		return err
	}
	s.send(c, proto.ExportDmabuf, out, fds)
	return nil
}

func (s *Server) handleExportSurface(payload []byte) error {
	var m proto.ExportSurfaceMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	win, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	s.reg.Surfaces.Add(&registry.ExportedSurface{
		SurfaceID: m.SurfaceID,
		WindowID:  m.WindowID,
		Buffer:    win,
	})
	return nil
}

func (s *Server) handleImportSurface(payload []byte) error {
	var m proto.ImportSurfaceMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	surf, ok := s.reg.Surfaces.Find(m.SurfaceID)
	if !ok {
		return errNotFound("surface", m.SurfaceID)
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.X, b.Y = m.X, m.Y
	s.resizeBuffer(b, m.Width, m.Height)
	if surf.Buffer != nil {
		copy(b.Pixels, surf.Buffer.Pixels)
	}
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}
