package server

import "github.com/helixml/icm/pkg/proto"

func (s *Server) handleSetWindowVisible(payload []byte) error {
	var m proto.SetWindowVisibleMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.Visible = m.Visible != 0
	s.broadcastWindowStateChanged(b)
	s.host.ScheduleFrame()
	return nil
}
