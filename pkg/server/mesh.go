package server

import "github.com/helixml/icm/pkg/proto"

const meshTransformHeaderSize = 12

// handleSetWindowMeshTransform stores the deformation grid; spec.md
// §5 bounds mesh_width*mesh_height to keep the tail within the
// frame's max payload, which DecodeMeshVertices's length check also
// enforces against the actually-received bytes.
func (s *Server) handleSetWindowMeshTransform(payload []byte, full []byte) error {
	if len(payload) < meshTransformHeaderSize {
		return errPayloadTooSmall("set_window_mesh_transform", meshTransformHeaderSize, len(payload))
	}
	var hdr proto.SetWindowMeshTransformHeader
	if err := proto.DecodeFixed(payload[:meshTransformHeaderSize], &hdr); err != nil {
		return err
	}
	count := hdr.MeshWidth * hdr.MeshHeight
	verts, err := proto.DecodeMeshVertices(payload[meshTransformHeaderSize:], count)
	if err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(hdr.WindowID)
	if !ok {
		return errNotFound("window", hdr.WindowID)
	}
	b.MeshWidth, b.MeshHeight = hdr.MeshWidth, hdr.MeshHeight
	b.MeshVertices = verts
	s.host.ScheduleFrame()
	return nil
}

func (s *Server) handleClearWindowMeshTransform(payload []byte) error {
	var m proto.ClearWindowMeshTransformMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	b.MeshWidth, b.MeshHeight = 0, 0
	b.MeshVertices = nil
	s.host.ScheduleFrame()
	return nil
}

const updateMeshVerticesHeaderSize = 12

// handleUpdateWindowMeshVertices replaces the vertex range
// [StartIndex, StartIndex+NumVertices) in place, per spec.md §6's
// partial-update variant of the mesh transform.
func (s *Server) handleUpdateWindowMeshVertices(payload []byte, full []byte) error {
	if len(payload) < updateMeshVerticesHeaderSize {
		return errPayloadTooSmall("update_window_mesh_vertices", updateMeshVerticesHeaderSize, len(payload))
	}
	var hdr proto.UpdateWindowMeshVerticesHeader
	if err := proto.DecodeFixed(payload[:updateMeshVerticesHeaderSize], &hdr); err != nil {
		return err
	}
	verts, err := proto.DecodeMeshVertices(payload[updateMeshVerticesHeaderSize:], hdr.NumVertices)
	if err != nil {
		return err
	}
	b, ok := s.reg.Buffers.Find(hdr.WindowID)
	if !ok {
		return errNotFound("window", hdr.WindowID)
	}
	end := hdr.StartIndex + hdr.NumVertices
	if end > uint32(len(b.MeshVertices)) {
		return errPayloadTooSmall("mesh vertex range", int(end), len(b.MeshVertices))
	}
	copy(b.MeshVertices[hdr.StartIndex:end], verts)
	s.host.ScheduleFrame()
	return nil
}
