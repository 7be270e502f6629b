package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/registry"
)

func (s *Server) handleRequestScreenCopy(c *Client, payload []byte) error {
	var m proto.RequestScreenCopyMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	s.reg.ScreenCopies.Add(&registry.ScreenCopyRequest{
		ID: m.RequestID, X: m.X, Y: m.Y, Width: m.Width, Height: m.Height, Owner: c.id,
	})
	s.host.ScheduleFrame()
	return nil
}

// fulfillScreenCopies answers every pending screen-copy request on
// the current output frame and removes it: requests are one-shot, not
// a standing subscription. No real output framebuffer is reachable
// from this package (spec.md §1 scopes that to the host's renderer),
// so the captured region is synthesized by compositing every visible
// buffer that overlaps it in layer order, bottom to top — the same
// z-order scene.SyncAll mirrors into the host.
func (s *Server) fulfillScreenCopies() {
	pending := s.reg.ScreenCopies.All()
	if len(pending) == 0 {
		return
	}
	ids := make([]uint32, 0, len(pending))
	for _, req := range pending {
		ids = append(ids, req.ID)
		s.sendScreenCopy(req)
	}
	for _, id := range ids {
		s.reg.ScreenCopies.Remove(id)
	}
}

func (s *Server) sendScreenCopy(req *registry.ScreenCopyRequest) {
	c, ok := s.clientByID(req.Owner)
	if !ok {
		return
	}
	pixels := make([]byte, int(req.Width)*int(req.Height)*4)
	s.compositeRegion(pixels, req.X, req.Y, req.Width, req.Height)

	hdr := proto.ScreenCopyDataHeader{
		RequestID: req.ID, Width: req.Width, Height: req.Height,
		Format: 0, DataSize: uint32(len(pixels)),
	}
	hdrBytes, err := proto.EncodeFixed(&hdr)
	if err != nil {
		return
	}
	s.send(c, proto.ScreenCopyData, append(hdrBytes, pixels...), nil)
}

// compositeRegion paints every visible buffer overlapping the
// requested screen rectangle into out, in layer order bottom to top,
// then left to right within a layer by registry insertion order.
func (s *Server) compositeRegion(out []byte, regionX, regionY, regionW, regionH uint32) {
	layers := []registry.Layer{
		registry.LayerBg, registry.LayerBottom, registry.LayerNormal,
		registry.LayerTop, registry.LayerOverlay,
	}
	for _, layer := range layers {
		for _, b := range s.reg.Buffers.All() {
			if b.Layer != layer || !b.Visible || len(b.Pixels) == 0 {
				continue
			}
			compositeBuffer(out, regionX, regionY, regionW, regionH, b)
		}
	}
}

func compositeBuffer(out []byte, regionX, regionY, regionW, regionH uint32, b *registry.Buffer) {
	for row := uint32(0); row < b.Height; row++ {
		srcY := b.Y + int32(row)
		if srcY < int32(regionY) || srcY >= int32(regionY+regionH) {
			continue
		}
		dstRow := uint32(srcY) - regionY
		for col := uint32(0); col < b.Width; col++ {
			srcX := b.X + int32(col)
			if srcX < int32(regionX) || srcX >= int32(regionX+regionW) {
				continue
			}
			dstCol := uint32(srcX) - regionX
			si := (row*b.Width + col) * 4
			di := (dstRow*regionW + dstCol) * 4
			if int(si)+4 > len(b.Pixels) || int(di)+4 > len(out) {
				continue
			}
			a := b.Pixels[si+3]
			if a == 255 {
				copy(out[di:di+4], b.Pixels[si:si+4])
				continue
			}
			for k := 0; k < 3; k++ {
				out[di+uint32(k)] = byte((int(b.Pixels[si+uint32(k)])*int(a) + int(out[di+uint32(k)])*(255-int(a))) / 255)
			}
			out[di+3] = 255
		}
	}
}
