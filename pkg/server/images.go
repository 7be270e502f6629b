package server

import (
	"github.com/helixml/icm/pkg/proto"
	"github.com/helixml/icm/pkg/raster"
	"github.com/helixml/icm/pkg/registry"
)

const uploadImageHeaderSize = 20

func (s *Server) handleUploadImage(payload []byte, _ []byte) error {
	if len(payload) < uploadImageHeaderSize {
		return errPayloadTooSmall("upload_image", uploadImageHeaderSize, len(payload))
	}
	var hdr proto.UploadImageHeader
	if err := proto.DecodeFixed(payload[:uploadImageHeaderSize], &hdr); err != nil {
		return err
	}
	want := uploadImageHeaderSize + int(hdr.DataSize)
	if len(payload) < want {
		return errPayloadTooSmall("upload_image data", want, len(payload))
	}
	data := make([]byte, hdr.DataSize)
	copy(data, payload[uploadImageHeaderSize:want])

	s.reg.Images.Add(&registry.Image{
		ID: hdr.ImageID, Width: hdr.Width, Height: hdr.Height, Format: hdr.Format, Data: data,
	})
	return nil
}

func (s *Server) handleDestroyImage(payload []byte) error {
	var m proto.DestroyImageMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	if !s.reg.Images.Remove(m.ImageID) {
		return errNotFound("image", m.ImageID)
	}
	return nil
}

func (s *Server) handleDrawUploadedImage(payload []byte) error {
	var m proto.DrawUploadedImageMsg
	if err := proto.DecodeFixed(payload, &m); err != nil {
		return err
	}
	dst, ok := s.reg.Buffers.Find(m.WindowID)
	if !ok {
		return errNotFound("window", m.WindowID)
	}
	img, ok := s.reg.Images.Find(m.ImageID)
	if !ok {
		return errNotFound("image", m.ImageID)
	}
	raster.BlitImage(dst.Pixels, dst.Width, dst.Height, m.X, m.Y,
		img.Data, img.Width, img.Height, m.SrcX, m.SrcY, m.Width, m.Height, m.Alpha)
	dst.Dirty = true
	s.host.ScheduleFrame()
	return nil
}

const drawTextHeaderSize = 20

func (s *Server) handleDrawText(payload []byte) error {
	if len(payload) < drawTextHeaderSize {
		return errPayloadTooSmall("draw_text", drawTextHeaderSize, len(payload))
	}
	var hdr proto.DrawTextHeader
	if err := proto.DecodeFixed(payload[:drawTextHeaderSize], &hdr); err != nil {
		return err
	}
	text := string(payload[drawTextHeaderSize:])

	b, ok := s.reg.Buffers.Find(hdr.WindowID)
	if !ok {
		return errNotFound("window", hdr.WindowID)
	}
	raster.DrawText(b.Pixels, b.Width, b.Height, hdr.X, hdr.Y, text, hdr.ColorRGBA)
	b.Dirty = true
	s.host.ScheduleFrame()
	return nil
}
