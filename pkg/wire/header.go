// Package wire implements the 16-byte length-framed header and the
// fd-carrying send/receive paths used by the IPC control plane.
//
// Framing and fd passing follow github.com/helixml/helix/api/pkg/drm's
// protocol.go/manager.go: a fixed little-endian header, binary.Read/Write
// for payload structs, and golang.org/x/sys/unix for SCM_RIGHTS.
package wire

import (
	"encoding/binary"
)

// HeaderSize is the on-wire size of Header in bytes.
const HeaderSize = 16

// MinMessageLength and MaxMessageLength bound a well-formed frame's
// declared length, including the header itself.
const (
	MinMessageLength = HeaderSize
	MaxMessageLength = 65536
)

// MaxFdsPerMessage bounds the number of file descriptors a single
// message may carry via ancillary data.
const MaxFdsPerMessage = 4

// Header is the common 16-byte frame header, little-endian on the wire.
type Header struct {
	Length   uint32 // total length including header
	Type     uint16 // message type, see package proto
	Flags    uint16
	// Sequence is client-assigned on inbound frames. Outbound, the
	// server reassigns it from its own per-connection monotonic
	// counter (see pkg/server's Client.nextSeq) so that replies and
	// unsolicited push events alike satisfy the wire protocol's
	// strictly-increasing-per-socket ordering guarantee.
	Sequence uint32
	NumFds   int32  // number of fds carried in ancillary data
}

// Encode writes h into buf, which must be at least HeaderSize bytes.
func (h Header) Encode(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Length)
	binary.LittleEndian.PutUint16(buf[4:6], h.Type)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	binary.LittleEndian.PutUint32(buf[8:12], h.Sequence)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(h.NumFds))
}

// DecodeHeader parses a Header from the first HeaderSize bytes of buf.
func DecodeHeader(buf []byte) Header {
	return Header{
		Length:   binary.LittleEndian.Uint32(buf[0:4]),
		Type:     binary.LittleEndian.Uint16(buf[4:6]),
		Flags:    binary.LittleEndian.Uint16(buf[6:8]),
		Sequence: binary.LittleEndian.Uint32(buf[8:12]),
		NumFds:   int32(binary.LittleEndian.Uint32(buf[12:16])),
	}
}

// Valid reports whether h's length is within the protocol's bounds.
// Callers must still validate h.Type against the registered range.
func (h Header) Valid() bool {
	return h.Length >= MinMessageLength && h.Length <= MaxMessageLength
}
