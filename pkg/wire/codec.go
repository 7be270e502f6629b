package wire

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// accumulatorCap is the per-client read accumulator size mandated by
// spec.md §4.1 (64 KiB ring).
const accumulatorCap = 64 * 1024

// pollInterval bounds how long ReadFrame blocks before re-checking for
// cancellation; it plays the role the original's non-blocking
// EAGAIN-driven loop plays against a real host event loop.
const pollInterval = 250 * time.Millisecond

// Frame is a fully decoded, in-memory message: header, payload bytes
// (without the header), and any file descriptors carried alongside it.
type Frame struct {
	Header  Header
	Payload []byte
	Fds     []int
}

// Conn wraps a Unix domain stream socket with the IPC framing and
// SCM_RIGHTS fd-passing protocol described in spec.md §4.1 and §6.
//
// Read and write both go through golang.org/x/sys/unix via the
// underlying *net.UnixConn's SyscallConn-free ReadMsgUnix/WriteMsgUnix,
// matching github.com/helixml/helix/api/pkg/drm/manager.go and client.go.
type Conn struct {
	uc  *net.UnixConn
	buf []byte // accumulator of undispatched bytes, len <= accumulatorCap
	fds []int  // fds received but not yet claimed by a decoded frame
}

// NewConn wraps an accepted or dialed Unix connection.
func NewConn(uc *net.UnixConn) *Conn {
	return &Conn{uc: uc, buf: make([]byte, 0, accumulatorCap)}
}

// Raw returns the underlying connection, e.g. for Close or SetDeadline.
func (c *Conn) Raw() *net.UnixConn { return c.uc }

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.uc.Close() }

// ReadFrame blocks until a complete, well-formed frame is available,
// the connection is closed, or done is closed. Malformed headers
// (length out of [16,65536]) trigger a one-byte resync per spec.md
// §4.1; frames whose declared type falls outside [1,100] are dropped
// (payload bytes consumed) without being returned, matching the
// forward-compatibility rule in §4.11/§9.
func (c *Conn) ReadFrame(done <-chan struct{}) (Frame, error) {
	scratch := make([]byte, 4096)
	oob := make([]byte, unix.CmsgSpace(MaxFdsPerMessage*4))

	for {
		if f, ok, err := c.tryDecode(); err != nil {
			return Frame{}, err
		} else if ok {
			return f, nil
		}

		select {
		case <-done:
			return Frame{}, fmt.Errorf("read frame: cancelled")
		default:
		}

		c.uc.SetReadDeadline(time.Now().Add(pollInterval))
		n, oobn, _, _, err := c.uc.ReadMsgUnix(scratch, oob)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return Frame{}, fmt.Errorf("read: %w", err)
		}
		if n == 0 && oobn == 0 {
			return Frame{}, fmt.Errorf("read frame: connection closed")
		}
		if len(c.buf)+n > accumulatorCap {
			return Frame{}, fmt.Errorf("read frame: accumulator overflow")
		}
		c.buf = append(c.buf, scratch[:n]...)
		if oobn > 0 {
			fds, err := parseRights(oob[:oobn])
			if err != nil {
				return Frame{}, fmt.Errorf("parse ancillary data: %w", err)
			}
			c.fds = append(c.fds, fds...)
		}
	}
}

// tryDecode attempts to pull one complete frame out of the
// accumulator without blocking. ok is false when more bytes are
// needed.
func (c *Conn) tryDecode() (Frame, bool, error) {
	for {
		if len(c.buf) < HeaderSize {
			return Frame{}, false, nil
		}
		hdr := DecodeHeader(c.buf)
		if !hdr.Valid() {
			// Resync: advance one byte and retry, per spec.md §4.1.
			c.buf = c.buf[1:]
			continue
		}
		if len(c.buf) < int(hdr.Length) {
			return Frame{}, false, nil
		}

		payload := make([]byte, hdr.Length-HeaderSize)
		copy(payload, c.buf[HeaderSize:hdr.Length])
		c.buf = c.buf[hdr.Length:]

		if hdr.Type < 1 || hdr.Type > 100 {
			// Unknown/unsupported type: drop and keep scanning, per §4.11.
			c.dropFds(int(hdr.NumFds))
			continue
		}

		fds := c.claimFds(int(hdr.NumFds))
		return Frame{Header: hdr, Payload: payload, Fds: fds}, true, nil
	}
}

func (c *Conn) claimFds(n int) []int {
	if n <= 0 || n > len(c.fds) {
		n = min(n, len(c.fds))
	}
	if n <= 0 {
		return nil
	}
	claimed := append([]int(nil), c.fds[:n]...)
	c.fds = c.fds[n:]
	return claimed
}

func (c *Conn) dropFds(n int) {
	for _, fd := range c.claimFds(n) {
		unix.Close(fd)
	}
}

func parseRights(oob []byte) ([]int, error) {
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return nil, err
	}
	var fds []int
	for _, scm := range scms {
		rights, err := unix.ParseUnixRights(&scm)
		if err != nil {
			continue
		}
		fds = append(fds, rights...)
	}
	return fds, nil
}

// WriteFrame sends a header+payload frame, optionally carrying fds via
// SCM_RIGHTS. Sends are partial-send-safe: on EAGAIN it backs off
// briefly and retries, matching original_source/ipc_server.c's
// send_event_to_client; any other error is returned so the caller can
// disconnect the client per spec.md §4.11.
func (c *Conn) WriteFrame(msgType uint16, sequence uint32, payload []byte, fds []int) error {
	hdr := Header{
		Length:   uint32(HeaderSize + len(payload)),
		Type:     msgType,
		Sequence: sequence,
		NumFds:   int32(len(fds)),
	}
	buf := make([]byte, HeaderSize+len(payload))
	hdr.Encode(buf)
	copy(buf[HeaderSize:], payload)

	var rights []byte
	if len(fds) > 0 {
		rights = unix.UnixRights(fds...)
	}

	sent := 0
	for sent < len(buf) {
		c.uc.SetWriteDeadline(time.Now().Add(pollInterval))
		var n int
		var err error
		if rights != nil {
			n, _, err = c.uc.WriteMsgUnix(buf[sent:], rights, nil)
			rights = nil // ancillary data only travels with the first send
		} else {
			n, err = c.uc.Write(buf[sent:])
		}
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return fmt.Errorf("write frame: %w", err)
		}
		sent += n
	}
	return nil
}
