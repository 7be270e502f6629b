package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		hdr  Header
	}{
		{"zero", Header{}},
		{"typical", Header{Length: 32, Type: 6, Flags: 0, Sequence: 0xDEADBEEF, NumFds: 0}},
		{"with fds", Header{Length: 16, Type: 9, Sequence: 1, NumFds: 4}},
		{"max length", Header{Length: MaxMessageLength, Type: 95, Sequence: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, HeaderSize)
			tc.hdr.Encode(buf)
			got := DecodeHeader(buf)
			assert.Equal(t, tc.hdr, got)
		})
	}
}

func TestHeaderValid(t *testing.T) {
	assert.False(t, Header{Length: HeaderSize - 1}.Valid())
	assert.True(t, Header{Length: HeaderSize}.Valid())
	assert.True(t, Header{Length: MaxMessageLength}.Valid())
	assert.False(t, Header{Length: MaxMessageLength + 1}.Valid())
}

func TestHeaderByteOrder(t *testing.T) {
	buf := make([]byte, HeaderSize)
	Header{Length: 1, Type: 2, Flags: 3, Sequence: 4, NumFds: 5}.Encode(buf)
	require.Len(t, buf, HeaderSize)
	assert.Equal(t, byte(1), buf[0], "length is little-endian, low byte first")
	assert.Equal(t, byte(2), buf[4], "type follows length at offset 4")
	assert.Equal(t, byte(3), buf[6], "flags follows type at offset 6")
	assert.Equal(t, byte(4), buf[8], "sequence follows flags at offset 8")
	assert.Equal(t, byte(5), buf[12], "num_fds is the final field at offset 12")
}
