package proto

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeFixed serializes a fixed-layout payload struct (no strings or
// slices, only numeric fields and fixed-size arrays) into wire bytes.
func EncodeFixed(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// DecodeFixed parses a fixed-layout payload struct from wire bytes.
func DecodeFixed(data []byte, v any) error {
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}

// cstring returns the NUL-terminated prefix of a fixed-size char array
// field as a Go string.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// putCstring copies s into a fixed-size char array field, truncating
// if necessary and always leaving room for (or writing) a NUL.
func putCstring(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	n := len(s)
	if n > len(dst)-1 {
		n = len(dst) - 1
	}
	copy(dst, s[:n])
}
