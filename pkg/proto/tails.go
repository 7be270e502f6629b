package proto

import (
	"encoding/binary"
	"fmt"
)

// Point is an (x, y) vertex used by DRAW_POLYGON's variable tail.
type Point struct{ X, Y int32 }

// DecodePolygonPoints parses NumPoints (x,y) int32 pairs following a
// DrawPolygonHeader.
func DecodePolygonPoints(tail []byte, numPoints uint32) ([]Point, error) {
	const pointSize = 8
	need := int(numPoints) * pointSize
	if len(tail) < need {
		return nil, fmt.Errorf("polygon tail too short: have %d, need %d", len(tail), need)
	}
	pts := make([]Point, numPoints)
	for i := range pts {
		off := i * pointSize
		pts[i] = Point{
			X: int32(binary.LittleEndian.Uint32(tail[off : off+4])),
			Y: int32(binary.LittleEndian.Uint32(tail[off+4 : off+8])),
		}
	}
	return pts, nil
}

// EncodePolygonPoints is the inverse of DecodePolygonPoints.
func EncodePolygonPoints(pts []Point) []byte {
	out := make([]byte, len(pts)*8)
	for i, p := range pts {
		off := i * 8
		binary.LittleEndian.PutUint32(out[off:off+4], uint32(p.X))
		binary.LittleEndian.PutUint32(out[off+4:off+8], uint32(p.Y))
	}
	return out
}

// DecodeMeshVertices parses count fixed-size MeshVertex entries.
func DecodeMeshVertices(tail []byte, count uint32) ([]MeshVertex, error) {
	const vertexSize = 16
	need := int(count) * vertexSize
	if len(tail) < need {
		return nil, fmt.Errorf("mesh vertex tail too short: have %d, need %d", len(tail), need)
	}
	verts := make([]MeshVertex, count)
	for i := range verts {
		off := i * vertexSize
		if err := DecodeFixed(tail[off:off+vertexSize], &verts[i]); err != nil {
			return nil, err
		}
	}
	return verts, nil
}

// EncodeMeshVertices is the inverse of DecodeMeshVertices.
func EncodeMeshVertices(verts []MeshVertex) ([]byte, error) {
	out := make([]byte, 0, len(verts)*16)
	for i := range verts {
		b, err := EncodeFixed(&verts[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// MonitorInfoSize is the packed wire size of one MonitorInfo entry.
const MonitorInfoSize = 4*8 + 1 + 1 + 32

// DecodeMonitors parses count fixed-size MonitorInfo entries.
func DecodeMonitors(tail []byte, count uint32) ([]MonitorInfo, error) {
	const entrySize = MonitorInfoSize
	need := int(count) * entrySize
	if len(tail) < need {
		return nil, fmt.Errorf("monitors tail too short: have %d, need %d", len(tail), need)
	}
	monitors := make([]MonitorInfo, count)
	for i := range monitors {
		off := i * entrySize
		if err := DecodeFixed(tail[off:off+entrySize], &monitors[i]); err != nil {
			return nil, err
		}
	}
	return monitors, nil
}

// EncodeMonitors is the inverse of DecodeMonitors.
func EncodeMonitors(monitors []MonitorInfo) ([]byte, error) {
	out := make([]byte, 0)
	for i := range monitors {
		b, err := EncodeFixed(&monitors[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// ToplevelWindowEntrySize is the packed wire size of one
// ToplevelWindowEntry (no alignment padding, unlike the C struct).
const ToplevelWindowEntrySize = 4 + 4 + 4 + 4 + 4 + 1 + 1 + 4 + 256 + 128

// DecodeToplevelWindows parses count fixed-size ToplevelWindowEntry
// entries.
func DecodeToplevelWindows(tail []byte, count uint32) ([]ToplevelWindowEntry, error) {
	need := int(count) * ToplevelWindowEntrySize
	if len(tail) < need {
		return nil, fmt.Errorf("toplevel windows tail too short: have %d, need %d", len(tail), need)
	}
	entries := make([]ToplevelWindowEntry, count)
	for i := range entries {
		off := i * ToplevelWindowEntrySize
		if err := DecodeFixed(tail[off:off+ToplevelWindowEntrySize], &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// EncodeToplevelWindows is the inverse of DecodeToplevelWindows.
func EncodeToplevelWindows(entries []ToplevelWindowEntry) ([]byte, error) {
	out := make([]byte, 0, len(entries)*ToplevelWindowEntrySize)
	for i := range entries {
		b, err := EncodeFixed(&entries[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
