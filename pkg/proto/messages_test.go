package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedMessageRoundTrip(t *testing.T) {
	in := CreateWindowMsg{WindowID: 7, X: -10, Y: 20, Width: 640, Height: 480, Layer: 2, ColorRGBA: 0xFF112233}
	b, err := EncodeFixed(&in)
	require.NoError(t, err)
	assert.Len(t, b, 4*6+4) // 6 uint32-equivalent fields + color

	var out CreateWindowMsg
	require.NoError(t, DecodeFixed(b, &out))
	assert.Equal(t, in, out)
}

func TestEquationStringHelpers(t *testing.T) {
	var m SetWindowEffectMsg
	m.WindowID = 3
	m.SetEquation("r = r * 0.8; g = g * 0.8; b = b * 0.8")
	assert.Equal(t, "r = r * 0.8; g = g * 0.8; b = b * 0.8", m.Equation())

	b, err := EncodeFixed(&m)
	require.NoError(t, err)
	var decoded SetWindowEffectMsg
	require.NoError(t, DecodeFixed(b, &decoded))
	assert.Equal(t, m.Equation(), decoded.Equation())
}

func TestPutCstringTruncates(t *testing.T) {
	var raw [8]byte
	putCstring(raw[:], "abcdefghij")
	assert.Equal(t, "abcdefg", cstring(raw[:]))
}

func TestPolygonPointsRoundTrip(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: -5}, {X: -3, Y: 7}}
	b := EncodePolygonPoints(pts)
	got, err := DecodePolygonPoints(b, uint32(len(pts)))
	require.NoError(t, err)
	assert.Equal(t, pts, got)
}

func TestDecodePolygonPointsTooShort(t *testing.T) {
	_, err := DecodePolygonPoints([]byte{1, 2, 3}, 2)
	assert.Error(t, err)
}

func TestMeshVerticesRoundTrip(t *testing.T) {
	verts := []MeshVertex{{X: 0, Y: 0, U: 0, V: 0}, {X: 1, Y: 1, U: 1, V: 1}}
	b, err := EncodeMeshVertices(verts)
	require.NoError(t, err)
	got, err := DecodeMeshVertices(b, uint32(len(verts)))
	require.NoError(t, err)
	assert.Equal(t, verts, got)
}

func TestToplevelWindowEntryRoundTrip(t *testing.T) {
	var e ToplevelWindowEntry
	e.WindowID = 42
	e.SetTitle("Terminal")
	e.SetAppID("org.example.term")
	e.Visible = 1

	b, err := EncodeToplevelWindows([]ToplevelWindowEntry{e})
	require.NoError(t, err)
	assert.Len(t, b, ToplevelWindowEntrySize)

	got, err := DecodeToplevelWindows(b, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Terminal", got[0].Title())
	assert.Equal(t, "org.example.term", got[0].AppID())
	assert.Equal(t, uint32(42), got[0].WindowID)
}

func TestMonitorInfoRoundTrip(t *testing.T) {
	var m MonitorInfo
	m.Width, m.Height = 1920, 1080
	m.SetName("eDP-1")
	m.Primary = 1

	b, err := EncodeMonitors([]MonitorInfo{m})
	require.NoError(t, err)
	got, err := DecodeMonitors(b, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "eDP-1", got[0].Name())
	assert.Equal(t, uint8(1), got[0].Primary)
}

func TestAnimateWindowFlags(t *testing.T) {
	msg := AnimateWindowMsg{
		WindowID:   1,
		DurationMs: 250,
		Flags:      AnimatePosition | AnimateOpacity,
	}
	assert.True(t, msg.Flags&AnimatePosition != 0)
	assert.True(t, msg.Flags&AnimateOpacity != 0)
	assert.False(t, msg.Flags&AnimateScale != 0)
}
