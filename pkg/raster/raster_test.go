package raster

import (
	"testing"

	"github.com/helixml/icm/pkg/proto"
	"github.com/stretchr/testify/assert"
)

func newCanvas(w, h uint32) []byte {
	return make([]byte, int(w)*int(h)*4)
}

func pixelAt(pixels []byte, width uint32, x, y int32) (r, g, b, a byte) {
	idx := int(y)*int(width)*4 + int(x)*4
	return pixels[idx], pixels[idx+1], pixels[idx+2], pixels[idx+3]
}

func TestDrawRectOpaqueFill(t *testing.T) {
	pixels := newCanvas(4, 4)
	DrawRect(pixels, 4, 4, 0, 0, 2, 2, 0xFF0000FF) // opaque red

	r, g, b, a := pixelAt(pixels, 4, 0, 0)
	assert.Equal(t, byte(0xFF), r)
	assert.Equal(t, byte(0), g)
	assert.Equal(t, byte(0), b)
	assert.Equal(t, byte(0xFF), a)

	r, _, _, _ = pixelAt(pixels, 4, 2, 2)
	assert.Equal(t, byte(0), r, "untouched cell stays zero")
}

func TestDrawRectFullyOutsideBufferChangesNothing(t *testing.T) {
	pixels := newCanvas(4, 4)
	want := append([]byte(nil), pixels...)

	DrawRect(pixels, 4, 4, 10, 10, 2, 2, 0xFF0000FF)
	assert.Equal(t, want, pixels)

	DrawRect(pixels, 4, 4, -10, -10, 2, 2, 0xFF0000FF)
	assert.Equal(t, want, pixels)
}

func TestDrawRectAlphaBlend(t *testing.T) {
	pixels := newCanvas(1, 1)
	pixels[0], pixels[1], pixels[2], pixels[3] = 0, 0, 0, 100

	DrawRect(pixels, 1, 1, 0, 0, 1, 1, 0xFFFFFF80) // white, alpha 128

	r, _, _, a := pixelAt(pixels, 1, 0, 0)
	assert.InDelta(t, 128, int(r), 2)
	assert.Equal(t, byte(128), a, "out_a = max(dst_a, src_a)")
}

func TestDrawCircleRadiusZeroWritesCenterOnly(t *testing.T) {
	pixels := newCanvas(5, 5)
	DrawCircle(pixels, 5, 5, 2, 2, 0, 0x00FF00FF)

	r, g, b, a := pixelAt(pixels, 5, 2, 2)
	assert.Equal(t, byte(0), r)
	assert.Equal(t, byte(0xFF), g)
	assert.Equal(t, byte(0), b)
	assert.Equal(t, byte(0xFF), a)

	nonCenterLit := 0
	for y := int32(0); y < 5; y++ {
		for x := int32(0); x < 5; x++ {
			if x == 2 && y == 2 {
				continue
			}
			_, gg, _, _ := pixelAt(pixels, 5, x, y)
			if gg != 0 {
				nonCenterLit++
			}
		}
	}
	assert.Zero(t, nonCenterLit)
}

func TestDrawLineEndpointsIncluded(t *testing.T) {
	pixels := newCanvas(10, 10)
	DrawLine(pixels, 10, 10, 0, 0, 5, 0, 0x00FF00FF)

	for x := int32(0); x <= 5; x++ {
		_, g, _, _ := pixelAt(pixels, 10, x, 0)
		assert.Equal(t, byte(0xFF), g, "x=%d", x)
	}
}

func TestDrawPolygonClosesLoop(t *testing.T) {
	pixels := newCanvas(10, 10)
	pts := []proto.Point{{X: 1, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 8}, {X: 1, Y: 8}}
	DrawPolygon(pixels, 10, 10, pts, 0xFF00FFFF)

	_, _, b, _ := pixelAt(pixels, 10, 1, 1)
	assert.Equal(t, byte(0xFF), b)
}

func TestBlitImageAlphaComposite(t *testing.T) {
	dst := newCanvas(4, 4)
	src := newCanvas(2, 2)
	for i := range src {
		src[i] = 0
	}
	// fully opaque white source
	for i := 0; i < 4; i++ {
		idx := i * 4
		src[idx], src[idx+1], src[idx+2], src[idx+3] = 255, 255, 255, 255
	}

	BlitImage(dst, 4, 4, 1, 1, src, 2, 2, 0, 0, 2, 2, 255)

	r, g, b, a := pixelAt(dst, 4, 1, 1)
	assert.Equal(t, byte(255), r)
	assert.Equal(t, byte(255), g)
	assert.Equal(t, byte(255), b)
	assert.Equal(t, byte(255), a)

	r, _, _, _ = pixelAt(dst, 4, 0, 0)
	assert.Equal(t, byte(0), r, "outside blit rect untouched")
}

func TestBlitImageClipsAtDestEdge(t *testing.T) {
	dst := newCanvas(2, 2)
	src := newCanvas(4, 4)
	for i := 0; i < 16; i++ {
		idx := i * 4
		src[idx], src[idx+1], src[idx+2], src[idx+3] = 10, 20, 30, 255
	}

	assert.NotPanics(t, func() {
		BlitImage(dst, 2, 2, 1, 1, src, 4, 4, 0, 0, 4, 4, 255)
	})
	r, g, b, a := pixelAt(dst, 2, 1, 1)
	assert.Equal(t, byte(10), r)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(30), b)
	assert.Equal(t, byte(255), a)
}

func TestDrawTextDoesNotPanicAndPaintsSomething(t *testing.T) {
	pixels := newCanvas(40, 16)
	DrawText(pixels, 40, 16, 1, 11, "Hi", 0xFFFFFFFF)

	painted := false
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] != 0 {
			painted = true
			break
		}
	}
	assert.True(t, painted, "expected at least one glyph pixel to be drawn")
}
