package raster

import (
	"github.com/dgraph-io/ristretto/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// glyphEntry is one rasterized glyph's coverage mask, cached by rune
// so repeated DrawText calls against the same face don't re-rasterize
// hot characters every frame.
type glyphEntry struct {
	w, h               int
	bearingX, bearingY int
	advance            int
	coverage           []byte // w*h, 0-255 alpha coverage
}

var glyphCache *ristretto.Cache[rune, *glyphEntry]

func init() {
	c, err := ristretto.NewCache(&ristretto.Config[rune, *glyphEntry]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		panic(err)
	}
	glyphCache = c
}

func rasterizeGlyph(face font.Face, r rune) *glyphEntry {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil
	}
	w, h := dr.Dx(), dr.Dy()
	coverage := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			coverage[y*w+x] = byte(a >> 8)
		}
	}
	return &glyphEntry{
		w: w, h: h,
		bearingX: dr.Min.X,
		bearingY: dr.Min.Y,
		advance:  advance.Round(),
		coverage: coverage,
	}
}

func glyphFor(face font.Face, r rune) *glyphEntry {
	if g, ok := glyphCache.Get(r); ok {
		return g
	}
	g := rasterizeGlyph(face, r)
	if g == nil {
		return nil
	}
	glyphCache.Set(r, g, int64(len(g.coverage)+32))
	glyphCache.Wait()
	return g
}

// DrawText rasterizes text left to right starting at (x, y) — y is
// the text baseline, matching font.Drawer's convention — using the
// built-in 7x13 bitmap face, blending each glyph's coverage mask with
// color at the target pixel's existing contents (same
// out = src·α + dst·(1−α) rule DrawRect uses). Bounds-clipped per
// glyph cell.
//
// Grounded on original_source/ipc_server.c's handle_draw_text, which
// reaches for Cairo/Pango; no Cairo/Pango binding exists in the
// retrieval pack, so this uses the pack's own golang.org/x/image font
// stack (the same family gioui-gio builds its text layer on) with a
// ristretto-cached glyph rasterizer in place of Pango's glyph cache.
func DrawText(pixels []byte, width, height uint32, x, y int32, text string, color uint32) {
	face := basicfont.Face7x13
	r, g, b, a := colorToRGBA(color)
	stride := int(width) * 4

	cursor := x
	for _, ch := range text {
		glyph := glyphFor(face, ch)
		if glyph == nil {
			continue
		}
		originX := cursor + int32(glyph.bearingX)
		originY := y + int32(glyph.bearingY)

		for gy := 0; gy < glyph.h; gy++ {
			py := originY + int32(gy)
			if py < 0 || py >= int32(height) {
				continue
			}
			for gx := 0; gx < glyph.w; gx++ {
				px := originX + int32(gx)
				if px < 0 || px >= int32(width) {
					continue
				}
				coverage := glyph.coverage[gy*glyph.w+gx]
				if coverage == 0 {
					continue
				}
				idx := int(py)*stride + int(px)*4
				blendGlyphPixel(pixels, idx, r, g, b, a, coverage)
			}
		}

		cursor += int32(glyph.advance)
	}
}

func blendGlyphPixel(pixels []byte, idx int, r, g, b, a, coverage byte) {
	alpha := float32(a) / 255 * (float32(coverage) / 255)
	dr, dg, db, da := pixels[idx], pixels[idx+1], pixels[idx+2], pixels[idx+3]
	outR := byte(float32(dr)*(1-alpha) + float32(r)*alpha)
	outG := byte(float32(dg)*(1-alpha) + float32(g)*alpha)
	outB := byte(float32(db)*(1-alpha) + float32(b)*alpha)
	outA := da
	if a > da {
		outA = a
	}
	setPixel(pixels, idx, outR, outG, outB, outA)
}
