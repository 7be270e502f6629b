package raster

func fillRect(pixels []byte, width, height uint32, x, y int32, w, h uint32, color uint32) {
	x0, y0 := x, y
	x1 := x + int32(w)
	y1 := y + int32(h)

	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > int32(width) {
		x1 = int32(width)
	}
	if y1 > int32(height) {
		y1 = int32(height)
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	r, g, b, a := colorToRGBA(color)
	stride := int(width) * 4

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			idx := int(row)*stride + int(col)*4
			if a == 255 {
				setPixel(pixels, idx, r, g, b, a)
				continue
			}
			if a == 0 {
				continue
			}
			alpha := float32(a) / 255
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
	}
}

// DrawRect fills a clipped rectangle. Opaque colors overwrite;
// colors with alpha < 255 alpha-blend using
// out = src·α + dst·(1−α), out_a = max(dst_a, src_a), per spec.md §4.5.
func DrawRect(pixels []byte, width, height uint32, x, y int32, w, h uint32, color uint32) {
	fillRect(pixels, width, height, x, y, w, h, color)
}
