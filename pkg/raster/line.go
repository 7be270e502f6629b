package raster

// DrawLine traces a single-pixel Bresenham line from (x0,y0) to
// (x1,y1), no anti-aliasing, thickness ignored, per spec.md §4.5.
func DrawLine(pixels []byte, width, height uint32, x0, y0, x1, y1 int32, color uint32) {
	r, g, b, a := colorToRGBA(color)
	stride := int(width) * 4

	dx := abs32(x1 - x0)
	dy := abs32(y1 - y0)
	sx := int32(1)
	if x0 >= x1 {
		sx = -1
	}
	sy := int32(1)
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if inBounds(x, y, width, height) {
			idx := int(y)*stride + int(x)*4
			setPixel(pixels, idx, r, g, b, a)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
