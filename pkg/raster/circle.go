package raster

// DrawCircle strokes a circle outline using the midpoint algorithm;
// radius 0 degenerates to writing exactly the center pixel, per
// spec.md §8's boundary behavior.
func DrawCircle(pixels []byte, width, height uint32, cx, cy, radius int32, color uint32) {
	r, g, b, a := colorToRGBA(color)
	stride := int(width) * 4

	put := func(px, py int32) {
		if inBounds(px, py, width, height) {
			idx := int(py)*stride + int(px)*4
			setPixel(pixels, idx, r, g, b, a)
		}
	}

	x := int32(0)
	y := radius
	d := 3 - 2*radius

	for x <= y {
		put(cx+x, cy+y)
		put(cx-x, cy+y)
		put(cx+x, cy-y)
		put(cx-x, cy-y)
		put(cx+y, cy+x)
		put(cx-y, cy+x)
		put(cx+y, cy-x)
		put(cx-y, cy-x)

		if d < 0 {
			d = d + 4*x + 6
		} else {
			d = d + 4*(x-y) + 10
			y--
		}
		x++
	}
}
