package raster

// BlitImage composites a clipped rectangle of src onto dst using
// source alpha scaled by an overall alpha multiplier, per spec.md
// §4.5: "per-pixel alpha composite using sa·alpha/255 as effective
// source alpha." Grounded on
// original_source/ipc_server.c's handle_draw_uploaded_image, reading
// and writing channels by byte offset rather than through its raw
// uint32 pointer cast (see raster.go's setPixel doc comment for why).
func BlitImage(
	dst []byte, dstWidth, dstHeight uint32,
	dstX, dstY int32,
	src []byte, srcWidth, srcHeight uint32,
	srcX, srcY, blitW, blitH uint32,
	alpha byte,
) {
	sx, sy := int32(srcX), int32(srcY)
	dx, dy := dstX, dstY
	w, h := int32(blitW), int32(blitH)

	if dx < 0 {
		sx -= dx
		w += dx
		dx = 0
	}
	if dy < 0 {
		sy -= dy
		h += dy
		dy = 0
	}
	if dx+w > int32(dstWidth) {
		w = int32(dstWidth) - dx
	}
	if dy+h > int32(dstHeight) {
		h = int32(dstHeight) - dy
	}
	if sx+w > int32(srcWidth) {
		w = int32(srcWidth) - sx
	}
	if sy+h > int32(srcHeight) {
		h = int32(srcHeight) - sy
	}
	if w <= 0 || h <= 0 || dx < 0 || dy < 0 || sx < 0 || sy < 0 {
		return
	}

	dstStride := int(dstWidth) * 4
	srcStride := int(srcWidth) * 4

	for row := int32(0); row < h; row++ {
		for col := int32(0); col < w; col++ {
			dIdx := int(dy+row)*dstStride + int(dx+col)*4
			sIdx := int(sy+row)*srcStride + int(sx+col)*4

			sr, sg, sb, sa := src[sIdx], src[sIdx+1], src[sIdx+2], src[sIdx+3]
			dr, dg, db, _ := dst[dIdx], dst[dIdx+1], dst[dIdx+2], dst[dIdx+3]

			a := byte(uint32(sa) * uint32(alpha) / 255)
			r := byte((uint32(sr)*uint32(a) + uint32(dr)*(255-uint32(a))) / 255)
			g := byte((uint32(sg)*uint32(a) + uint32(dg)*(255-uint32(a))) / 255)
			b := byte((uint32(sb)*uint32(a) + uint32(db)*(255-uint32(a))) / 255)

			setPixel(dst, dIdx, r, g, b, a)
		}
	}
}
