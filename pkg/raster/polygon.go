package raster

import "github.com/helixml/icm/pkg/proto"

// DrawPolygon traces Bresenham edges between each consecutive pair of
// points, wrapping the last point back to the first, per spec.md
// §4.5 and original_source/ipc_server.c's handle_draw_polygon.
func DrawPolygon(pixels []byte, width, height uint32, points []proto.Point, color uint32) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		DrawLine(pixels, width, height, p0.X, p0.Y, p1.X, p1.Y, color)
	}
}
