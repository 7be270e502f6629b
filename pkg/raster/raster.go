// Package raster implements the software draw operations spec.md
// §4.5 lists against a buffer's RGBA pixel array: rect fill, Bresenham
// line, midpoint circle, polygon edges, and alpha-composited image
// blit. Every function takes a plain []byte plus width/height rather
// than a *registry.Buffer, so the dispatcher (pkg/server) decides
// which backing array (Pixels or EffectData) an
// operation targets.
//
// Grounded on original_source/ipc_server.c's draw_rect_in_buffer /
// handle_draw_line / handle_draw_circle / handle_draw_polygon /
// handle_draw_uploaded_image.
package raster

// colorToRGBA decomposes a packed color_rgba value into its four
// channel bytes, R in the most-significant byte per spec.md §4.5.
func colorToRGBA(color uint32) (r, g, b, a byte) {
	return byte(color >> 24), byte(color >> 16), byte(color >> 8), byte(color)
}

// setPixel writes one RGBA8 pixel at byte offset idx.
//
// Every draw op in this package uses this single component-wise
// write, including the "write full 32-bit pixel" operations (line,
// circle, polygon edges) that original_source/ipc_server.c instead
// implements as a raw `uint32_t *pixel = color` store. On a
// little-endian host that raw store lays bytes out as [A,B,G,R],
// which silently disagrees with draw_rect_in_buffer's explicit
// [R,G,B,A] component writes in the very same file — a byte-order
// inconsistency between two drawing paths touching the same "RGBA
// byte array". This port resolves it by using the same component
// order everywhere, which is what spec.md §3's "owned RGBA byte
// array" plainly describes and is the only self-consistent reading.
func setPixel(pixels []byte, idx int, r, g, b, a byte) {
	pixels[idx] = r
	pixels[idx+1] = g
	pixels[idx+2] = b
	pixels[idx+3] = a
}

func inBounds(x, y int32, width, height uint32) bool {
	return x >= 0 && y >= 0 && x < int32(width) && y < int32(height)
}
