// Package decor renders the server-side title bar and border that
// SET_WINDOW_DECORATIONS engages, grounded line-for-line on
// original_source/ipc_server.c's render_window_decorations.
package decor

import (
	"github.com/helixml/icm/pkg/raster"
	"github.com/helixml/icm/pkg/registry"
)

// Render paints b's title bar and border directly into its pixel
// buffer using def's style, a no-op unless b.Decorated and at least
// one of TitleHeight/BorderWidth is non-zero.
func Render(b *registry.Buffer, def registry.DecorationDefaults) {
	if !b.Decorated || len(b.Pixels) == 0 {
		return
	}
	if def.BorderWidth == 0 && def.TitleHeight == 0 {
		return
	}

	color := def.ColorUnfocused
	if b.Focused {
		color = def.ColorFocused
	}

	if def.TitleHeight > 0 {
		raster.DrawRect(b.Pixels, b.Width, b.Height, 0, 0, b.Width, def.TitleHeight, color)
	}

	if def.BorderWidth == 0 {
		return
	}
	if def.TitleHeight == 0 {
		raster.DrawRect(b.Pixels, b.Width, b.Height, 0, 0, b.Width, def.BorderWidth, color)
	}
	raster.DrawRect(b.Pixels, b.Width, b.Height, 0, int32(b.Height-def.BorderWidth), b.Width, def.BorderWidth, color)
	raster.DrawRect(b.Pixels, b.Width, b.Height, 0, 0, def.BorderWidth, b.Height, color)
	raster.DrawRect(b.Pixels, b.Width, b.Height, int32(b.Width-def.BorderWidth), 0, def.BorderWidth, b.Height, color)
}
