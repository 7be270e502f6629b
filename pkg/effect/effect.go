// Package effect implements the embedded pixel-effect expression
// language from spec.md §4.6: a tiny recursive-descent interpreter
// that binds per-pixel built-ins (x, y, width, height, time, pi, r, g,
// b, a), executes deff/defi/defn top-level definitions once, and then
// runs each equation's output-assignment lines once per pixel.
//
// Grounded directly on original_source/ipc_server.c's Interpreter /
// apply_pixel_effect, transliterated line for line into idiomatic Go;
// diagnostics use zerolog, confined to this subsystem per the pack's
// precedent of mixing logging libraries by component.
package effect

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// Apply runs equation against pixels (tightly-packed RGBA8, row-major,
// width*height*4 bytes), mutating it in place. timeSeconds feeds the
// `time` built-in. Matches spec.md §4.6's iteration order: y outer,
// x inner, rebinding the per-pixel environment each time.
func Apply(pixels []byte, width, height int, equation string, timeSeconds float64) {
	if width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		log.Debug().Int("width", width).Int("height", height).Int("len", len(pixels)).
			Msg("effect: buffer too small for dimensions, skipping")
		return
	}

	ip := newInterpreter(pixels, width, height)
	ip.parseDefinitions(equation)

	lines := strings.Split(equation, "\n")

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + x) * 4

			ip.setVar("x", intVal(x))
			ip.setVar("y", intVal(y))
			ip.setVar("width", intVal(width))
			ip.setVar("height", intVal(height))
			ip.setVar("time", floatVal(float32(timeSeconds)))
			ip.setVar("pi", floatVal(float32(math.Pi)))
			ip.setVar("r", floatVal(float32(pixels[idx])))
			ip.setVar("g", floatVal(float32(pixels[idx+1])))
			ip.setVar("b", floatVal(float32(pixels[idx+2])))
			ip.setVar("a", floatVal(float32(pixels[idx+3])))

			for _, line := range lines {
				applyAssignmentLine(ip, strings.TrimSpace(line), pixels, idx)
			}
		}
	}
}

// applyAssignmentLine recognises the two output-assignment forms
// spec.md §4.6 documents: single-channel `r = expr` (and g/b/a), and
// the 4-float-array form `chunk4*:[r, g, b, a] = call`.
func applyAssignmentLine(ip *interpreter, trimmed string, pixels []byte, idx int) {
	switch {
	case strings.HasPrefix(trimmed, "r = "):
		pixels[idx] = clampByte(ip.evaluateExpression(trimmed[4:]).float())
	case strings.HasPrefix(trimmed, "g = "):
		pixels[idx+1] = clampByte(ip.evaluateExpression(trimmed[4:]).float())
	case strings.HasPrefix(trimmed, "b = "):
		pixels[idx+2] = clampByte(ip.evaluateExpression(trimmed[4:]).float())
	case strings.HasPrefix(trimmed, "a = "):
		pixels[idx+3] = clampByte(ip.evaluateExpression(trimmed[4:]).float())
	case strings.HasPrefix(trimmed, "chunk4*:[r, g, b, a] = "):
		call := trimmed[len("chunk4*:[r, g, b, a] = "):]
		result := ip.evaluateExpression(call)
		if result.Kind == KindArray && len(result.Arr) >= 4 {
			pixels[idx] = clampByte(result.Arr[0])
			pixels[idx+1] = clampByte(result.Arr[1])
			pixels[idx+2] = clampByte(result.Arr[2])
			pixels[idx+3] = clampByte(result.Arr[3])
		}
	}
}

func clampByte(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
