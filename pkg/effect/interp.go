package effect

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// userFunc is a parsed `defn` definition: an ordered parameter list and
// a raw, unparsed body executed line-by-line on each call.
type userFunc struct {
	params []string
	body   string
}

// interpreter holds the mutable evaluation state for one equation
// against one pixel buffer: bound variables (built-ins plus whatever
// deff/defi/assignments have set), user-defined functions, and the raw
// pixel memory `pixels[i]` indexes into.
//
// Grounded on original_source/ipc_server.c's Interpreter struct; vars
// is a Go map instead of the original's linear-scanned fixed array
// since Go gives us a map for free and the cardinality bound
// (MAX_VARS=256) was a C allocation concern, not a semantic one.
type interpreter struct {
	vars  map[string]Value
	funcs map[string]userFunc

	pixels []byte
	width  int
	height int
}

func newInterpreter(pixels []byte, width, height int) *interpreter {
	return &interpreter{
		vars:   make(map[string]Value, 32),
		funcs:  make(map[string]userFunc, 8),
		pixels: pixels,
		width:  width,
		height: height,
	}
}

func (ip *interpreter) setVar(name string, v Value) {
	ip.vars[name] = v
}

func (ip *interpreter) getVar(name string) Value {
	if v, ok := ip.vars[name]; ok {
		return v
	}
	return intVal(0)
}

// parseDefinitions scans every top-level line of equation and binds
// `deff`/`defi` constants and `defn` functions, per spec.md §4.6.
// Output-assignment lines are left untouched here; they run per pixel
// in applyAssignmentLine.
func (ip *interpreter) parseDefinitions(equation string) {
	for _, line := range strings.Split(equation, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "deff "):
			fields := strings.Fields(trimmed[5:])
			if len(fields) != 2 {
				continue
			}
			f, err := parseFloatLiteral(fields[1])
			if err != nil {
				log.Debug().Str("line", trimmed).Msg("effect: malformed deff, skipping")
				continue
			}
			ip.setVar(fields[0], floatVal(f))
		case strings.HasPrefix(trimmed, "defi "):
			fields := strings.Fields(trimmed[5:])
			if len(fields) != 2 {
				continue
			}
			i, err := parseIntLiteral(fields[1])
			if err != nil {
				log.Debug().Str("line", trimmed).Msg("effect: malformed defi, skipping")
				continue
			}
			ip.setVar(fields[0], intVal(i))
		case strings.HasPrefix(trimmed, "defn "):
			ip.parseFunctionDef(trimmed[5:])
		}
	}
}

// parseFunctionDef handles a single `defn NAME(params) { body }` line
// (body may itself have been flattened onto one line by the caller's
// split-on-"\n", matching the original's strtok-per-line scan, which
// likewise only sees whatever line contains the opening "{").
func (ip *interpreter) parseFunctionDef(rest string) {
	braceIdx := strings.Index(rest, "{")
	if braceIdx < 0 {
		return
	}
	header := strings.TrimSpace(rest[:braceIdx])
	parenIdx := strings.Index(header, "(")
	closeParenIdx := strings.LastIndex(header, ")")
	if parenIdx < 0 || closeParenIdx < parenIdx {
		return
	}
	name := strings.TrimSpace(header[:parenIdx])
	rawParams := header[parenIdx+1 : closeParenIdx]

	bodyEnd := strings.LastIndex(rest, "}")
	if bodyEnd < braceIdx {
		return
	}
	body := rest[braceIdx+1 : bodyEnd]

	var params []string
	for _, p := range strings.Split(rawParams, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}

	ip.funcs[name] = userFunc{params: params, body: body}
}

// callFunction dispatches a built-in first, then a user-defined
// function; unknown names return 0, matching
// original_source/ipc_server.c's call_function fallthrough.
func (ip *interpreter) callFunction(name string, args []Value) Value {
	if v, ok := ip.callBuiltin(name, args); ok {
		return v
	}
	fn, ok := ip.funcs[name]
	if !ok {
		log.Debug().Str("func", name).Msg("effect: unknown function, defaulting to 0")
		return intVal(0)
	}
	return ip.callUserFunc(fn, args)
}

func arg(args []Value, i int) float32 {
	if i >= len(args) {
		return 0
	}
	return args[i].float()
}

// callBuiltin implements spec.md §4.6's built-in function table.
func (ip *interpreter) callBuiltin(name string, args []Value) (Value, bool) {
	switch name {
	case "sin":
		return floatVal(float32(math.Sin(float64(arg(args, 0))))), true
	case "cos":
		return floatVal(float32(math.Cos(float64(arg(args, 0))))), true
	case "tan":
		return floatVal(float32(math.Tan(float64(arg(args, 0))))), true
	case "sqrt":
		v := arg(args, 0)
		if v < 0 {
			v = 0
		}
		return floatVal(float32(math.Sqrt(float64(v)))), true
	case "abs":
		if len(args) > 0 && args[0].Kind == KindInt {
			i := args[0].I
			if i < 0 {
				i = -i
			}
			return intVal(i), true
		}
		return floatVal(float32(math.Abs(float64(arg(args, 0))))), true
	case "floor":
		return floatVal(float32(math.Floor(float64(arg(args, 0))))), true
	case "ceil":
		return floatVal(float32(math.Ceil(float64(arg(args, 0))))), true
	case "fract":
		v := arg(args, 0)
		return floatVal(v - float32(math.Floor(float64(v)))), true
	case "pow":
		return floatVal(float32(math.Pow(float64(arg(args, 0)), float64(arg(args, 1))))), true
	case "mix":
		a, b, t := arg(args, 0), arg(args, 1), arg(args, 2)
		return floatVal(a + (b-a)*t), true
	case "step":
		edge, x := arg(args, 0), arg(args, 1)
		if x < edge {
			return floatVal(0), true
		}
		return floatVal(1), true
	case "smoothstep":
		e0, e1, x := arg(args, 0), arg(args, 1), arg(args, 2)
		t := clampf((x-e0)/(e1-e0), 0, 1)
		return floatVal(t * t * (3 - 2*t)), true
	case "min":
		if arg(args, 0) < arg(args, 1) {
			return floatVal(arg(args, 0)), true
		}
		return floatVal(arg(args, 1)), true
	case "max":
		if arg(args, 0) > arg(args, 1) {
			return floatVal(arg(args, 0)), true
		}
		return floatVal(arg(args, 1)), true
	case "clamp":
		return floatVal(clampf(arg(args, 0), arg(args, 1), arg(args, 2))), true
	}
	return Value{}, false
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
