package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityAssignmentLeavesPixelsUnchanged(t *testing.T) {
	pixels := []byte{
		10, 20, 30, 255,
		1, 2, 3, 4,
	}
	want := append([]byte(nil), pixels...)

	Apply(pixels, 2, 1, "r=r;g=g;b=b;a=a", 0)

	assert.Equal(t, want, pixels)
}

func TestEffectDeterminismScenario(t *testing.T) {
	width, height := 3, 2
	pixels := make([]byte, width*height*4)

	Apply(pixels, width, height, "r = x + y\ng = 0\nb = 0\na = 255", 0)

	want := [][4]byte{
		{0, 0, 0, 255}, {1, 0, 0, 255}, {2, 0, 0, 255},
		{1, 0, 0, 255}, {2, 0, 0, 255}, {3, 0, 0, 255},
	}
	for i, px := range want {
		idx := i * 4
		assert.Equal(t, px[0], pixels[idx], "pixel %d r", i)
		assert.Equal(t, px[1], pixels[idx+1], "pixel %d g", i)
		assert.Equal(t, px[2], pixels[idx+2], "pixel %d b", i)
		assert.Equal(t, px[3], pixels[idx+3], "pixel %d a", i)
	}
}

func TestBuiltinFunctionsClampAndMix(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	v := ip.evaluateExpression("clamp(300, 0, 255)")
	assert.Equal(t, float32(255), v.float())

	v = ip.evaluateExpression("mix(0, 10, 0.5)")
	assert.Equal(t, float32(5), v.float())

	v = ip.evaluateExpression("min(2, 7)")
	assert.Equal(t, float32(2), v.float())

	v = ip.evaluateExpression("max(2, 7)")
	assert.Equal(t, float32(7), v.float())
}

func TestUnknownFunctionReturnsZero(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	v := ip.evaluateExpression("nonexistent(1, 2)")
	assert.Equal(t, 0, v.I)
}

func TestDeffDefiBinding(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	ip.parseDefinitions("deff scale 2.5\ndefi offset 3\n")

	assert.Equal(t, float32(2.5), ip.getVar("scale").float())
	assert.Equal(t, 3, ip.getVar("offset").I)
}

func TestUserFunctionCallAndReturn(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	ip.parseDefinitions("defn addOne(v) { return v + 1; }\n")

	v := ip.evaluateExpression("addOne(41)")
	assert.Equal(t, float32(42), v.float())
}

func TestUserFunctionLoopWithPlusEquals(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	ip.parseDefinitions("defn sumTo(n) {\nint total = 0\nfor (int i = 1; i <= n; i++) {\ntotal += i\n}\nreturn total\n}\n")

	v := ip.evaluateExpression("sumTo(5)")
	assert.Equal(t, float32(15), v.float())
}

func TestArrayLiteralAndIndex(t *testing.T) {
	ip := newInterpreter(nil, 1, 1)
	ip.setVar("arr", ip.evaluateExpression("[1, 2, 3]"))

	v := ip.evaluateExpression("arr[1]")
	assert.Equal(t, float32(2), v.float())
}

func TestPixelsIndexReadsRawBuffer(t *testing.T) {
	pixels := []byte{7, 8, 9, 10}
	ip := newInterpreter(pixels, 1, 1)

	v := ip.evaluateExpression("pixels[2]")
	assert.Equal(t, float32(9), v.float())

	v = ip.evaluateExpression("pixels[99]")
	assert.Equal(t, float32(0), v.float())
}

func TestChunk4OutputAssignment(t *testing.T) {
	pixels := []byte{0, 0, 0, 0}
	equation := "defn solid() { return [9, 8, 7, 6]; }\nchunk4*:[r, g, b, a] = solid();"

	Apply(pixels, 1, 1, equation, 0)

	assert.Equal(t, []byte{9, 8, 7, 6}, pixels)
}
