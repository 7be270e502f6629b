package xform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBuildIdentityWhenNeutral(t *testing.T) {
	m := Build(Translate{}, Rotate{}, Scale{X: 1, Y: 1, Z: 1})
	assert.Equal(t, Identity(), m)
}

func TestBuildTranslationOnly(t *testing.T) {
	m := Build(Translate{X: 10, Y: -5, Z: 2}, Rotate{}, Scale{X: 1, Y: 1, Z: 1})
	// Column-major 4x4: translation lives in column 3 (indices 12,13,14).
	assert.InDelta(t, 10, m[12], 1e-5)
	assert.InDelta(t, -5, m[13], 1e-5)
	assert.InDelta(t, 2, m[14], 1e-5)
	assert.InDelta(t, 1, m[15], 1e-5)
}

func TestBuildScaleOnly(t *testing.T) {
	m := Build(Translate{}, Rotate{}, Scale{X: 2, Y: 3, Z: 4})
	assert.InDelta(t, 2, m[0], 1e-5)
	assert.InDelta(t, 3, m[5], 1e-5)
	assert.InDelta(t, 4, m[10], 1e-5)
}

func TestBuildMatchesManualComposition(t *testing.T) {
	tr := Translate{X: 1, Y: 2, Z: 3}
	rot := Rotate{X: 10, Y: 20, Z: 30}
	sc := Scale{X: 2, Y: 2, Z: 2}

	want := mgl32.Translate3D(tr.X, tr.Y, tr.Z).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rot.X))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rot.Y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rot.Z))).
		Mul4(mgl32.Scale3D(sc.X, sc.Y, sc.Z))

	got := Build(tr, rot, sc)
	assert.Equal(t, [16]float32(want), got)
}
