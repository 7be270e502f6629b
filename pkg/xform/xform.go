// Package xform builds the 4x4 column-major transform matrices used
// by SET_WINDOW_TRANSFORM_3D/ANIMATE_WINDOW, per spec.md §4.4/§4.8.
// The matrix itself is stored and cleared on registry.Buffer (Matrix,
// HasMatrix), not in a separate scene-node-keyed table: this package
// only builds matrices, it doesn't hold them.
package xform

import "github.com/go-gl/mathgl/mgl32"

// Translate, Rotate (degrees) and Scale are the three named
// parameters build_matrix composes in spec.md §4.8's mandated order.
type Translate struct{ X, Y, Z float32 }
type Rotate struct{ X, Y, Z float32 }
type Scale struct{ X, Y, Z float32 }

// Build constructs a column-major 4x4 matrix applying, in order:
// scale, then Z-rotation, then Y-rotation, then X-rotation, then
// translation — spec.md §4.8's mandated composition, expressed with
// github.com/go-gl/mathgl/mgl32 instead of hand-rolled trig (see
// SPEC_FULL.md REDESIGN FLAGS).
func Build(t Translate, r Rotate, s Scale) [16]float32 {
	m := mgl32.Translate3D(t.X, t.Y, t.Z).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(r.X))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(r.Y))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(r.Z))).
		Mul4(mgl32.Scale3D(s.X, s.Y, s.Z))
	return [16]float32(m)
}

// Identity returns the 4x4 identity matrix in the same column-major
// layout Build produces.
func Identity() [16]float32 {
	return [16]float32(mgl32.Ident4())
}
