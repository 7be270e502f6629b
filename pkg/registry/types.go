// Package registry holds the server-side entity model: buffers,
// uploaded images, exported surfaces, keybinds, click regions,
// screen-copy requests and the shared window_id namespace that spans
// IPC buffers together with the host's XDG views and layer-shell
// surfaces.
//
// Every list here is insertion-ordered and scanned linearly, matching
// original_source/transform_matrix.c's wl_list-based registry shape
// and spec.md §4.2/§5 ("no locking required... lookup by ID is a
// linear scan"). A Go slice plays the role of the original's
// doubly-linked list: appends preserve order, and removal compacts
// the slice rather than unlinking a node, which is the idiomatic Go
// analogue for the small cardinalities this protocol expects.
package registry

import (
	"fmt"

	"github.com/helixml/icm/pkg/proto"
)

// Layer is one of the five ordered scene layer trees a buffer can be
// parented under.
type Layer uint32

const (
	LayerBg Layer = iota
	LayerBottom
	LayerNormal
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBg:
		return "bg"
	case LayerBottom:
		return "bottom"
	case LayerNormal:
		return "normal"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("layer(%d)", uint32(l))
	}
}

// WindowState is the minimized/maximized/fullscreen/decorated
// bitfield shared by SET_WINDOW_STATE and the state query replies.
type WindowState uint32

const (
	StateMinimized WindowState = 1 << 0
	StateMaximized WindowState = 1 << 1
	StateFullscreen WindowState = 1 << 2
	StateDecorated  WindowState = 1 << 3
)

// DmabufPlane is one imported DMA-BUF plane: an owned fd plus its
// memory layout within the buffer object.
type DmabufPlane struct {
	FD       int
	Offset   uint32
	Stride   uint32
	Modifier uint64
}

// AnimationTarget captures a single component's start/target pair for
// the animation engine (spec.md §4.7).
type AnimationTarget struct {
	Start, Target, Current float32
}

// Animation is a buffer's in-flight animation state across every
// animatable component. Flags selects which components interpolate;
// the rest hold at Start.
type Animation struct {
	Flags uint32

	X, Y                 AnimationTarget
	ScaleX, ScaleY       AnimationTarget
	Opacity              AnimationTarget
	TranslateX, TranslateY, TranslateZ AnimationTarget
	RotateX, RotateY, RotateZ          AnimationTarget
	ScaleZ               AnimationTarget

	StartMs    int64
	DurationMs int64
	Animating  bool
	Started    bool // true once the first tick has captured StartMs
}

// Buffer is the central drawable: an IPC-created or DMA-BUF-imported
// surface that the server mirrors into the host scene graph.
//
// Field set mirrors spec.md §3's "Buffer" data model verbatim.
type Buffer struct {
	ID     uint32
	Width  uint32
	Height uint32
	Format uint32

	X, Y int32

	Pixels []byte // owned RGBA bytes, len == Width*Height*4
	Planes []DmabufPlane

	Visible    bool
	Dirty      bool
	Opacity    float32
	ScaleX     float32
	ScaleY     float32
	Rotation   float32 // degrees
	Layer      Layer
	ParentID   uint32
	Minimized  bool
	Maximized  bool
	Fullscreen bool
	Decorated  bool
	Focused    bool

	Matrix    [16]float32
	HasMatrix bool

	// TranslateX/Y/Z, RotateX/Y/Z and ScaleZ are the additional 3D
	// transform components SET_WINDOW_TRANSFORM_3D and the animation
	// engine drive; ScaleX/ScaleY above double as the 2D/3D scale
	// components shared by both.
	TranslateX, TranslateY, TranslateZ float32
	RotateX, RotateY, RotateZ          float32
	ScaleZ                             float32

	EffectEnabled   bool
	Equation        string
	EffectDirty     bool
	EffectData      []byte // shadow buffer, same size as Pixels
	UseEffectBuffer bool

	BlurEnabled bool
	BlurRadius  float32

	MeshWidth, MeshHeight uint32
	MeshVertices          []proto.MeshVertex

	Anim Animation

	SceneHandle any // opaque host scene-node handle, nil if unbound

	OwnerClient uint64 // correlation id of the creating client, 0 if host-originated
}

// NewBuffer allocates a Buffer with the defaults spec.md §4.2 mandates:
// opacity=1, scale=1, scale_z=1, blur_radius=0, decorated=0,
// visible=1, zeroed pixel memory.
func NewBuffer(id, width, height, format uint32) *Buffer {
	b := &Buffer{
		ID:      id,
		Width:   width,
		Height:  height,
		Format:  format,
		Pixels:  make([]byte, int(width)*int(height)*4),
		Visible: true,
		Opacity: 1,
		ScaleX:  1,
		ScaleY:  1,
		ScaleZ:  1,
	}
	b.Anim.ScaleZ = AnimationTarget{Start: 1, Target: 1, Current: 1}
	return b
}

// DestSize returns the scaled destination size the scene node is set
// to, per spec.md §3/§4.4.
func (b *Buffer) DestSize() (w, h float32) {
	return float32(b.Width) * b.ScaleX, float32(b.Height) * b.ScaleY
}

// EffectiveOpacity applies the blur-as-opacity-scaling approximation
// from spec.md §4.4: opacity scaled by (1 - 0.05*blur_radius) clamped
// to [0.5, 1] when blur is enabled.
func (b *Buffer) EffectiveOpacity() float32 {
	if !b.BlurEnabled {
		return b.Opacity
	}
	scale := 1 - 0.05*b.BlurRadius
	if scale < 0.5 {
		scale = 0.5
	}
	if scale > 1 {
		scale = 1
	}
	return b.Opacity * scale
}

// ActivePixels returns whichever backing array the scene should
// currently present: the effect shadow buffer if the effect pipeline
// is engaged, otherwise the logical pixels.
func (b *Buffer) ActivePixels() []byte {
	if b.UseEffectBuffer && b.EffectData != nil {
		return b.EffectData
	}
	return b.Pixels
}

// EnsureEffectData (re)allocates EffectData to match Width*Height*4
// when the effect is enabled with a non-empty equation, and clears it
// otherwise, per spec.md §3's invariant 2.
func (b *Buffer) EnsureEffectData() {
	want := b.EffectEnabled && b.Equation != ""
	size := int(b.Width) * int(b.Height) * 4
	if !want {
		b.EffectData = nil
		b.UseEffectBuffer = false
		return
	}
	if len(b.EffectData) != size {
		b.EffectData = make([]byte, size)
		b.EffectDirty = true
	}
}

// Image is client-uploaded static pixel data referenced by
// draw-uploaded-image operations; never directly scene-bound.
type Image struct {
	ID     uint32
	Width  uint32
	Height uint32
	Format uint32
	Data   []byte
}

// ExportedSurface is a placeholder render target for nested
// compositing.
type ExportedSurface struct {
	SurfaceID uint32
	WindowID  uint32
	Buffer    *Buffer
}

// Keybind is a registered global hotkey.
type Keybind struct {
	ID        uint32
	Modifiers uint32
	Keycode   uint32
	Owner     uint64 // client correlation id
}

// ClickRegion is a registered hit-test rectangle scoped to a window.
type ClickRegion struct {
	ID       uint32
	WindowID uint32
	X, Y     int32
	Width    uint32
	Height   uint32
	Owner    uint64
}

// Contains reports whether (x, y) falls within the region's rectangle.
func (r *ClickRegion) Contains(x, y int32) bool {
	return x >= r.X && y >= r.Y && x < r.X+int32(r.Width) && y < r.Y+int32(r.Height)
}

// ScreenCopyRequest is fulfilled on the next output frame.
type ScreenCopyRequest struct {
	ID            uint32
	X, Y          uint32
	Width, Height uint32
	Owner         uint64
}
