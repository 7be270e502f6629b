// Package scene reconciles the buffer registry against the host
// compositor's scene graph every output frame, per spec.md §4.4. The
// actual scene graph (wlroots' scene_buffer, in the system this
// protocol was extracted from) lives entirely on the host side of the
// process boundary — native XDG/layer-shell handling is explicitly out
// of scope (spec.md §1 Non-goals) — so this package defines the
// collaborator contract spec.md §6 lists and a host-agnostic
// reconciler against it, grounded directly on spec.md since no single
// teacher file owns a scene-graph binding of this shape.
package scene

import "github.com/helixml/icm/pkg/registry"

// Host is the scene-host collaborator contract from spec.md §6. A
// concrete implementation binds these to the real compositor's scene
// API; tests and any headless mode use a fake.
type Host interface {
	CreateBuffer(layer registry.Layer, windowID uint32, pixels []byte, w, h, format uint32) (handle any, err error)
	SetBuffer(handle any, pixels []byte, w, h uint32)
	SetPosition(handle any, x, y int32)
	SetDestSize(handle any, w, h float32)
	SetOpacity(handle any, opacity float32)
	SetTransformMatrix(handle any, m [16]float32)
	ClearTransformMatrix(handle any)
	Reparent(handle any, layer registry.Layer)
	Raise(handle any)
	Lower(handle any)
	SetEnabled(handle any, enabled bool)
	Destroy(handle any)

	HitTest(layer registry.Layer, x, y int32) (node any, windowID uint32, sx, sy int32, ok bool)
	ScheduleFrame()
}

// Sync reconciles one buffer's scene binding, per spec.md §4.4's
// per-frame walk:
//   - create the node if missing (and the buffer has pixel data and is
//     visible);
//   - destroy it if the buffer became invisible;
//   - if dirty, swap in the buffer's current backing array and clear
//     dirty;
//   - set position, destination size, opacity (blur-scaled), and
//     transform matrix;
//   - reparent to the buffer's current layer.
func Sync(b *registry.Buffer, host Host) error {
	if !b.Visible || len(b.Pixels) == 0 {
		if b.SceneHandle != nil {
			host.Destroy(b.SceneHandle)
			b.SceneHandle = nil
		}
		return nil
	}

	if b.SceneHandle == nil {
		handle, err := host.CreateBuffer(b.Layer, b.ID, b.ActivePixels(), b.Width, b.Height, b.Format)
		if err != nil {
			return err
		}
		b.SceneHandle = handle
	}

	if b.Dirty {
		host.SetBuffer(b.SceneHandle, b.ActivePixels(), b.Width, b.Height)
		b.Dirty = false
	}

	host.SetPosition(b.SceneHandle, b.X, b.Y)
	w, h := b.DestSize()
	host.SetDestSize(b.SceneHandle, w, h)
	host.SetOpacity(b.SceneHandle, b.EffectiveOpacity())

	if b.HasMatrix {
		host.SetTransformMatrix(b.SceneHandle, b.Matrix)
	} else {
		host.ClearTransformMatrix(b.SceneHandle)
	}

	host.Reparent(b.SceneHandle, b.Layer)
	host.SetEnabled(b.SceneHandle, b.Visible)

	return nil
}

// SyncAll walks every buffer in reg, in insertion order, per spec.md
// §4.4's "server walks the buffer list and reconciles."
func SyncAll(reg *registry.Registry, host Host) error {
	for _, b := range reg.Buffers.All() {
		if err := Sync(b, host); err != nil {
			return err
		}
	}
	return nil
}

// Raise reorders b's scene node to the top of its current layer tree.
func Raise(b *registry.Buffer, host Host) {
	if b.SceneHandle != nil {
		host.Raise(b.SceneHandle)
	}
}

// Lower reorders b's scene node to the bottom of its current layer tree.
func Lower(b *registry.Buffer, host Host) {
	if b.SceneHandle != nil {
		host.Lower(b.SceneHandle)
	}
}
