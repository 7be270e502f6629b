package registry

import "sync/atomic"

// Identifiable is implemented by every entity kept in an EntityList.
type Identifiable interface {
	GetID() uint32
}

func (b *Buffer) GetID() uint32            { return b.ID }
func (i *Image) GetID() uint32             { return i.ID }
func (s *ExportedSurface) GetID() uint32   { return s.SurfaceID }
func (k *Keybind) GetID() uint32           { return k.ID }
func (r *ClickRegion) GetID() uint32       { return r.ID }
func (r *ScreenCopyRequest) GetID() uint32 { return r.ID }

// EntityList is an insertion-ordered, linearly-scanned collection,
// the Go analogue of the reference implementation's wl_list-based
// registries (see package doc).
type EntityList[T Identifiable] struct {
	items []T
}

// Add appends item to the end of the list.
func (l *EntityList[T]) Add(item T) {
	l.items = append(l.items, item)
}

// Find returns the entity with the given id, if present.
func (l *EntityList[T]) Find(id uint32) (T, bool) {
	for _, it := range l.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the entity with the given id, preserving the order
// of the remaining entries. Reports whether anything was removed.
func (l *EntityList[T]) Remove(id uint32) bool {
	for i, it := range l.items {
		if it.GetID() == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveMatching deletes every entity for which match returns true,
// preserving order. Used for owner-scoped cleanup (client disconnect,
// window teardown) where several entries can be removed at once.
func (l *EntityList[T]) RemoveMatching(match func(T) bool) int {
	kept := l.items[:0]
	removed := 0
	for _, it := range l.items {
		if match(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	l.items = kept
	return removed
}

// All returns the list's entities in insertion order. Callers must
// not mutate the returned slice.
func (l *EntityList[T]) All() []T { return l.items }

// Len reports the number of entities currently held.
func (l *EntityList[T]) Len() int { return len(l.items) }

// WindowKind distinguishes the three namespaces sharing the window_id
// space (spec.md §3).
type WindowKind int

const (
	KindBuffer WindowKind = iota
	KindView
	KindLayerSurface
)

// ExternalSurface is the minimal record kept for a host-originated
// XDG view or layer-shell surface: spec.md scopes XDG/layer-shell
// handling to "only the mapping from their surfaces to IPC window
// IDs" (§1 Non-goals), so this holds just enough to participate in
// window_id resolution and scene hit-testing.
type ExternalSurface struct {
	WindowID    uint32
	Kind        WindowKind
	SceneHandle any
	Title       string
	AppID       string
}

func (s *ExternalSurface) GetID() uint32 { return s.WindowID }

// DecorationDefaults mirrors SET_WINDOW_DECORATIONS/REQUEST_WINDOW_DECORATIONS
// server-side defaults (spec.md §2 "Decoration renderer").
type DecorationDefaults struct {
	ServerSide     bool
	TitleHeight    uint32
	BorderWidth    uint32
	ColorFocused   uint32
	ColorUnfocused uint32
}

// ScreenEffect is the full-screen background pixel-effect pipeline
// (spec.md §2 "Screen-effect pipeline", §4.6).
type ScreenEffect struct {
	Enabled  bool
	Equation string
	Buffer   *Buffer // full output-size target, always re-run while enabled
}

// Registry owns the server's six entity lists, the external-surface
// namespaces, and the shared window_id counter, matching spec.md §3's
// "Server" data model.
type Registry struct {
	Buffers      EntityList[*Buffer]
	Images       EntityList[*Image]
	Surfaces     EntityList[*ExportedSurface]
	Keybinds     EntityList[*Keybind]
	ClickRegions EntityList[*ClickRegion]
	ScreenCopies EntityList[*ScreenCopyRequest]

	Views         []*ExternalSurface
	LayerSurfaces []*ExternalSurface

	Decorations DecorationDefaults
	Screen      ScreenEffect

	nextWindowID atomic.Uint32
	nextOtherID  atomic.Uint32
}

// New constructs an empty Registry with sane decoration defaults.
func New() *Registry {
	r := &Registry{
		Decorations: DecorationDefaults{
			ServerSide:   true,
			TitleHeight:  28,
			BorderWidth:  1,
			ColorFocused: 0x3B82F6FF,
			ColorUnfocused: 0x6B7280FF,
		},
	}
	r.nextWindowID.Store(1)
	r.nextOtherID.Store(1)
	return r
}

// NextWindowID allocates the next id in the shared window_id
// namespace, spanning IPC buffers, XDG views, and layer surfaces
// (spec.md §3: "a single monotonically increasing u32 namespace").
func (r *Registry) NextWindowID() uint32 { return r.nextWindowID.Add(1) - 1 }

// NextID allocates an id for a non-window entity (image, keybind,
// click region, screen-copy request, exported surface, DMA-BUF
// buffer). These do not share the window_id namespace.
func (r *Registry) NextID() uint32 { return r.nextOtherID.Add(1) - 1 }

// ResolveWindow performs the three-way window_id search spec.md §3/§9
// calls out: buffer, then view, then layer surface. The three sets
// never alias, so at most one of buf/ext is non-nil when ok is true.
func (r *Registry) ResolveWindow(id uint32) (kind WindowKind, buf *Buffer, ext *ExternalSurface, ok bool) {
	if b, found := r.Buffers.Find(id); found {
		return KindBuffer, b, nil, true
	}
	for _, v := range r.Views {
		if v.WindowID == id {
			return KindView, nil, v, true
		}
	}
	for _, ls := range r.LayerSurfaces {
		if ls.WindowID == id {
			return KindLayerSurface, nil, ls, true
		}
	}
	return 0, nil, nil, false
}

// RemoveClientOwned clears every keybind, click region, and
// screen-copy request owned by the given client correlation id,
// enforcing spec.md §3's disconnect invariant.
func (r *Registry) RemoveClientOwned(owner uint64) {
	r.Keybinds.RemoveMatching(func(k *Keybind) bool { return k.Owner == owner })
	r.ClickRegions.RemoveMatching(func(cr *ClickRegion) bool { return cr.Owner == owner })
	r.ScreenCopies.RemoveMatching(func(sc *ScreenCopyRequest) bool { return sc.Owner == owner })
}

// RemoveClickRegionsForWindow clears click regions targeting a window
// that has just been unmapped, per spec.md §3's window-unmap invariant.
func (r *Registry) RemoveClickRegionsForWindow(windowID uint32) {
	r.ClickRegions.RemoveMatching(func(cr *ClickRegion) bool { return cr.WindowID == windowID })
}
