package scene

import "github.com/helixml/icm/pkg/registry"

// node is one headless scene entry: enough state to answer HitTest
// and to reorder within a layer, without any real rendering backend.
type node struct {
	id       int
	layer    registry.Layer
	x, y     int32
	w, h     float32
	enabled  bool
	windowID uint32
	pixels   []byte
	pixW     uint32
	pixH     uint32
}

// HeadlessHost is a minimal, dependency-free scene.Host: it keeps
// per-layer ordered node lists in memory and answers HitTest by
// scanning them, with no actual pixel presentation. It exists because
// the real scene graph this protocol binds to (wlroots' scene_buffer)
// is explicitly out of scope (spec.md §1) and lives entirely on a
// real compositor's side of the process boundary; this type is the
// stand-in a deployment's main() is expected to replace with a real
// binding, and is what this module's own end-to-end tests drive
// against.
type HeadlessHost struct {
	layers    map[registry.Layer][]*node
	byHandle  map[int]*node
	nextID    int
	scheduled int
}

// NewHeadlessHost constructs an empty HeadlessHost.
func NewHeadlessHost() *HeadlessHost {
	return &HeadlessHost{
		layers:   make(map[registry.Layer][]*node),
		byHandle: make(map[int]*node),
	}
}

// ScheduledFrames reports how many times ScheduleFrame has been
// called, for tests asserting a handler actually requested a redraw.
func (h *HeadlessHost) ScheduledFrames() int { return h.scheduled }

func (h *HeadlessHost) CreateBuffer(layer registry.Layer, windowID uint32, pixels []byte, w, h_ uint32, format uint32) (any, error) {
	h.nextID++
	n := &node{id: h.nextID, layer: layer, windowID: windowID, pixels: pixels, pixW: w, pixH: h_, enabled: true}
	h.layers[layer] = append(h.layers[layer], n)
	h.byHandle[n.id] = n
	return n.id, nil
}

func (h *HeadlessHost) SetBuffer(handle any, pixels []byte, w, h_ uint32) {
	n, ok := h.byHandle[handle.(int)]
	if !ok {
		return
	}
	n.pixels, n.pixW, n.pixH = pixels, w, h_
}

func (h *HeadlessHost) SetPosition(handle any, x, y int32) {
	if n, ok := h.byHandle[handle.(int)]; ok {
		n.x, n.y = x, y
	}
}

func (h *HeadlessHost) SetDestSize(handle any, w, h_ float32) {
	if n, ok := h.byHandle[handle.(int)]; ok {
		n.w, n.h = w, h_
	}
}

func (h *HeadlessHost) SetOpacity(handle any, opacity float32) {}

func (h *HeadlessHost) SetTransformMatrix(handle any, m [16]float32) {}

func (h *HeadlessHost) ClearTransformMatrix(handle any) {}

func (h *HeadlessHost) Reparent(handle any, layer registry.Layer) {
	id := handle.(int)
	n, ok := h.byHandle[id]
	if !ok || n.layer == layer {
		return
	}
	h.removeFromLayer(n)
	n.layer = layer
	h.layers[layer] = append(h.layers[layer], n)
}

func (h *HeadlessHost) Raise(handle any) {
	id := handle.(int)
	n, ok := h.byHandle[id]
	if !ok {
		return
	}
	h.removeFromLayer(n)
	h.layers[n.layer] = append(h.layers[n.layer], n)
}

func (h *HeadlessHost) Lower(handle any) {
	id := handle.(int)
	n, ok := h.byHandle[id]
	if !ok {
		return
	}
	h.removeFromLayer(n)
	h.layers[n.layer] = append([]*node{n}, h.layers[n.layer]...)
}

func (h *HeadlessHost) SetEnabled(handle any, enabled bool) {
	if n, ok := h.byHandle[handle.(int)]; ok {
		n.enabled = enabled
	}
}

func (h *HeadlessHost) Destroy(handle any) {
	id := handle.(int)
	n, ok := h.byHandle[id]
	if !ok {
		return
	}
	h.removeFromLayer(n)
	delete(h.byHandle, id)
}

// HitTest scans layer's nodes topmost-first (the tail of the slice is
// the most recently raised) for the node whose destination rect
// contains (x,y), returning surface-local coordinates.
func (h *HeadlessHost) HitTest(layer registry.Layer, x, y int32) (node any, windowID uint32, sx, sy int32, ok bool) {
	nodes := h.layers[layer]
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if !n.enabled {
			continue
		}
		w, hh := n.w, n.h
		if w == 0 {
			w = float32(n.pixW)
		}
		if hh == 0 {
			hh = float32(n.pixH)
		}
		if x < n.x || y < n.y || float32(x-n.x) >= w || float32(y-n.y) >= hh {
			continue
		}
		return n.id, n.windowID, x - n.x, y - n.y, true
	}
	return nil, 0, 0, 0, false
}

func (h *HeadlessHost) ScheduleFrame() { h.scheduled++ }

func (h *HeadlessHost) removeFromLayer(n *node) {
	list := h.layers[n.layer]
	for i, v := range list {
		if v == n {
			h.layers[n.layer] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
