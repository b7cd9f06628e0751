package interact

import (
	"github.com/paulmach/orb"

	"mapmark/feature"
)

// dragThreshold is how far the pointer must travel before a press turns
// into a box-select drag, in world units.
const dragThreshold = 3.0

// SelectHandler implements click selection and drag-box selection. A
// plain click replaces the selection, a modifier click toggles
// incrementally, and dragging sweeps a rectangle; all three paths end in
// the same selection set on the manager.
type SelectHandler struct {
	m        *Manager
	downAt   orb.Point
	current  orb.Point
	additive bool
	pressed  bool
	dragging bool
}

// NewSelectHandler creates the selection handler.
func NewSelectHandler(m *Manager) *SelectHandler {
	return &SelectHandler{m: m}
}

// Name implements Handler.
func (h *SelectHandler) Name() string { return "select" }

// Down starts a potential click or box drag.
func (h *SelectHandler) Down(p Pointer) bool {
	// Let a vertex grab win: if a selected editable feature has a
	// vertex under the pointer, the modify handler takes the gesture.
	for _, f := range h.m.EditableSelection() {
		if _, _, ok := findVertex(f.Geometry, p.Pos, h.m.Tolerance); ok {
			return false
		}
	}
	h.downAt = p.Pos
	h.current = p.Pos
	h.additive = p.Shift
	h.pressed = true
	h.dragging = false
	return true
}

// Move upgrades the press to a box drag once it travels far enough.
func (h *SelectHandler) Move(p Pointer) {
	if !h.pressed {
		return
	}
	h.current = p.Pos
	if !h.dragging && planarDist(h.downAt, p.Pos) > dragThreshold {
		h.dragging = true
	}
}

// Up commits either the click selection or the box selection.
func (h *SelectHandler) Up(p Pointer) {
	if !h.pressed {
		return
	}
	h.pressed = false
	if h.dragging {
		h.dragging = false
		h.m.SelectBox(boundOf(h.downAt, p.Pos), h.additive)
		return
	}
	hit := h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
		return f.Kind.Selectable()
	})
	if hit == nil {
		if !h.additive {
			h.m.ClearSelection()
		}
		return
	}
	h.m.Select(hit.ID, h.additive)
}

// Abort cancels a pending click or drag.
func (h *SelectHandler) Abort() {
	h.pressed = false
	h.dragging = false
}

// Box returns the in-progress drag rectangle for front-end preview.
func (h *SelectHandler) Box() (orb.Bound, bool) {
	if !h.dragging {
		return orb.Bound{}, false
	}
	return boundOf(h.downAt, h.current), true
}

func boundOf(a, b orb.Point) orb.Bound {
	minX, maxX := a.X(), b.X()
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y(), b.Y()
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
}
