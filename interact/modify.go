package interact

import (
	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/geometry"
	"mapmark/history"
)

// ModifyHandler drags individual vertices of selected, editable
// features. Geometry edits go through the store so dependent properties
// (the cached measure distance) recompute on every vertex change, and
// the whole drag commits as one reversible record on release.
type ModifyHandler struct {
	m        *Manager
	id       string
	ring     int
	vertex   int
	before   orb.Geometry
	dragging bool
}

// NewModifyHandler creates the vertex-modify handler.
func NewModifyHandler(m *Manager) *ModifyHandler {
	return &ModifyHandler{m: m}
}

// Name implements Handler.
func (h *ModifyHandler) Name() string { return "modify" }

// Down grabs the vertex under the pointer, if a selected editable
// feature has one. Features held by an active transform are excluded.
func (h *ModifyHandler) Down(p Pointer) bool {
	for _, f := range h.m.EditableSelection() {
		ring, vertex, ok := findVertex(f.Geometry, p.Pos, h.m.Tolerance)
		if !ok {
			continue
		}
		h.id = f.ID
		h.ring = ring
		h.vertex = vertex
		h.before = orb.Clone(f.Geometry)
		h.dragging = true
		if h.m.snapper != nil {
			// Never snap a vertex to the feature it belongs to.
			h.m.snapper.Ignore(f.ID)
		}
		return true
	}
	return false
}

// Move drags the grabbed vertex.
func (h *ModifyHandler) Move(p Pointer) {
	if !h.dragging {
		return
	}
	f, ok := h.m.store.Get(h.id)
	if !ok {
		h.dragging = false
		return
	}
	pos := h.m.SnapPoint(p.Pos)
	h.m.store.SetGeometry(h.id, setVertex(f.Geometry, h.ring, h.vertex, pos))
}

// Up commits the drag as one undoable geometry record.
func (h *ModifyHandler) Up(p Pointer) {
	if !h.dragging {
		return
	}
	h.dragging = false
	if h.m.snapper != nil {
		h.m.snapper.Unignore(h.id)
	}
	f, ok := h.m.store.Get(h.id)
	if !ok {
		return
	}
	h.m.hist.Record(&history.Batch{Name: "modify", Records: []history.Record{
		&feature.GeometryRecord{
			Store:  h.m.store,
			ID:     h.id,
			Before: h.before,
			After:  orb.Clone(f.Geometry),
		},
	}})
}

// Abort restores the pre-drag geometry.
func (h *ModifyHandler) Abort() {
	if !h.dragging {
		return
	}
	h.dragging = false
	if h.m.snapper != nil {
		h.m.snapper.Unignore(h.id)
	}
	h.m.store.SetGeometry(h.id, h.before)
}

// findVertex locates the vertex of g within tol of p. ring is -1 for
// non-polygon geometries.
func findVertex(g orb.Geometry, p orb.Point, tol float64) (ring, vertex int, ok bool) {
	best := tol
	ring, vertex = -1, -1
	switch t := g.(type) {
	case orb.LineString:
		for i, v := range t {
			if d := planarDist(v, p); d <= best {
				best, vertex, ok = d, i, true
			}
		}
	case orb.Polygon:
		for ri, r := range t {
			for i, v := range r {
				if d := planarDist(v, p); d <= best {
					best, ring, vertex, ok = d, ri, i, true
				}
			}
		}
	case orb.Point:
		if d := planarDist(t, p); d <= best {
			vertex, ok = 0, true
		}
	}
	return ring, vertex, ok
}

// setVertex returns a copy of g with one vertex moved. Moving an
// endpoint of a closed ring moves both the first and last coordinate so
// the ring stays closed.
func setVertex(g orb.Geometry, ring, vertex int, to orb.Point) orb.Geometry {
	switch t := g.(type) {
	case orb.LineString:
		out := make(orb.LineString, len(t))
		copy(out, t)
		if vertex >= 0 && vertex < len(out) {
			out[vertex] = to
		}
		return out
	case orb.Polygon:
		out := geometry.MapPoints(t, func(p orb.Point) orb.Point { return p }).(orb.Polygon)
		if ring >= 0 && ring < len(out) {
			r := out[ring]
			if vertex >= 0 && vertex < len(r) {
				r[vertex] = to
				closed := len(r) > 1 && (vertex == 0 || vertex == len(r)-1)
				if closed {
					r[0] = to
					r[len(r)-1] = to
				}
			}
		}
		return out
	case orb.Point:
		return to
	}
	return g
}
