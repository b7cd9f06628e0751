package interact

import (
	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/geometry"
	"mapmark/history"
)

// TransformMode selects which transform a drag applies.
type TransformMode int

const (
	TransformMove TransformMode = iota
	TransformRotate
	TransformScale
	TransformStretch
)

// String returns the mode name for display.
func (t TransformMode) String() string {
	switch t {
	case TransformMove:
		return "move"
	case TransformRotate:
		return "rotate"
	case TransformScale:
		return "scale"
	case TransformStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// TransformHandler applies move/rotate/scale/stretch drags to its own
// dedicated feature collection, populated from the selection when the
// transform tool activates and discarded when it deactivates. Measure
// features only ever translate: rotate, scale, and stretch would break
// the semantic length they carry, so those modes skip them.
type TransformHandler struct {
	m    *Manager
	mode TransformMode

	ids    map[string]bool
	order  []string
	before map[string]orb.Geometry

	anchor   orb.Point
	start    orb.Point
	dragging bool
}

// NewTransformHandler creates a transform handler populated from the
// current selection.
func NewTransformHandler(m *Manager) *TransformHandler {
	h := &TransformHandler{
		m:    m,
		ids:  make(map[string]bool),
		mode: TransformMove,
	}
	for _, id := range m.SelectedIDs() {
		if _, ok := m.store.Get(id); ok {
			h.ids[id] = true
			h.order = append(h.order, id)
		}
	}
	return h
}

// Name implements Handler.
func (h *TransformHandler) Name() string { return "transform" }

// SetMode switches the transform applied by the next drag.
func (h *TransformHandler) SetMode(mode TransformMode) {
	h.mode = mode
}

// Mode returns the current transform mode.
func (h *TransformHandler) Mode() TransformMode { return h.mode }

// IDs returns the dedicated transform collection in selection order.
func (h *TransformHandler) IDs() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Down starts a transform drag when the press lands on a member of the
// transform collection.
func (h *TransformHandler) Down(p Pointer) bool {
	hit := h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
		return h.ids[f.ID]
	})
	if hit == nil {
		return false
	}
	h.before = make(map[string]orb.Geometry, len(h.order))
	var bound orb.Bound
	first := true
	for _, id := range h.order {
		f, ok := h.m.store.Get(id)
		if !ok {
			continue
		}
		h.before[id] = orb.Clone(f.Geometry)
		if first {
			bound = f.Geometry.Bound()
			first = false
		} else {
			bound = bound.Union(f.Geometry.Bound())
		}
	}
	h.anchor = geometry.Midpoint(bound.Min, bound.Max)
	h.start = p.Pos
	h.dragging = true
	return true
}

// Move applies the current transform relative to the drag start.
func (h *TransformHandler) Move(p Pointer) {
	if !h.dragging {
		return
	}
	for _, id := range h.order {
		before, ok := h.before[id]
		if !ok {
			continue
		}
		f, ok := h.m.store.Get(id)
		if !ok {
			continue
		}
		h.m.store.SetGeometry(id, h.apply(f, before, p.Pos))
	}
}

// apply computes the transformed geometry for one feature.
func (h *TransformHandler) apply(f *feature.Feature, before orb.Geometry, cursor orb.Point) orb.Geometry {
	if h.mode != TransformMove && f.Kind == feature.KindMeasure {
		// Translate-only: length is preserved by construction.
		return before
	}
	switch h.mode {
	case TransformMove:
		return geometry.TranslateGeometry(before, cursor.X()-h.start.X(), cursor.Y()-h.start.Y())
	case TransformRotate:
		a0 := geometry.Angle(h.anchor, h.start)
		a1 := geometry.Angle(h.anchor, cursor)
		return geometry.RotateGeometry(before, h.anchor, a1-a0)
	case TransformScale:
		d0 := planarDist(h.anchor, h.start)
		d1 := planarDist(h.anchor, cursor)
		if d0 == 0 {
			return before
		}
		s := d1 / d0
		return geometry.ScaleGeometry(before, h.anchor, s, s)
	case TransformStretch:
		dx0 := h.start.X() - h.anchor.X()
		dx1 := cursor.X() - h.anchor.X()
		if dx0 == 0 {
			return before
		}
		return geometry.ScaleGeometry(before, h.anchor, dx1/dx0, 1)
	}
	return before
}

// Up commits the drag as one atomic batch of geometry records.
func (h *TransformHandler) Up(p Pointer) {
	if !h.dragging {
		return
	}
	h.dragging = false
	var records []history.Record
	for _, id := range h.order {
		before, ok := h.before[id]
		if !ok {
			continue
		}
		f, ok := h.m.store.Get(id)
		if !ok {
			continue
		}
		if orb.Equal(before, f.Geometry) {
			continue
		}
		records = append(records, &feature.GeometryRecord{
			Store:  h.m.store,
			ID:     id,
			Before: before,
			After:  orb.Clone(f.Geometry),
		})
	}
	h.before = nil
	if len(records) == 0 {
		return
	}
	h.m.hist.Record(&history.Batch{Name: "transform " + h.mode.String(), Records: records})
}

// Abort restores the pre-drag geometries.
func (h *TransformHandler) Abort() {
	if !h.dragging {
		return
	}
	h.dragging = false
	for _, id := range h.order {
		if before, ok := h.before[id]; ok {
			h.m.store.SetGeometry(id, before)
		}
	}
	h.before = nil
}
