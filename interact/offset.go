package interact

import (
	"errors"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/geometry"
	"mapmark/history"
)

// Side selects which side of the source a parallel offset lands on.
// Right/Left apply to lines (relative to the direction of travel),
// Outward/Inward to polygons.
type Side int

const (
	SideRight Side = iota
	SideLeft
	SideOutward
	SideInward
)

// ErrOffsetUnsupported is returned for geometries that cannot be offset.
var ErrOffsetUnsupported = errors.New("interact: geometry cannot be offset")

// Offset creates a new feature parallel to the source at the given
// perpendicular distance. The source feature is not mutated.
func (m *Manager) Offset(id string, distance float64, side Side) (*feature.Feature, error) {
	f, ok := m.store.Get(id)
	if !ok {
		return nil, errors.New("interact: unknown feature")
	}
	if distance <= 0 {
		return nil, errors.New("interact: offset distance must be positive")
	}

	var g orb.Geometry
	switch t := f.Geometry.(type) {
	case orb.LineString:
		d := distance
		if side == SideRight {
			d = -d
		}
		pts := offsetPath([]orb.Point(t), d, false)
		if len(pts) < 2 {
			return nil, ErrOffsetUnsupported
		}
		g = orb.LineString(pts)
	case orb.Polygon:
		if len(t) == 0 || len(t[0]) < 4 {
			return nil, ErrOffsetUnsupported
		}
		ring := t[0]
		// The left normal points into a counterclockwise ring.
		d := distance
		inwardIsLeft := signedArea(ring) > 0
		if (side == SideInward) != inwardIsLeft {
			d = -d
		}
		open := []orb.Point(ring[:len(ring)-1])
		pts := offsetPath(open, d, true)
		if len(pts) < 3 {
			return nil, ErrOffsetUnsupported
		}
		closed := make(orb.Ring, 0, len(pts)+1)
		closed = append(closed, pts...)
		closed = append(closed, pts[0])
		g = orb.Polygon{closed}
	default:
		return nil, ErrOffsetUnsupported
	}

	out := deriveFrom(f, g)
	rec := &feature.AddRecord{Store: m.store, Features: []*feature.Feature{out}}
	rec.Apply()
	m.hist.Record(&history.Batch{Name: "offset", Records: []history.Record{rec}})
	return out, nil
}

// offsetPath shifts a path sideways by d (positive = left of travel),
// joining adjacent offset segments at their intersection and falling
// back to an averaged normal at sharp or degenerate corners.
func offsetPath(pts []orb.Point, d float64, closed bool) []orb.Point {
	n := len(pts)
	if n < 2 {
		return nil
	}

	segA := make([]orb.Point, 0, n)
	segB := make([]orb.Point, 0, n)
	for i := 0; i < n; i++ {
		j := i + 1
		if j == n {
			if !closed {
				break
			}
			j = 0
		}
		normal, ok := geometry.Normal(pts[i], pts[j])
		if !ok {
			continue
		}
		off := orb.Point{normal.X() * d, normal.Y() * d}
		segA = append(segA, geometry.Translate(pts[i], off.X(), off.Y()))
		segB = append(segB, geometry.Translate(pts[j], off.X(), off.Y()))
	}
	if len(segA) == 0 {
		return nil
	}

	segCount := len(segA)
	out := make([]orb.Point, 0, n)
	if !closed {
		out = append(out, segA[0])
		for i := 0; i+1 < segCount; i++ {
			out = append(out, joinOffset(segA[i], segB[i], segA[i+1], segB[i+1]))
		}
		out = append(out, segB[segCount-1])
		return out
	}
	for i := 0; i < segCount; i++ {
		prev := (i + segCount - 1) % segCount
		out = append(out, joinOffset(segA[prev], segB[prev], segA[i], segB[i]))
	}
	return out
}

// joinOffset computes the corner point between two adjacent offset
// segments.
func joinOffset(a1, a2, b1, b2 orb.Point) orb.Point {
	if p, ok := geometry.LineIntersection(a1, a2, b1, b2); ok {
		// Cap runaway miters on near-parallel joins.
		if planarDist(p, a2) < planarDist(a1, a2)+planarDist(b1, b2) {
			return p
		}
	}
	return geometry.Midpoint(a2, b1)
}

// signedArea returns twice the signed area of a ring; positive means
// counterclockwise.
func signedArea(r orb.Ring) float64 {
	var sum float64
	for i := 0; i+1 < len(r); i++ {
		sum += r[i].X()*r[i+1].Y() - r[i+1].X()*r[i].Y()
	}
	return sum
}

// OffsetHandler drives offset by gesture: press picks the source line
// or polygon, dragging sets the distance and side from the cursor's
// perpendicular displacement, release commits.
type OffsetHandler struct {
	m        *Manager
	id       string
	distance float64
	side     Side
	dragging bool
}

// NewOffsetHandler creates the offset gesture handler.
func NewOffsetHandler(m *Manager) *OffsetHandler {
	return &OffsetHandler{m: m}
}

// Name implements Handler.
func (h *OffsetHandler) Name() string { return "offset" }

// Down picks the offset source under the pointer.
func (h *OffsetHandler) Down(p Pointer) bool {
	hit := h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
		switch f.Geometry.(type) {
		case orb.LineString, orb.Polygon:
			return true
		}
		return false
	})
	if hit == nil {
		return false
	}
	h.id = hit.ID
	h.distance = 0
	h.dragging = true
	return true
}

// Move updates the pending distance and side from the cursor.
func (h *OffsetHandler) Move(p Pointer) {
	if !h.dragging {
		return
	}
	f, ok := h.m.store.Get(h.id)
	if !ok {
		return
	}
	switch t := f.Geometry.(type) {
	case orb.LineString:
		seg, q := nearestOnLine(t, p.Pos)
		h.distance = planarDist(q, p.Pos)
		normal, ok := geometry.Normal(t[seg], t[seg+1])
		if !ok {
			return
		}
		dot := (p.Pos.X()-q.X())*normal.X() + (p.Pos.Y()-q.Y())*normal.Y()
		if dot >= 0 {
			h.side = SideLeft
		} else {
			h.side = SideRight
		}
	case orb.Polygon:
		if len(t) == 0 {
			return
		}
		ring := orb.LineString(t[0])
		_, q := nearestOnLine(ring, p.Pos)
		h.distance = planarDist(q, p.Pos)
		if ringContains(t[0], p.Pos) {
			h.side = SideInward
		} else {
			h.side = SideOutward
		}
	}
}

// Up commits the offset when the drag produced a usable distance.
func (h *OffsetHandler) Up(p Pointer) {
	if !h.dragging {
		return
	}
	h.dragging = false
	if h.distance < 1e-9 {
		return
	}
	h.m.Offset(h.id, h.distance, h.side)
}

// Abort discards the pending offset.
func (h *OffsetHandler) Abort() {
	h.dragging = false
	h.distance = 0
}

// Distance returns the pending drag distance for front-end preview.
func (h *OffsetHandler) Distance() float64 {
	return h.distance
}

// ringContains is a ray-cast point-in-ring test.
func ringContains(r orb.Ring, p orb.Point) bool {
	inside := false
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		xi, yi := r[i].X(), r[i].Y()
		xj, yj := r[j].X(), r[j].Y()
		if (yi > p.Y()) != (yj > p.Y()) {
			x := xi + (p.Y()-yi)/(yj-yi)*(xj-xi)
			if p.X() < x {
				inside = !inside
			}
		}
	}
	return inside
}
