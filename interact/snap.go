package interact

import (
	"math"

	"github.com/paulmach/orb"

	"mapmark/geometry"
)

// Snapper finds snap targets near a pointer position: existing vertices
// first, then the closest point on a nearby edge. It is installed after
// the drawing handler so candidates are evaluated against up-to-date
// geometry, and it never captures gestures itself.
type Snapper struct {
	m      *Manager
	ignore map[string]bool
}

// NewSnapper creates a snapping helper bound to the manager's store.
func NewSnapper(m *Manager) *Snapper {
	return &Snapper{m: m, ignore: make(map[string]bool)}
}

// Name implements Handler.
func (s *Snapper) Name() string { return "snap" }

// Down implements Handler; the snapper never captures.
func (s *Snapper) Down(Pointer) bool { return false }

// Move implements Handler.
func (s *Snapper) Move(Pointer) {}

// Up implements Handler.
func (s *Snapper) Up(Pointer) {}

// Abort implements Handler.
func (s *Snapper) Abort() {}

// Ignore excludes a feature from snap candidates, typically the one
// currently being drawn or dragged.
func (s *Snapper) Ignore(id string) {
	s.ignore[id] = true
}

// Unignore re-admits a feature as a snap candidate.
func (s *Snapper) Unignore(id string) {
	delete(s.ignore, id)
}

// Snap returns the snap target for p, preferring vertices over edges.
// ok is false when nothing lies within the tolerance radius.
func (s *Snapper) Snap(p orb.Point) (orb.Point, bool) {
	tol := s.m.Tolerance
	box := orb.Bound{
		Min: orb.Point{p.X() - tol, p.Y() - tol},
		Max: orb.Point{p.X() + tol, p.Y() + tol},
	}

	bestVertex := orb.Point{}
	bestVertexDist := tol
	foundVertex := false
	bestEdge := orb.Point{}
	bestEdgeDist := tol
	foundEdge := false

	for _, f := range s.m.store.Search(box) {
		if s.ignore[f.ID] {
			continue
		}
		for _, seg := range segmentsOf(f.Geometry) {
			for _, v := range []orb.Point{seg[0], seg[1]} {
				if d := planarDist(v, p); d <= bestVertexDist {
					bestVertex = v
					bestVertexDist = d
					foundVertex = true
				}
			}
			q, _ := geometry.ClosestOnSegment(seg[0], seg[1], p)
			if d := planarDist(q, p); d <= bestEdgeDist {
				bestEdge = q
				bestEdgeDist = d
				foundEdge = true
			}
		}
		if pt, ok := f.Geometry.(orb.Point); ok {
			if d := planarDist(pt, p); d <= bestVertexDist {
				bestVertex = pt
				bestVertexDist = d
				foundVertex = true
			}
		}
	}

	if foundVertex {
		return bestVertex, true
	}
	if foundEdge {
		return bestEdge, true
	}
	return orb.Point{}, false
}

// segmentsOf flattens a geometry into its line segments.
func segmentsOf(g orb.Geometry) [][2]orb.Point {
	var out [][2]orb.Point
	appendLine := func(pts []orb.Point) {
		for i := 0; i+1 < len(pts); i++ {
			out = append(out, [2]orb.Point{pts[i], pts[i+1]})
		}
	}
	switch t := g.(type) {
	case orb.LineString:
		appendLine(t)
	case orb.MultiLineString:
		for _, ls := range t {
			appendLine(ls)
		}
	case orb.Ring:
		appendLine(t)
	case orb.Polygon:
		for _, r := range t {
			appendLine(r)
		}
	case orb.Collection:
		for _, c := range t {
			out = append(out, segmentsOf(c)...)
		}
	}
	return out
}

func planarDist(a, b orb.Point) float64 {
	return math.Hypot(a.X()-b.X(), a.Y()-b.Y())
}
