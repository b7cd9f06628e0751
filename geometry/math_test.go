package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAngle(t *testing.T) {
	if a := Angle(orb.Point{0, 0}, orb.Point{10, 0}); !near(a, 0) {
		t.Errorf("Expected angle 0 for horizontal vector, got %v", a)
	}
	if a := Angle(orb.Point{0, 0}, orb.Point{0, 5}); !near(a, math.Pi/2) {
		t.Errorf("Expected angle pi/2 for vertical vector, got %v", a)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	p := Rotate(orb.Point{1, 0}, orb.Point{0, 0}, math.Pi/2)
	if !near(p.X(), 0) || !near(p.Y(), 1) {
		t.Errorf("Expected (0, 1), got (%v, %v)", p.X(), p.Y())
	}
}

func TestScaleAroundOrigin(t *testing.T) {
	p := Scale(orb.Point{3, 4}, orb.Point{1, 2}, 2, 0.5)
	if !near(p.X(), 5) || !near(p.Y(), 3) {
		t.Errorf("Expected (5, 3), got (%v, %v)", p.X(), p.Y())
	}
}

func TestClosestOnSegment(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{10, 0}

	q, tt := ClosestOnSegment(a, b, orb.Point{5, 3})
	if !near(q.X(), 5) || !near(q.Y(), 0) {
		t.Errorf("Expected projection (5, 0), got (%v, %v)", q.X(), q.Y())
	}
	if !near(tt, 0.5) {
		t.Errorf("Expected t=0.5, got %v", tt)
	}

	// Beyond the end clamps to the endpoint.
	q, tt = ClosestOnSegment(a, b, orb.Point{15, 1})
	if !near(q.X(), 10) || !near(tt, 1) {
		t.Errorf("Expected clamp to endpoint, got (%v, %v) t=%v", q.X(), q.Y(), tt)
	}
}

func TestNormal(t *testing.T) {
	n, ok := Normal(orb.Point{0, 0}, orb.Point{10, 0})
	if !ok {
		t.Fatal("Expected a normal for a non-degenerate segment")
	}
	if !near(n.X(), 0) || !near(n.Y(), 1) {
		t.Errorf("Expected left normal (0, 1), got (%v, %v)", n.X(), n.Y())
	}

	if _, ok := Normal(orb.Point{3, 3}, orb.Point{3, 3}); ok {
		t.Error("Expected no normal for a degenerate segment")
	}
}

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(
		orb.Point{0, 0}, orb.Point{10, 10},
		orb.Point{0, 10}, orb.Point{10, 0},
	)
	if !ok {
		t.Fatal("Expected an intersection")
	}
	if !near(p.X(), 5) || !near(p.Y(), 5) {
		t.Errorf("Expected (5, 5), got (%v, %v)", p.X(), p.Y())
	}

	_, ok = LineIntersection(
		orb.Point{0, 0}, orb.Point{10, 0},
		orb.Point{0, 1}, orb.Point{10, 1},
	)
	if ok {
		t.Error("Expected no intersection for parallel lines")
	}
}

func TestMapPointsDoesNotMutate(t *testing.T) {
	line := orb.LineString{{0, 0}, {1, 1}}
	out := MapPoints(line, func(p orb.Point) orb.Point {
		return Translate(p, 10, 0)
	}).(orb.LineString)

	if !near(line[0].X(), 0) {
		t.Errorf("Expected input untouched, got %v", line[0])
	}
	if !near(out[0].X(), 10) || !near(out[1].X(), 11) {
		t.Errorf("Expected translated output, got %v", out)
	}
}

func TestTranslateGeometryPolygon(t *testing.T) {
	poly := orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 0}}}
	out := TranslateGeometry(poly, 1, 1).(orb.Polygon)
	if !near(out[0][0].X(), 1) || !near(out[0][0].Y(), 1) {
		t.Errorf("Expected translated ring start (1, 1), got %v", out[0][0])
	}
	if !near(poly[0][0].X(), 0) {
		t.Error("Expected source polygon untouched")
	}
}
