// Package geometry contains the planar math helpers used by the
// interaction handlers and the style resolver.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Angle returns the angle of the vector from a to b, in radians.
func Angle(a, b orb.Point) float64 {
	return math.Atan2(b.Y()-a.Y(), b.X()-a.X())
}

// Translate returns p shifted by (dx, dy).
func Translate(p orb.Point, dx, dy float64) orb.Point {
	return orb.Point{p.X() + dx, p.Y() + dy}
}

// Rotate returns p rotated around origin by angle radians.
func Rotate(p, origin orb.Point, angle float64) orb.Point {
	sin, cos := math.Sincos(angle)
	dx := p.X() - origin.X()
	dy := p.Y() - origin.Y()
	return orb.Point{
		origin.X() + dx*cos - dy*sin,
		origin.Y() + dx*sin + dy*cos,
	}
}

// Scale returns p scaled around origin by (sx, sy).
func Scale(p, origin orb.Point, sx, sy float64) orb.Point {
	return orb.Point{
		origin.X() + (p.X()-origin.X())*sx,
		origin.Y() + (p.Y()-origin.Y())*sy,
	}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a.X() + b.X()) / 2, (a.Y() + b.Y()) / 2}
}

// ClosestOnSegment projects p onto the segment a-b and returns the
// closest point along with its normalized position t in [0, 1].
func ClosestOnSegment(a, b, p orb.Point) (orb.Point, float64) {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((p.X()-a.X())*dx + (p.Y()-a.Y())*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a.X() + t*dx, a.Y() + t*dy}, t
}

// Normal returns the unit normal of the segment a-b, pointing to the
// left of the direction of travel. Returns false for a degenerate segment.
func Normal(a, b orb.Point) (orb.Point, bool) {
	dx := b.X() - a.X()
	dy := b.Y() - a.Y()
	length := math.Hypot(dx, dy)
	if length == 0 {
		return orb.Point{}, false
	}
	return orb.Point{-dy / length, dx / length}, true
}

// LineIntersection returns the intersection of the infinite lines
// through (a1, a2) and (b1, b2). Returns false for parallel lines.
func LineIntersection(a1, a2, b1, b2 orb.Point) (orb.Point, bool) {
	d1x := a2.X() - a1.X()
	d1y := a2.Y() - a1.Y()
	d2x := b2.X() - b1.X()
	d2y := b2.Y() - b1.Y()
	denom := d1x*d2y - d1y*d2x
	if math.Abs(denom) < 1e-12 {
		return orb.Point{}, false
	}
	t := ((b1.X()-a1.X())*d2y - (b1.Y()-a1.Y())*d2x) / denom
	return orb.Point{a1.X() + t*d1x, a1.Y() + t*d1y}, true
}

// MapPoints applies fn to every coordinate of g and returns the
// transformed geometry. The input geometry is not modified.
func MapPoints(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch t := g.(type) {
	case orb.Point:
		return fn(t)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(t))
		for i, p := range t {
			out[i] = fn(p)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(t))
		for i, p := range t {
			out[i] = fn(p)
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(t))
		for i, ls := range t {
			out[i] = MapPoints(ls, fn).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(t))
		for i, p := range t {
			out[i] = fn(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(t))
		for i, r := range t {
			out[i] = MapPoints(r, fn).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(t))
		for i, p := range t {
			out[i] = MapPoints(p, fn).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(t))
		for i, c := range t {
			out[i] = MapPoints(c, fn)
		}
		return out
	}
	return g
}

// TranslateGeometry returns g shifted by (dx, dy).
func TranslateGeometry(g orb.Geometry, dx, dy float64) orb.Geometry {
	return MapPoints(g, func(p orb.Point) orb.Point {
		return Translate(p, dx, dy)
	})
}

// RotateGeometry returns g rotated around origin by angle radians.
func RotateGeometry(g orb.Geometry, origin orb.Point, angle float64) orb.Geometry {
	return MapPoints(g, func(p orb.Point) orb.Point {
		return Rotate(p, origin, angle)
	})
}

// ScaleGeometry returns g scaled around origin by (sx, sy).
func ScaleGeometry(g orb.Geometry, origin orb.Point, sx, sy float64) orb.Geometry {
	return MapPoints(g, func(p orb.Point) orb.Point {
		return Scale(p, origin, sx, sy)
	})
}
