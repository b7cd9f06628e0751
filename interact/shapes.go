package interact

import (
	"math"

	"github.com/paulmach/orb"

	"mapmark/geometry"
)

const circleSegments = 64

// BoxPolygon builds an axis-aligned rectangle from two opposite
// corners.
func BoxPolygon(a, b orb.Point) orb.Polygon {
	bound := boundOf(a, b)
	ring := orb.Ring{
		bound.Min,
		{bound.Max.X(), bound.Min.Y()},
		bound.Max,
		{bound.Min.X(), bound.Max.Y()},
		bound.Min,
	}
	return orb.Polygon{ring}
}

// CirclePolygon approximates a circle as a closed ring.
func CirclePolygon(center orb.Point, radius float64) orb.Polygon {
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		ring = append(ring, orb.Point{
			center.X() + radius*math.Cos(a),
			center.Y() + radius*math.Sin(a),
		})
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// ArcLine samples the circular arc through three points: start, a point
// the arc passes through, and end. Collinear input degrades to the
// straight segment from start to end.
func ArcLine(start, through, end orb.Point) orb.LineString {
	center, ok := circumcenter(start, through, end)
	if !ok {
		return orb.LineString{start, end}
	}
	radius := planarDist(center, start)
	a0 := geometry.Angle(center, start)
	am := geometry.Angle(center, through)
	a1 := geometry.Angle(center, end)

	// Walk counterclockwise from a0; flip direction unless the middle
	// point lies on that sweep.
	ccwSpan := normalizeAngle(a1 - a0)
	ccwMid := normalizeAngle(am - a0)
	span := ccwSpan
	if ccwMid > ccwSpan {
		span = ccwSpan - 2*math.Pi
	}

	const samples = 32
	line := make(orb.LineString, 0, samples+1)
	for i := 0; i <= samples; i++ {
		a := a0 + span*float64(i)/samples
		line = append(line, orb.Point{
			center.X() + radius*math.Cos(a),
			center.Y() + radius*math.Sin(a),
		})
	}
	return line
}

// RevCloudPolygon builds a revision cloud: a rectangle whose perimeter
// is replaced by outward semicircular lobes.
func RevCloudPolygon(a, b orb.Point) orb.Polygon {
	bound := boundOf(a, b)
	corners := []orb.Point{
		bound.Min,
		{bound.Max.X(), bound.Min.Y()},
		bound.Max,
		{bound.Min.X(), bound.Max.Y()},
	}

	// Lobe size relative to the rectangle, clamped so short edges still
	// get at least one bump.
	w := bound.Max.X() - bound.Min.X()
	h := bound.Max.Y() - bound.Min.Y()
	lobe := math.Min(w, h) / 3
	if lobe <= 0 {
		lobe = math.Max(w, h) / 3
	}

	var ring orb.Ring
	for i := 0; i < 4; i++ {
		from := corners[i]
		to := corners[(i+1)%4]
		ring = append(ring, cloudEdge(from, to, lobe)...)
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}

// cloudEdge renders one rectangle edge as a run of outward bumps,
// excluding the final corner point (the next edge contributes it).
func cloudEdge(from, to orb.Point, lobe float64) []orb.Point {
	length := planarDist(from, to)
	n := int(math.Ceil(length / lobe))
	if n < 1 {
		n = 1
	}
	normal, ok := geometry.Normal(from, to)
	if !ok {
		return []orb.Point{from}
	}
	// Lobes bulge to the right of travel, which is outward for the
	// counterclockwise corner walk above.
	bulge := lobe / 2

	var out []orb.Point
	for i := 0; i < n; i++ {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		p0 := orb.Point{from.X() + (to.X()-from.X())*t0, from.Y() + (to.Y()-from.Y())*t0}
		p1 := orb.Point{from.X() + (to.X()-from.X())*t1, from.Y() + (to.Y()-from.Y())*t1}
		mid := geometry.Midpoint(p0, p1)
		out = append(out, p0, orb.Point{
			mid.X() - normal.X()*bulge,
			mid.Y() - normal.Y()*bulge,
		})
	}
	return out
}

func circumcenter(a, b, c orb.Point) (orb.Point, bool) {
	abMid := geometry.Midpoint(a, b)
	bcMid := geometry.Midpoint(b, c)
	abPerp, ok1 := geometry.Normal(a, b)
	bcPerp, ok2 := geometry.Normal(b, c)
	if !ok1 || !ok2 {
		return orb.Point{}, false
	}
	return geometry.LineIntersection(
		abMid, geometry.Translate(abMid, abPerp.X(), abPerp.Y()),
		bcMid, geometry.Translate(bcMid, bcPerp.X(), bcPerp.Y()),
	)
}

func normalizeAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
