package interact

import (
	"testing"

	"github.com/paulmach/orb"

	"mapmark/feature"
)

func TestDrawPointSingleClick(t *testing.T) {
	m := newTestManager()
	var drawn *feature.Feature
	m.Events.FeatureDrawn = func(f *feature.Feature) { drawn = f }
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindPoint}))

	click(m, orb.Point{5, 7}, false)

	if m.Store().Len() != 1 {
		t.Fatalf("Expected 1 feature, got %d", m.Store().Len())
	}
	if drawn == nil || drawn.Kind != feature.KindPoint {
		t.Fatal("Expected a drawn-point event")
	}
	if drawn.Geometry.(orb.Point) != (orb.Point{5, 7}) {
		t.Errorf("Expected point at click position, got %v", drawn.Geometry)
	}

	m.History().Undo()
	if m.Store().Len() != 0 {
		t.Error("Expected undo to remove the drawn point")
	}
}

func TestDrawPolylineMultiClick(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindPolyline}))

	click(m, orb.Point{0, 0}, false)
	click(m, orb.Point{50, 0}, false)
	click(m, orb.Point{50, 50}, false)
	if m.Store().Len() != 0 {
		t.Fatal("Expected no feature before Finish")
	}

	m.Finish()
	if m.Store().Len() != 1 {
		t.Fatalf("Expected 1 feature after Finish, got %d", m.Store().Len())
	}
	line := m.Store().All()[0].Geometry.(orb.LineString)
	if len(line) != 3 {
		t.Errorf("Expected 3 vertices, got %d", len(line))
	}
}

func TestDrawAbortDiscardsPartial(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindPolyline}))

	click(m, orb.Point{0, 0}, false)
	click(m, orb.Point{50, 0}, false)
	m.Abort()
	m.Finish()

	if m.Store().Len() != 0 {
		t.Errorf("Expected aborted draw to commit nothing, got %d features", m.Store().Len())
	}
	if undo, _ := m.History().Stats(); undo != 0 {
		t.Errorf("Expected no history entries, got %d", undo)
	}
}

func TestDrawMeasureCachesDistance(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindMeasure, MeasureUnit: "m"}))

	click(m, orb.Point{0, 0}, false)
	click(m, orb.Point{300, 400}, false)
	m.Finish()

	f := m.Store().All()[0]
	if f.Measure == nil {
		t.Fatal("Expected measure metadata")
	}
	if f.Measure.Distance != 500 {
		t.Errorf("Expected cached distance 500, got %v", f.Measure.Distance)
	}
	if f.Measure.Unit != "m" {
		t.Errorf("Expected configured unit, got %q", f.Measure.Unit)
	}
}

func TestDrawBoxDrag(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindBox}))

	m.Down(Pointer{Pos: orb.Point{0, 0}})
	m.Move(Pointer{Pos: orb.Point{10, 5}})
	m.Up(Pointer{Pos: orb.Point{10, 5}})

	if m.Store().Len() != 1 {
		t.Fatalf("Expected 1 feature, got %d", m.Store().Len())
	}
	poly := m.Store().All()[0].Geometry.(orb.Polygon)
	if len(poly[0]) != 5 {
		t.Errorf("Expected a closed 4-corner ring, got %d points", len(poly[0]))
	}
	b := poly.Bound()
	if b.Max != (orb.Point{10, 5}) || b.Min != (orb.Point{0, 0}) {
		t.Errorf("Expected box spanning the drag, got %v", b)
	}
}

func TestDrawBoxRejectsDegenerateDrag(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindBox}))

	m.Down(Pointer{Pos: orb.Point{5, 5}})
	m.Up(Pointer{Pos: orb.Point{5, 5}})

	if m.Store().Len() != 0 {
		t.Error("Expected a zero-size drag to create nothing")
	}
}

func TestDrawCircle(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindCircle}))

	m.Down(Pointer{Pos: orb.Point{0, 0}})
	m.Move(Pointer{Pos: orb.Point{10, 0}})
	m.Up(Pointer{Pos: orb.Point{10, 0}})

	if m.Store().Len() != 1 {
		t.Fatalf("Expected 1 feature, got %d", m.Store().Len())
	}
	ring := m.Store().All()[0].Geometry.(orb.Polygon)[0]
	for _, p := range ring {
		d := planarDist(orb.Point{0, 0}, p)
		if d < 9.99 || d > 10.01 {
			t.Fatalf("Expected all ring points at radius 10, got %v", d)
		}
	}
}

func TestDrawArcThreeClicks(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{Kind: feature.KindArc}))

	click(m, orb.Point{-10, 0}, false)
	click(m, orb.Point{0, 10}, false)
	if m.Store().Len() != 0 {
		t.Fatal("Expected no feature after two clicks")
	}
	click(m, orb.Point{10, 0}, false)

	if m.Store().Len() != 1 {
		t.Fatalf("Expected arc committed on the third click, got %d", m.Store().Len())
	}
	line := m.Store().All()[0].Geometry.(orb.LineString)
	first, last := line[0], line[len(line)-1]
	if planarDist(first, orb.Point{-10, 0}) > 1e-6 || planarDist(last, orb.Point{10, 0}) > 1e-6 {
		t.Errorf("Expected arc endpoints at the first and last click, got %v .. %v", first, last)
	}
	// The arc passes near the through point.
	nearest := 1e18
	for _, p := range line {
		if d := planarDist(p, orb.Point{0, 10}); d < nearest {
			nearest = d
		}
	}
	if nearest > 1 {
		t.Errorf("Expected arc to pass through the middle click, closest %v", nearest)
	}
}

func TestDrawAppliesPreset(t *testing.T) {
	m := newTestManager()
	m.Install(NewDrawHandler(m, DrawConfig{
		Kind:         feature.KindLegend,
		LegendTypeID: "gas-pipe",
		Override:     &feature.StyleOverride{Opacity: feature.Float(0.7)},
	}))

	click(m, orb.Point{0, 0}, false)
	click(m, orb.Point{100, 0}, false)
	m.Finish()

	f := m.Store().All()[0]
	if f.Legend == nil || f.Legend.TypeID != "gas-pipe" {
		t.Error("Expected the legend type from the preset")
	}
	if f.Style == nil || f.Style.Opacity == nil || *f.Style.Opacity != 0.7 {
		t.Error("Expected the style override from the preset")
	}
}

func TestSnapperPrefersVertices(t *testing.T) {
	m := newTestManager()
	addLine(m, orb.Point{0, 0}, orb.Point{100, 0})
	s := NewSnapper(m)
	m.Install(s)

	// Near the vertex: snaps to it even though the edge is closer still.
	p, ok := s.Snap(orb.Point{2, 3})
	if !ok {
		t.Fatal("Expected a snap target")
	}
	if p != (orb.Point{0, 0}) {
		t.Errorf("Expected vertex snap to (0, 0), got %v", p)
	}

	// Mid-edge: projects onto the segment.
	p, ok = s.Snap(orb.Point{50, 4})
	if !ok {
		t.Fatal("Expected an edge snap target")
	}
	if p != (orb.Point{50, 0}) {
		t.Errorf("Expected edge snap to (50, 0), got %v", p)
	}

	// Ignored features contribute no candidates.
	s.Ignore(m.Store().All()[0].ID)
	if _, ok := s.Snap(orb.Point{50, 4}); ok {
		t.Error("Expected no snap against an ignored feature")
	}
}
