package style

import (
	"testing"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/folder"
)

func newResolver(opts Options) *Resolver {
	return NewResolver(DefaultCatalog(), opts)
}

func strokeOf(t *testing.T, layers []Layer) *Stroke {
	t.Helper()
	for _, l := range layers {
		if l.Stroke != nil {
			return l.Stroke
		}
	}
	t.Fatal("Expected a stroke layer")
	return nil
}

func textOf(layers []Layer) *Text {
	for _, l := range layers {
		if l.Text != nil {
			return l.Text
		}
	}
	return nil
}

func TestPolylineFallbackStroke(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindPolyline, orb.LineString{{0, 0}, {10, 0}})

	layers := r.Resolve(f, 1, nil)
	stroke := strokeOf(t, layers)
	if stroke.Color != "#00aa00" {
		t.Errorf("Expected default green stroke, got %s", stroke.Color)
	}
	if stroke.Width != 2 {
		t.Errorf("Expected default width 2, got %v", stroke.Width)
	}
}

func TestPointFallbackMarker(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindPoint, orb.Point{3, 4})

	layers := r.Resolve(f, 1, nil)
	if len(layers) != 1 || layers[0].Marker == nil {
		t.Fatalf("Expected a single marker layer, got %v", layers)
	}
	m := layers[0].Marker
	if m.Shape != MarkerDot || m.Color != "#dd0000" {
		t.Errorf("Expected default red dot, got %v %s", m.Shape, m.Color)
	}
	if m.Anchor != (orb.Point{3, 4}) {
		t.Errorf("Expected marker anchored at the point, got %v", m.Anchor)
	}
}

func TestOverrideWinsOverDefault(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindPolyline, orb.LineString{{0, 0}, {10, 0}})
	f.Style = &feature.StyleOverride{
		LineColor: feature.String("#123456"),
		LineWidth: feature.Float(7),
	}

	stroke := strokeOf(t, r.Resolve(f, 1, nil))
	if stroke.Color != "#123456" || stroke.Width != 7 {
		t.Errorf("Expected override color/width, got %s %v", stroke.Color, stroke.Width)
	}
}

func TestArrowheadMarker(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindArrow, orb.LineString{{0, 0}, {10, 0}})

	layers := r.Resolve(f, 1, nil)
	if len(layers) != 2 {
		t.Fatalf("Expected stroke plus arrowhead, got %d layers", len(layers))
	}
	m := layers[1].Marker
	if m == nil || m.Shape != MarkerArrowhead {
		t.Fatal("Expected an arrowhead marker layer")
	}
	if m.Anchor != (orb.Point{10, 0}) {
		t.Errorf("Expected arrowhead at the final vertex, got %v", m.Anchor)
	}
	if m.Rotation != 0 {
		t.Errorf("Expected rotation 0 for a horizontal arrow, got %v", m.Rotation)
	}
	if m.Size != layers[0].Stroke.Width*4 {
		t.Errorf("Expected arrowhead size 4x stroke width, got %v", m.Size)
	}
}

func TestMeasureLabel(t *testing.T) {
	r := newResolver(Options{})

	auto := feature.New(feature.KindMeasure, orb.LineString{{0, 0}, {1500, 0}})
	text := textOf(r.Resolve(auto, 1, nil))
	if text == nil {
		t.Fatal("Expected a distance label layer")
	}
	if text.Content != "1.5km" {
		t.Errorf("Expected automatic kilometer label, got %q", text.Content)
	}
	if text.Anchor != (orb.Point{1500, 0}) {
		t.Errorf("Expected label at the terminal vertex, got %v", text.Anchor)
	}

	meters := feature.New(feature.KindMeasure, orb.LineString{{0, 0}, {1500, 0}})
	meters.Measure.Unit = UnitMeter
	text = textOf(r.Resolve(meters, 1, nil))
	if text.Content != "1500.000m" {
		t.Errorf("Expected meter override label, got %q", text.Content)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		d    float64
		unit string
		want string
	}{
		{999, UnitAuto, "999.000m"},
		{1000, UnitAuto, "1.0km"},
		{1500, UnitAuto, "1.5km"},
		{1500, UnitMeter, "1500.000m"},
		// %.1f rounds half to even, so 0.25 lands on 0.2.
		{250, UnitKilo, "0.2km"},
	}
	for _, c := range cases {
		if got := FormatDistance(c.d, c.unit); got != c.want {
			t.Errorf("FormatDistance(%v, %q): expected %q, got %q", c.d, c.unit, c.want, got)
		}
	}
}

func TestHiddenKindResolvesToNothing(t *testing.T) {
	r := newResolver(Options{})
	vis := folder.NewVisibility()
	vis.SetKindHidden(feature.KindArrow, true)

	f := feature.New(feature.KindArrow, orb.LineString{{0, 0}, {10, 0}})
	if layers := r.Resolve(f, 1, vis); layers != nil {
		t.Errorf("Expected no layers for a hidden arrow, got %v", layers)
	}
}

func TestHiddenTextKeepsEmptyLayer(t *testing.T) {
	r := newResolver(Options{})
	vis := folder.NewVisibility()
	vis.SetKindHidden(feature.KindText, true)

	f := feature.New(feature.KindText, orb.Point{7, 9})
	f.Text.Content = "note"
	layers := r.Resolve(f, 1, vis)
	if len(layers) != 1 || layers[0].Text == nil {
		t.Fatalf("Expected a single text layer, got %v", layers)
	}
	if layers[0].Text.Content != "" {
		t.Errorf("Expected empty content on the hidden text layer, got %q", layers[0].Text.Content)
	}
	if layers[0].Text.Anchor != (orb.Point{7, 9}) {
		t.Errorf("Expected the hidden layer anchored at the feature, got %v", layers[0].Text.Anchor)
	}
}

func TestWorldScaleShrinksWithResolution(t *testing.T) {
	r := newResolver(Options{WorldScale: true, ReferenceResolution: 1})
	f := feature.New(feature.KindPolyline, orb.LineString{{0, 0}, {10, 0}})

	var prev float64
	for i, res := range []float64{1, 2, 4, 8} {
		w := strokeOf(t, r.Resolve(f, res, nil)).Width
		if i > 0 && w > prev {
			t.Errorf("Expected width non-increasing as resolution grows, got %v after %v", w, prev)
		}
		prev = w
	}
	if w := strokeOf(t, r.Resolve(f, 2, nil)).Width; w != 1 {
		t.Errorf("Expected width halved at resolution 2, got %v", w)
	}
}

func TestNominalScaleIgnoresResolution(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindPolyline, orb.LineString{{0, 0}, {10, 0}})

	for _, res := range []float64{0.5, 1, 4, 32} {
		if w := strokeOf(t, r.Resolve(f, res, nil)).Width; w != 2 {
			t.Errorf("Expected constant width 2 at resolution %v, got %v", res, w)
		}
	}
}

func TestLegendCatalogSymbology(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindLegend, orb.LineString{{0, 0}, {100, 0}})
	f.Legend.TypeID = "water-pipe"

	entry, ok := r.Catalog().Get("water-pipe")
	if !ok {
		t.Fatal("Expected water-pipe in the default catalog")
	}

	layers := r.Resolve(f, 1, nil)
	stroke := strokeOf(t, layers)
	if stroke.Color != entry.Color {
		t.Errorf("Expected catalog color %s, got %s", entry.Color, stroke.Color)
	}
	text := textOf(layers)
	if text == nil || !text.AlongLine || !text.Repeat {
		t.Fatal("Expected repeating along-line text for water-pipe")
	}
	if text.Content != entry.RepeatText {
		t.Errorf("Expected repeat text %q, got %q", entry.RepeatText, text.Content)
	}
}

func TestLegendOverrideBeatsCatalog(t *testing.T) {
	r := newResolver(Options{})
	f := feature.New(feature.KindLegend, orb.LineString{{0, 0}, {100, 0}})
	f.Legend.TypeID = "boundary"
	f.Style = &feature.StyleOverride{LineColor: feature.String("#abcdef")}

	if stroke := strokeOf(t, r.Resolve(f, 1, nil)); stroke.Color != "#abcdef" {
		t.Errorf("Expected override to beat the catalog, got %s", stroke.Color)
	}
}

func TestLabelOverlay(t *testing.T) {
	r := newResolver(Options{ShowLabels: true, LabelProperty: "name"})

	p := feature.New(feature.KindPoint, orb.Point{5, 5})
	p.Attrs = map[string]string{"name": "manhole 7"}
	layers := r.Resolve(p, 1, nil)
	text := textOf(layers)
	if text == nil {
		t.Fatal("Expected a label overlay on the point")
	}
	if text.Content != "manhole 7" || text.Align != AlignCenter {
		t.Errorf("Expected centered attribute label, got %q align %q", text.Content, text.Align)
	}
	if text.OffsetY >= 0 {
		t.Errorf("Expected label to float above the anchor, got offset %v", text.OffsetY)
	}

	// Kinds with their own text never get the overlay.
	m := feature.New(feature.KindMeasure, orb.LineString{{0, 0}, {10, 0}})
	m.Attrs = map[string]string{"name": "x"}
	for _, l := range r.Resolve(m, 1, nil) {
		if l.Text != nil && l.Text.Content == "x" {
			t.Error("Expected no label overlay on a measure feature")
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newResolver(Options{WorldScale: true})
	f := feature.New(feature.KindArrow, orb.LineString{{0, 0}, {10, 10}})
	f.Style = &feature.StyleOverride{LineWidth: feature.Float(3)}

	a := r.Resolve(f, 2, nil)
	b := r.Resolve(f, 2, nil)
	if len(a) != len(b) {
		t.Fatalf("Expected identical layer counts, got %d and %d", len(a), len(b))
	}
	if a[0].Stroke.Color != b[0].Stroke.Color || a[0].Stroke.Width != b[0].Stroke.Width {
		t.Errorf("Expected identical strokes, got %v and %v", a[0].Stroke, b[0].Stroke)
	}
	if *a[1].Marker != *b[1].Marker {
		t.Errorf("Expected identical markers, got %v and %v", a[1].Marker, b[1].Marker)
	}
}
