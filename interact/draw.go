package interact

import (
	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/history"
)

// DrawConfig carries the creation parameters for a drawing handler:
// the kind to create plus the style preset and metadata the new
// feature starts with.
type DrawConfig struct {
	Kind         feature.Kind
	Override     *feature.StyleOverride
	LegendTypeID string
	IconPath     string
	IconSymbol   string
	TextContent  string
	MeasureUnit  string
}

// DrawHandler creates new features from pointer gestures. The gesture
// shape depends on the kind: single click for point-anchored kinds,
// click-click-finish for line kinds, press-drag-release for freehand
// and the two-corner shapes, and three clicks for an arc. Abort
// discards the partial geometry without committing.
type DrawHandler struct {
	m   *Manager
	cfg DrawConfig

	pts      []orb.Point
	current  orb.Point
	dragging bool
}

// NewDrawHandler creates a drawing handler for the given config.
func NewDrawHandler(m *Manager, cfg DrawConfig) *DrawHandler {
	return &DrawHandler{m: m, cfg: cfg}
}

// Name implements Handler.
func (h *DrawHandler) Name() string { return "draw:" + h.cfg.Kind.String() }

// Kind returns the kind this handler draws.
func (h *DrawHandler) Kind() feature.Kind { return h.cfg.Kind }

// Down advances the gesture for the handler's kind.
func (h *DrawHandler) Down(p Pointer) bool {
	switch h.cfg.Kind {
	case feature.KindPoint, feature.KindText, feature.KindIcon:
		h.commit(orb.Point(h.m.SnapPoint(p.Pos)))
		return true

	case feature.KindPolyline, feature.KindArrow, feature.KindMeasure, feature.KindLegend:
		h.pts = append(h.pts, h.m.SnapPoint(p.Pos))
		h.current = h.pts[len(h.pts)-1]
		return true

	case feature.KindFreehand:
		h.pts = []orb.Point{p.Pos}
		h.dragging = true
		return true

	case feature.KindBox, feature.KindCircle, feature.KindRevCloud:
		h.pts = []orb.Point{h.m.SnapPoint(p.Pos)}
		h.current = h.pts[0]
		h.dragging = true
		return true

	case feature.KindArc:
		h.pts = append(h.pts, h.m.SnapPoint(p.Pos))
		if len(h.pts) == 3 {
			arc := ArcLine(h.pts[0], h.pts[1], h.pts[2])
			h.pts = nil
			h.commit(arc)
		}
		return true
	}
	return false
}

// Move extends drag-shaped gestures.
func (h *DrawHandler) Move(p Pointer) {
	if !h.dragging {
		return
	}
	switch h.cfg.Kind {
	case feature.KindFreehand:
		h.pts = append(h.pts, p.Pos)
	case feature.KindBox, feature.KindCircle, feature.KindRevCloud:
		h.current = p.Pos
	}
}

// Up completes drag-shaped gestures.
func (h *DrawHandler) Up(p Pointer) {
	if !h.dragging {
		return
	}
	h.dragging = false
	switch h.cfg.Kind {
	case feature.KindFreehand:
		pts := h.pts
		h.pts = nil
		if len(pts) >= 2 {
			h.commit(orb.LineString(pts))
		}
	case feature.KindBox:
		a := h.pts[0]
		h.pts = nil
		if g, ok := cornerShape(a, p.Pos, BoxPolygon); ok {
			h.commit(g)
		}
	case feature.KindRevCloud:
		a := h.pts[0]
		h.pts = nil
		if g, ok := cornerShape(a, p.Pos, RevCloudPolygon); ok {
			h.commit(g)
		}
	case feature.KindCircle:
		center := h.pts[0]
		h.pts = nil
		radius := planarDist(center, p.Pos)
		if radius > 1e-9 {
			h.commit(CirclePolygon(center, radius))
		}
	}
}

// Finish completes the multi-click line kinds.
func (h *DrawHandler) Finish() {
	switch h.cfg.Kind {
	case feature.KindPolyline, feature.KindArrow, feature.KindMeasure, feature.KindLegend:
		pts := h.pts
		h.pts = nil
		if len(pts) >= 2 {
			h.commit(orb.LineString(pts))
		}
	}
}

// Abort discards the partial geometry.
func (h *DrawHandler) Abort() {
	h.pts = nil
	h.dragging = false
}

// Preview returns the in-progress points for front-end drawing.
func (h *DrawHandler) Preview() []orb.Point {
	out := make([]orb.Point, len(h.pts))
	copy(out, h.pts)
	return out
}

// commit creates the feature, pushes the add record, and emits the
// drawn event.
func (h *DrawHandler) commit(g orb.Geometry) {
	f := feature.New(h.cfg.Kind, g)
	f.Style = h.cfg.Override.Clone()
	switch h.cfg.Kind {
	case feature.KindText:
		f.Text.Content = h.cfg.TextContent
	case feature.KindIcon:
		f.Icon.Path = h.cfg.IconPath
		f.Icon.Symbol = h.cfg.IconSymbol
	case feature.KindLegend:
		f.Legend.TypeID = h.cfg.LegendTypeID
	case feature.KindMeasure:
		f.Measure.Unit = h.cfg.MeasureUnit
		f.RefreshMeasure()
	}
	rec := &feature.AddRecord{Store: h.m.store, Features: []*feature.Feature{f}}
	rec.Apply()
	h.m.hist.Record(&history.Batch{Name: "draw " + h.cfg.Kind.String(), Records: []history.Record{rec}})
	if h.m.Events.FeatureDrawn != nil {
		h.m.Events.FeatureDrawn(f)
	}
}

// cornerShape builds a two-corner shape, rejecting degenerate drags.
func cornerShape(a, b orb.Point, build func(orb.Point, orb.Point) orb.Polygon) (orb.Geometry, bool) {
	if planarDist(a, b) < 1e-9 {
		return nil, false
	}
	return build(a, b), true
}
