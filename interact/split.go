package interact

import (
	"errors"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/geometry"
	"mapmark/history"
)

var (
	// ErrNotALine is returned when a line operation targets a feature
	// without line-string geometry.
	ErrNotALine = errors.New("interact: feature is not a line")
	// ErrSplitAtEnd is returned when the split point coincides with a
	// line endpoint, which would leave a degenerate half.
	ErrSplitAtEnd = errors.New("interact: split point is an endpoint")
)

// Split cuts a line feature into two at the given point (projected onto
// the line), preserving style properties on both halves and removing
// the original. The whole swap is one undoable step.
func (m *Manager) Split(id string, at orb.Point) error {
	f, ok := m.store.Get(id)
	if !ok {
		return errors.New("interact: unknown feature")
	}
	line, ok := f.Geometry.(orb.LineString)
	if !ok || len(line) < 2 {
		return ErrNotALine
	}

	seg, cut := nearestOnLine(line, at)
	const eps = 1e-9
	atStart := seg == 0 && planarDist(cut, line[0]) < eps
	atEnd := seg == len(line)-2 && planarDist(cut, line[len(line)-1]) < eps
	if atStart || atEnd {
		return ErrSplitAtEnd
	}

	first := make(orb.LineString, 0, seg+2)
	first = append(first, line[:seg+1]...)
	if planarDist(first[len(first)-1], cut) > eps {
		first = append(first, cut)
	}
	second := make(orb.LineString, 0, len(line)-seg)
	second = append(second, cut)
	for _, p := range line[seg+1:] {
		if planarDist(p, cut) > eps || len(second) > 1 {
			second = append(second, p)
		}
	}
	if len(first) < 2 || len(second) < 2 {
		return ErrSplitAtEnd
	}

	a := deriveFrom(f, first)
	b := deriveFrom(f, second)
	rec := feature.NewReplaceRecord(m.store, []string{f.ID}, []*feature.Feature{a, b})
	m.hist.Record(&history.Batch{Name: "split", Records: []history.Record{rec}})
	m.ClearSelection()
	return nil
}

// deriveFrom creates a new feature carrying over the source's kind,
// style, metadata, and folder assignment.
func deriveFrom(src *feature.Feature, g orb.Geometry) *feature.Feature {
	f := feature.New(src.Kind, g)
	f.Style = src.Style.Clone()
	f.FolderID = src.FolderID
	if src.Measure != nil {
		f.Measure = &feature.MeasureMeta{Unit: src.Measure.Unit}
		f.RefreshMeasure()
	}
	if src.Legend != nil {
		l := *src.Legend
		f.Legend = &l
	}
	if src.Text != nil {
		t := *src.Text
		f.Text = &t
	}
	if src.Icon != nil {
		i := *src.Icon
		f.Icon = &i
	}
	return f
}

// nearestOnLine returns the segment index and projected point on the
// line closest to p.
func nearestOnLine(line orb.LineString, p orb.Point) (int, orb.Point) {
	bestSeg := 0
	bestPoint := line[0]
	bestDist := -1.0
	for i := 0; i+1 < len(line); i++ {
		q, _ := geometry.ClosestOnSegment(line[i], line[i+1], p)
		d := planarDist(q, p)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestSeg = i
			bestPoint = q
		}
	}
	return bestSeg, bestPoint
}

// SplitHandler turns a click near a line feature into a split at the
// (snapped) click point. Selected lines win over unselected ones.
type SplitHandler struct {
	m *Manager
}

// NewSplitHandler creates the split gesture handler.
func NewSplitHandler(m *Manager) *SplitHandler {
	return &SplitHandler{m: m}
}

// Name implements Handler.
func (h *SplitHandler) Name() string { return "split" }

// Down performs the split on the line under the pointer.
func (h *SplitHandler) Down(p Pointer) bool {
	target := h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
		_, isLine := f.Geometry.(orb.LineString)
		return isLine && h.m.IsSelected(f.ID)
	})
	if target == nil {
		target = h.m.hitTest(p.Pos, func(f *feature.Feature) bool {
			_, isLine := f.Geometry.(orb.LineString)
			return isLine
		})
	}
	if target == nil {
		return false
	}
	at := h.m.SnapPoint(p.Pos)
	return h.m.Split(target.ID, at) == nil
}

// Move implements Handler.
func (h *SplitHandler) Move(Pointer) {}

// Up implements Handler.
func (h *SplitHandler) Up(Pointer) {}

// Abort implements Handler.
func (h *SplitHandler) Abort() {}
