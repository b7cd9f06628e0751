// Package feature holds the mutable model of annotated map features: the
// kind discriminator, per-kind metadata, optional style overrides, and the
// canonical Store the interaction handlers mutate.
package feature

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Kind discriminates what an annotation is. It is fixed at creation and
// never changes afterwards.
type Kind int

const (
	KindPoint Kind = iota
	KindPolyline
	KindFreehand
	KindArrow
	KindText
	KindIcon
	KindLegend
	KindMeasure
	KindBox
	KindCircle
	KindArc
	KindRevCloud
)

// String returns the kind name for display.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPolyline:
		return "polyline"
	case KindFreehand:
		return "freehand"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	case KindIcon:
		return "icon"
	case KindLegend:
		return "legend-line"
	case KindMeasure:
		return "measure"
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindRevCloud:
		return "revision-cloud"
	default:
		return "unknown"
	}
}

// PropertyName returns the discriminator property key used on the
// serialization boundary, e.g. "is-arrow".
func (k Kind) PropertyName() string {
	switch k {
	case KindPoint:
		return "is-point"
	case KindPolyline:
		return "is-polyline"
	case KindFreehand:
		return "is-freehand"
	case KindArrow:
		return "is-arrow"
	case KindText:
		return "is-text"
	case KindIcon:
		return "is-icon"
	case KindLegend:
		return "is-legend-line"
	case KindMeasure:
		return "is-measure"
	case KindBox:
		return "is-box"
	case KindCircle:
		return "is-circle"
	case KindArc:
		return "is-arc"
	case KindRevCloud:
		return "is-revision-cloud"
	default:
		return ""
	}
}

// Kinds lists every kind in discriminator order.
func Kinds() []Kind {
	return []Kind{
		KindPoint, KindPolyline, KindFreehand, KindArrow, KindText,
		KindIcon, KindLegend, KindMeasure, KindBox, KindCircle,
		KindArc, KindRevCloud,
	}
}

// KindFromProperty resolves a discriminator property key back to a Kind.
func KindFromProperty(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.PropertyName() == name {
			return k, true
		}
	}
	return 0, false
}

// Selectable reports whether features of this kind participate in
// click and box selection.
func (k Kind) Selectable() bool {
	return true
}

// Editable reports whether features of this kind join the vertex-modify
// collection when selected. Point-anchored kinds have no vertices to
// drag, and circles keep their shape through transform instead.
func (k Kind) Editable() bool {
	switch k {
	case KindPoint, KindText, KindIcon, KindCircle:
		return false
	default:
		return true
	}
}

// TextMeta is the metadata variant for text features.
type TextMeta struct {
	Content string
}

// MeasureMeta is the metadata variant for measurement features. Distance
// is a cache of the planar length, refreshed only on geometry change.
// Unit is "" for the automatic meter/kilometer switch, or an explicit
// "m" / "km" override.
type MeasureMeta struct {
	Distance float64
	Unit     string
}

// IconMeta is the metadata variant for icon features. Path points into
// the icon set; Symbol names one of the hard-coded symbol glyphs
// (triangle, pit, ground-point, junction, tower) when Path is empty.
type IconMeta struct {
	Path   string
	Symbol string
}

// LegendMeta is the metadata variant for legend-line features. TypeID
// keys into the legend catalog.
type LegendMeta struct {
	TypeID string
}

// Feature is one annotated object on the map: a geometry, its kind
// discriminator, the metadata variant matching that kind, and optional
// per-feature style overrides layered over the kind defaults.
//
// Exactly the variant field matching Kind is non-nil; the others stay
// nil for the lifetime of the feature.
type Feature struct {
	ID       string
	Kind     Kind
	Geometry orb.Geometry
	Style    *StyleOverride
	FolderID string

	Text    *TextMeta
	Measure *MeasureMeta
	Icon    *IconMeta
	Legend  *LegendMeta

	// Attrs carries imported attribute data (not styling); the label
	// overlay reads its configured property from here.
	Attrs map[string]string
}

// New creates a feature of the given kind with a fresh identifier and
// the metadata variant for that kind initialized.
func New(kind Kind, g orb.Geometry) *Feature {
	f := &Feature{
		ID:       uuid.NewString(),
		Kind:     kind,
		Geometry: g,
	}
	switch kind {
	case KindText:
		f.Text = &TextMeta{}
	case KindMeasure:
		f.Measure = &MeasureMeta{}
		f.RefreshMeasure()
	case KindIcon:
		f.Icon = &IconMeta{}
	case KindLegend:
		f.Legend = &LegendMeta{}
	}
	return f
}

// Clone returns a deep copy of the feature, keeping the same ID.
func (f *Feature) Clone() *Feature {
	if f == nil {
		return nil
	}
	clone := &Feature{
		ID:       f.ID,
		Kind:     f.Kind,
		FolderID: f.FolderID,
	}
	if f.Geometry != nil {
		clone.Geometry = orb.Clone(f.Geometry)
	}
	clone.Style = f.Style.Clone()
	if f.Text != nil {
		t := *f.Text
		clone.Text = &t
	}
	if f.Measure != nil {
		m := *f.Measure
		clone.Measure = &m
	}
	if f.Icon != nil {
		i := *f.Icon
		clone.Icon = &i
	}
	if f.Legend != nil {
		l := *f.Legend
		clone.Legend = &l
	}
	if f.Attrs != nil {
		clone.Attrs = make(map[string]string, len(f.Attrs))
		for k, v := range f.Attrs {
			clone.Attrs[k] = v
		}
	}
	return clone
}

// RefreshMeasure recomputes the cached distance of a measure feature.
// A no-op for every other kind.
func (f *Feature) RefreshMeasure() {
	if f.Measure == nil || f.Geometry == nil {
		return
	}
	f.Measure.Distance = planar.Length(f.Geometry)
}

// EnsureStyle returns the feature's override struct, allocating an
// empty one on first use.
func (f *Feature) EnsureStyle() *StyleOverride {
	if f.Style == nil {
		f.Style = &StyleOverride{}
	}
	return f.Style
}
