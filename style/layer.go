// Package style resolves render styles: a pure function from (feature,
// view resolution, visibility state) to a list of immutable layer
// descriptors. The resolver never mutates a previously returned layer;
// every call builds fresh values.
package style

import "github.com/paulmach/orb"

// Stroke describes a line stroke.
type Stroke struct {
	Color   string
	Width   float64
	Opacity float64
	Dash    []float64
}

// Fill describes an area fill.
type Fill struct {
	Color   string
	Opacity float64
}

// MarkerShape enumerates the built-in point markers.
type MarkerShape string

const (
	MarkerDot       MarkerShape = "dot"
	MarkerArrowhead MarkerShape = "arrowhead"
)

// Marker describes a point-anchored glyph, such as the arrowhead at the
// end of an arrow feature.
type Marker struct {
	Shape    MarkerShape
	Anchor   orb.Point
	Rotation float64
	Size     float64
	Color    string
	Opacity  float64
}

// Align values for text layers.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Text describes a text rendering layer. AlongLine marks repeating
// text bound to a line geometry (legend symbology); OffsetY shifts
// point-anchored labels vertically in screen units.
type Text struct {
	Content     string
	Anchor      orb.Point
	Scale       float64
	Rotation    float64
	Opacity     float64
	FillColor   string
	StrokeColor string
	Align       string
	OffsetY     float64
	AlongLine   bool
	Repeat      bool
}

// Icon describes an icon glyph layer. Path addresses the icon set;
// Symbol names a hard-coded glyph when Path is empty.
type Icon struct {
	Path    string
	Symbol  string
	Anchor  orb.Point
	Scale   float64
	Opacity float64
}

// Layer is one resolved render layer. Exactly one of the component
// pointers is set per layer.
type Layer struct {
	Stroke *Stroke
	Fill   *Fill
	Marker *Marker
	Text   *Text
	Icon   *Icon
}
