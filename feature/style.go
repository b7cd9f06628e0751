package feature

import "strconv"

// StyleOverride holds the optional per-feature style properties layered
// over the kind defaults by the style resolver. Nil pointer fields mean
// "no override"; a set field wins over the default.
type StyleOverride struct {
	LineColor     *string
	LineWidth     *float64
	Opacity       *float64
	StrokeColor   *string
	StrokeOpacity *float64
	FillColor     *string
	FillOpacity   *float64
	IconScale     *float64
	LabelScale    *float64
	TextScale     *float64
	TextRotation  *float64
	TextOpacity   *float64
	TextFillColor *string
	TextStroke    *string
	TextAlign     *string
}

// String and Float allocate override values without the address-of-local
// dance at call sites.
func String(v string) *string { return &v }
func Float(v float64) *float64 { return &v }

// IsZero reports whether no override is set.
func (s *StyleOverride) IsZero() bool {
	if s == nil {
		return true
	}
	return s.LineColor == nil && s.LineWidth == nil && s.Opacity == nil &&
		s.StrokeColor == nil && s.StrokeOpacity == nil &&
		s.FillColor == nil && s.FillOpacity == nil &&
		s.IconScale == nil && s.LabelScale == nil &&
		s.TextScale == nil && s.TextRotation == nil && s.TextOpacity == nil &&
		s.TextFillColor == nil && s.TextStroke == nil && s.TextAlign == nil
}

// Clone returns a deep copy of the override set. The pointer fields are
// reallocated so mutating the copy never touches the source.
func (s *StyleOverride) Clone() *StyleOverride {
	if s == nil {
		return nil
	}
	c := &StyleOverride{}
	copyS := func(dst **string, v *string) {
		if v != nil {
			*dst = String(*v)
		}
	}
	copyF := func(dst **float64, v *float64) {
		if v != nil {
			*dst = Float(*v)
		}
	}
	copyS(&c.LineColor, s.LineColor)
	copyF(&c.LineWidth, s.LineWidth)
	copyF(&c.Opacity, s.Opacity)
	copyS(&c.StrokeColor, s.StrokeColor)
	copyF(&c.StrokeOpacity, s.StrokeOpacity)
	copyS(&c.FillColor, s.FillColor)
	copyF(&c.FillOpacity, s.FillOpacity)
	copyF(&c.IconScale, s.IconScale)
	copyF(&c.LabelScale, s.LabelScale)
	copyF(&c.TextScale, s.TextScale)
	copyF(&c.TextRotation, s.TextRotation)
	copyF(&c.TextOpacity, s.TextOpacity)
	copyS(&c.TextFillColor, s.TextFillColor)
	copyS(&c.TextStroke, s.TextStroke)
	copyS(&c.TextAlign, s.TextAlign)
	return c
}

// Merge returns the union of two override sets. Where both set a
// property, the receiver wins; callers use Diff first when that choice
// must not be silent.
func (s *StyleOverride) Merge(o *StyleOverride) *StyleOverride {
	if s.IsZero() {
		return o.Clone()
	}
	if o.IsZero() {
		return s.Clone()
	}
	out := s.Clone()
	pickS := func(dst **string, v *string) {
		if *dst == nil && v != nil {
			*dst = v
		}
	}
	pickF := func(dst **float64, v *float64) {
		if *dst == nil && v != nil {
			*dst = v
		}
	}
	pickS(&out.LineColor, o.LineColor)
	pickF(&out.LineWidth, o.LineWidth)
	pickF(&out.Opacity, o.Opacity)
	pickS(&out.StrokeColor, o.StrokeColor)
	pickF(&out.StrokeOpacity, o.StrokeOpacity)
	pickS(&out.FillColor, o.FillColor)
	pickF(&out.FillOpacity, o.FillOpacity)
	pickF(&out.IconScale, o.IconScale)
	pickF(&out.LabelScale, o.LabelScale)
	pickF(&out.TextScale, o.TextScale)
	pickF(&out.TextRotation, o.TextRotation)
	pickF(&out.TextOpacity, o.TextOpacity)
	pickS(&out.TextFillColor, o.TextFillColor)
	pickS(&out.TextStroke, o.TextStroke)
	pickS(&out.TextAlign, o.TextAlign)
	return out
}

// Diff returns the names of properties set on both overrides with
// different values. Used by merge to detect conflicts that need
// explicit resolution. A property set on only one side is not a
// conflict: merge adopts it silently as part of the union.
func (s *StyleOverride) Diff(o *StyleOverride) []string {
	var out []string
	cmpS := func(name string, a, b *string) {
		if a != nil && b != nil && *a != *b {
			out = append(out, name)
		}
	}
	cmpF := func(name string, a, b *float64) {
		if a != nil && b != nil && *a != *b {
			out = append(out, name)
		}
	}
	if s == nil {
		s = &StyleOverride{}
	}
	if o == nil {
		o = &StyleOverride{}
	}
	cmpS(KeyLineColor, s.LineColor, o.LineColor)
	cmpF(KeyLineWidth, s.LineWidth, o.LineWidth)
	cmpF(KeyOpacity, s.Opacity, o.Opacity)
	cmpS(KeyStrokeColor, s.StrokeColor, o.StrokeColor)
	cmpF(KeyStrokeOpacity, s.StrokeOpacity, o.StrokeOpacity)
	cmpS(KeyFillColor, s.FillColor, o.FillColor)
	cmpF(KeyFillOpacity, s.FillOpacity, o.FillOpacity)
	cmpF(KeyIconScale, s.IconScale, o.IconScale)
	cmpF(KeyLabelScale, s.LabelScale, o.LabelScale)
	cmpF(KeyTextScale, s.TextScale, o.TextScale)
	cmpF(KeyTextRotation, s.TextRotation, o.TextRotation)
	cmpF(KeyTextOpacity, s.TextOpacity, o.TextOpacity)
	cmpS(KeyTextFillColor, s.TextFillColor, o.TextFillColor)
	cmpS(KeyTextStroke, s.TextStroke, o.TextStroke)
	cmpS(KeyTextAlign, s.TextAlign, o.TextAlign)
	return out
}

// Value returns the override value for a serialization property key,
// formatted for display, and whether that property is set.
func (s *StyleOverride) Value(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	str := func(v *string) (string, bool) {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	num := func(v *float64) (string, bool) {
		if v == nil {
			return "", false
		}
		return strconv.FormatFloat(*v, 'g', -1, 64), true
	}
	switch key {
	case KeyLineColor:
		return str(s.LineColor)
	case KeyLineWidth:
		return num(s.LineWidth)
	case KeyOpacity:
		return num(s.Opacity)
	case KeyStrokeColor:
		return str(s.StrokeColor)
	case KeyStrokeOpacity:
		return num(s.StrokeOpacity)
	case KeyFillColor:
		return str(s.FillColor)
	case KeyFillOpacity:
		return num(s.FillOpacity)
	case KeyIconScale:
		return num(s.IconScale)
	case KeyLabelScale:
		return num(s.LabelScale)
	case KeyTextScale:
		return num(s.TextScale)
	case KeyTextRotation:
		return num(s.TextRotation)
	case KeyTextOpacity:
		return num(s.TextOpacity)
	case KeyTextFillColor:
		return str(s.TextFillColor)
	case KeyTextStroke:
		return str(s.TextStroke)
	case KeyTextAlign:
		return str(s.TextAlign)
	}
	return "", false
}

// Serialization property keys shared by the exporter and importer.
const (
	KeyLineColor     = "line-color"
	KeyLineWidth     = "line-width"
	KeyOpacity       = "opacity"
	KeyStrokeColor   = "stroke-color"
	KeyStrokeOpacity = "stroke-opacity"
	KeyFillColor     = "fill-color"
	KeyFillOpacity   = "fill-opacity"
	KeyIconScale     = "icon-scale"
	KeyLabelScale    = "label-scale"
	KeyTextScale     = "text-scale"
	KeyTextRotation  = "text-rotation"
	KeyTextOpacity   = "text-opacity"
	KeyTextFillColor = "text-fill-color"
	KeyTextStroke    = "text-stroke-color"
	KeyTextAlign     = "text-align"

	KeyLegendTypeID = "legend-type-id"
	KeyDistance     = "distance"
	KeyUnit         = "unit"
	KeyTextContent  = "text"
	KeyIconPath     = "icon-path"
	KeyIconSymbol   = "icon-symbol"
	KeyFolderID     = "folder-id"
	KeyLabel        = "label"
)
