package style

import (
	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/folder"
	"mapmark/geometry"
)

// Options configure the resolver.
type Options struct {
	// WorldScale ties stroke widths, text scales, and icon scales to
	// the world: resolved values shrink as the view zooms out. When
	// false, styles keep their nominal screen-space values.
	WorldScale bool
	// ReferenceResolution is the resolution at which nominal values
	// render 1:1. Defaults to 1.
	ReferenceResolution float64
	// LabelProperty names the feature attribute shown by the label
	// overlay.
	LabelProperty string
	// ShowLabels enables the label overlay.
	ShowLabels bool
}

// Resolver turns features into render layers. It is stateless apart
// from its options and catalog; Resolve is deterministic for identical
// inputs.
type Resolver struct {
	catalog *Catalog
	opts    Options
}

// Kind default styling.
const (
	defaultLineColor   = "#00aa00"
	defaultPointColor  = "#dd0000"
	defaultArrowColor  = "#d32f2f"
	defaultMeasure     = "#1565c0"
	defaultShapeStroke = "#f57f17"
	defaultTextFill    = "#212121"
	defaultLineWidth   = 2.0
	defaultPointSize   = 6.0
)

// NewResolver creates a resolver over the given legend catalog. A nil
// catalog falls back to the embedded default.
func NewResolver(catalog *Catalog, opts Options) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if opts.ReferenceResolution <= 0 {
		opts.ReferenceResolution = 1
	}
	return &Resolver{catalog: catalog, opts: opts}
}

// Options returns the resolver's current options.
func (r *Resolver) Options() Options {
	return r.opts
}

// SetWorldScale toggles resolution-compensated scaling.
func (r *Resolver) SetWorldScale(on bool) {
	r.opts.WorldScale = on
}

// Catalog returns the legend catalog in use.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// factor returns the multiplier applied to widths and scales at the
// given view resolution.
func (r *Resolver) factor(resolution float64) float64 {
	if !r.opts.WorldScale || resolution <= 0 {
		return 1
	}
	return r.opts.ReferenceResolution / resolution
}

// Resolve computes the render layers for one feature at the given view
// resolution under the given visibility state. It returns nil for
// hidden features, except text features, which resolve to an empty-text
// layer so hit-testing semantics survive the toggle.
func (r *Resolver) Resolve(f *feature.Feature, resolution float64, vis *folder.Visibility) []Layer {
	if f == nil || f.Geometry == nil {
		return nil
	}
	if vis.Hidden(f) {
		if f.Kind == feature.KindText {
			// Keep the anchored layer so hit-testing still finds the
			// feature; only the content goes away.
			layers := r.textLayers(f, r.factor(resolution))
			layers[0].Text.Content = ""
			return layers
		}
		return nil
	}

	k := r.factor(resolution)
	var layers []Layer

	switch f.Kind {
	case feature.KindArrow:
		layers = r.arrowLayers(f, k)
	case feature.KindMeasure:
		layers = r.measureLayers(f, k)
	case feature.KindText:
		layers = r.textLayers(f, k)
	case feature.KindIcon:
		layers = r.iconLayers(f, k)
	case feature.KindLegend:
		layers = r.legendLayers(f, k)
	case feature.KindBox, feature.KindCircle, feature.KindRevCloud:
		layers = r.shapeLayers(f, k)
	default:
		layers = r.fallbackLayers(f, k)
	}

	return r.appendLabelOverlay(f, k, layers)
}

func (r *Resolver) arrowLayers(f *feature.Feature, k float64) []Layer {
	line, ok := f.Geometry.(orb.LineString)
	stroke := r.lineStroke(f, defaultArrowColor, k)
	layers := []Layer{{Stroke: stroke}}
	if !ok || len(line) < 2 {
		return layers
	}
	a, b := line[len(line)-2], line[len(line)-1]
	layers = append(layers, Layer{Marker: &Marker{
		Shape:    MarkerArrowhead,
		Anchor:   b,
		Rotation: geometry.Angle(a, b),
		Size:     stroke.Width * 4,
		Color:    stroke.Color,
		Opacity:  stroke.Opacity,
	}})
	return layers
}

func (r *Resolver) measureLayers(f *feature.Feature, k float64) []Layer {
	stroke := r.lineStroke(f, defaultMeasure, k)
	layers := []Layer{{Stroke: stroke}}

	line, ok := f.Geometry.(orb.LineString)
	if !ok || len(line) == 0 || f.Measure == nil {
		return layers
	}
	layers = append(layers, Layer{Text: &Text{
		Content:     FormatDistance(f.Measure.Distance, f.Measure.Unit),
		Anchor:      line[len(line)-1],
		Scale:       r.textScale(f) * k,
		Opacity:     floatOr(styleOf(f).TextOpacity, 1),
		FillColor:   stringOr(styleOf(f).TextFillColor, stroke.Color),
		StrokeColor: stringOr(styleOf(f).TextStroke, "#ffffff"),
		Align:       AlignLeft,
	}})
	return layers
}

func (r *Resolver) textLayers(f *feature.Feature, k float64) []Layer {
	anchor, _ := f.Geometry.(orb.Point)
	s := styleOf(f)
	content := ""
	if f.Text != nil {
		content = f.Text.Content
	}
	return []Layer{{Text: &Text{
		Content:     content,
		Anchor:      anchor,
		Scale:       r.textScale(f) * k,
		Rotation:    floatOr(s.TextRotation, 0),
		Opacity:     floatOr(s.TextOpacity, 1),
		FillColor:   stringOr(s.TextFillColor, defaultTextFill),
		StrokeColor: stringOr(s.TextStroke, "#ffffff"),
		Align:       stringOr(s.TextAlign, AlignCenter),
	}}}
}

func (r *Resolver) iconLayers(f *feature.Feature, k float64) []Layer {
	s := styleOf(f)
	scale := floatOr(s.IconScale, 1) * k
	icon := &Icon{
		Scale:   scale,
		Opacity: floatOr(s.Opacity, 1),
		Anchor:  anchorOf(f.Geometry),
	}
	if f.Icon != nil {
		icon.Path = f.Icon.Path
		icon.Symbol = f.Icon.Symbol
	}
	return []Layer{{Icon: icon}}
}

func (r *Resolver) legendLayers(f *feature.Feature, k float64) []Layer {
	entry := LegendEntry{Color: defaultLineColor, Width: defaultLineWidth, Opacity: 1}
	if f.Legend != nil {
		if e, ok := r.catalog.Get(f.Legend.TypeID); ok {
			entry = e
		}
	}
	s := styleOf(f)
	stroke := &Stroke{
		Color:   stringOr(s.LineColor, entry.Color),
		Width:   floatOr(s.LineWidth, entry.Width) * k,
		Opacity: floatOr(s.Opacity, entry.Opacity),
	}
	if len(entry.Dash) > 0 {
		stroke.Dash = append([]float64(nil), entry.Dash...)
	}
	layers := []Layer{{Stroke: stroke}}
	if entry.RepeatText != "" {
		layers = append(layers, Layer{Text: &Text{
			Content:   entry.RepeatText,
			Scale:     r.textScale(f) * k,
			Opacity:   stroke.Opacity,
			FillColor: stroke.Color,
			Align:     AlignCenter,
			AlongLine: true,
			Repeat:    true,
		}})
	}
	return layers
}

func (r *Resolver) shapeLayers(f *feature.Feature, k float64) []Layer {
	s := styleOf(f)
	layers := []Layer{{Stroke: &Stroke{
		Color:   stringOr(s.StrokeColor, stringOr(s.LineColor, defaultShapeStroke)),
		Width:   floatOr(s.LineWidth, defaultLineWidth) * k,
		Opacity: floatOr(s.StrokeOpacity, floatOr(s.Opacity, 1)),
	}}}
	if s.FillColor != nil {
		layers = append(layers, Layer{Fill: &Fill{
			Color:   *s.FillColor,
			Opacity: floatOr(s.FillOpacity, 1),
		}})
	}
	return layers
}

func (r *Resolver) fallbackLayers(f *feature.Feature, k float64) []Layer {
	if _, isPoint := f.Geometry.(orb.Point); isPoint {
		s := styleOf(f)
		return []Layer{{Marker: &Marker{
			Shape:   MarkerDot,
			Anchor:  anchorOf(f.Geometry),
			Size:    defaultPointSize * k,
			Color:   stringOr(s.LineColor, defaultPointColor),
			Opacity: floatOr(s.Opacity, 1),
		}}}
	}
	return []Layer{{Stroke: r.lineStroke(f, defaultLineColor, k)}}
}

// appendLabelOverlay adds the centered attribute label above point and
// icon anchors. Kinds that already carry their own text stay untouched.
func (r *Resolver) appendLabelOverlay(f *feature.Feature, k float64, layers []Layer) []Layer {
	if !r.opts.ShowLabels || r.opts.LabelProperty == "" {
		return layers
	}
	switch f.Kind {
	case feature.KindArrow, feature.KindText, feature.KindLegend, feature.KindMeasure:
		return layers
	}
	_, isPoint := f.Geometry.(orb.Point)
	isIcon := f.Kind == feature.KindIcon
	if !isPoint && !isIcon {
		return layers
	}
	value := f.Attrs[r.opts.LabelProperty]
	if value == "" {
		return layers
	}
	s := styleOf(f)
	offset := -10.0
	if isIcon {
		offset = -16 * floatOr(s.IconScale, 1)
	}
	return append(layers, Layer{Text: &Text{
		Content:   value,
		Anchor:    anchorOf(f.Geometry),
		Scale:     floatOr(s.LabelScale, 1) * k,
		Opacity:   1,
		FillColor: defaultTextFill,
		Align:     AlignCenter,
		OffsetY:   offset,
	}})
}

func (r *Resolver) lineStroke(f *feature.Feature, defColor string, k float64) *Stroke {
	s := styleOf(f)
	return &Stroke{
		Color:   stringOr(s.LineColor, defColor),
		Width:   floatOr(s.LineWidth, defaultLineWidth) * k,
		Opacity: floatOr(s.Opacity, 1),
	}
}

func (r *Resolver) textScale(f *feature.Feature) float64 {
	return floatOr(styleOf(f).TextScale, 1)
}

var zeroOverride feature.StyleOverride

func styleOf(f *feature.Feature) *feature.StyleOverride {
	if f.Style != nil {
		return f.Style
	}
	return &zeroOverride
}

func anchorOf(g orb.Geometry) orb.Point {
	if p, ok := g.(orb.Point); ok {
		return p
	}
	b := g.Bound()
	return geometry.Midpoint(b.Min, b.Max)
}

func stringOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func floatOr(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
