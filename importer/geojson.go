// Package importer parses interchange payloads back into features.
// Imports are atomic: a malformed payload yields an error and no
// features, never a partial set.
package importer

import (
	"bytes"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mapmark/feature"
)

// Importer parses an interchange payload into features.
type Importer interface {
	CanImport(data []byte) bool
	Import(data []byte) ([]*feature.Feature, error)
}

// GeoJSONImporter reads the GeoJSON FeatureCollections written by the
// exporter, reconstructing kind discriminators, metadata, style
// overrides, and folder assignments.
type GeoJSONImporter struct{}

// NewGeoJSONImporter creates a new GeoJSON importer.
func NewGeoJSONImporter() *GeoJSONImporter {
	return &GeoJSONImporter{}
}

// CanImport checks if the payload looks like a GeoJSON collection.
func (i *GeoJSONImporter) CanImport(data []byte) bool {
	return bytes.Contains(data, []byte("FeatureCollection"))
}

// Import parses the payload. Unknown discriminators fall back to a
// generic kind derived from the geometry type.
func (i *GeoJSONImporter) Import(data []byte) ([]*feature.Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("import geojson: %w", err)
	}
	out := make([]*feature.Feature, 0, len(fc.Features))
	for idx, gf := range fc.Features {
		f, err := decodeFeature(gf)
		if err != nil {
			return nil, fmt.Errorf("import geojson: feature %d: %w", idx, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeFeature(gf *geojson.Feature) (*feature.Feature, error) {
	if gf.Geometry == nil {
		return nil, fmt.Errorf("missing geometry")
	}
	props := map[string]interface{}(gf.Properties)

	kind, found := decodeKind(props)
	if !found {
		kind = fallbackKind(gf.Geometry)
	}

	f := feature.New(kind, orb.Clone(gf.Geometry))
	if id, ok := gf.ID.(string); ok && id != "" {
		f.ID = id
	}
	f.FolderID = propString(props, feature.KeyFolderID)

	if f.Text != nil {
		f.Text.Content = propString(props, feature.KeyTextContent)
	}
	if f.Measure != nil {
		f.Measure.Unit = propString(props, feature.KeyUnit)
		f.RefreshMeasure()
	}
	if f.Icon != nil {
		f.Icon.Path = propString(props, feature.KeyIconPath)
		f.Icon.Symbol = propString(props, feature.KeyIconSymbol)
	}
	if f.Legend != nil {
		f.Legend.TypeID = propString(props, feature.KeyLegendTypeID)
	}

	f.Style = decodeStyle(props)
	f.Attrs = decodeAttrs(props)
	return f, nil
}

func decodeKind(props map[string]interface{}) (feature.Kind, bool) {
	for _, k := range feature.Kinds() {
		if b, ok := props[k.PropertyName()].(bool); ok && b {
			return k, true
		}
	}
	return 0, false
}

func fallbackKind(g orb.Geometry) feature.Kind {
	switch g.(type) {
	case orb.Point, orb.MultiPoint:
		return feature.KindPoint
	case orb.Polygon, orb.MultiPolygon:
		return feature.KindBox
	default:
		return feature.KindPolyline
	}
}

func decodeStyle(props map[string]interface{}) *feature.StyleOverride {
	s := &feature.StyleOverride{}
	getS := func(key string, dst **string) {
		if v, ok := props[key].(string); ok {
			*dst = feature.String(v)
		}
	}
	getF := func(key string, dst **float64) {
		if v, ok := propFloat(props, key); ok {
			*dst = feature.Float(v)
		}
	}
	getS(feature.KeyLineColor, &s.LineColor)
	getF(feature.KeyLineWidth, &s.LineWidth)
	getF(feature.KeyOpacity, &s.Opacity)
	getS(feature.KeyStrokeColor, &s.StrokeColor)
	getF(feature.KeyStrokeOpacity, &s.StrokeOpacity)
	getS(feature.KeyFillColor, &s.FillColor)
	getF(feature.KeyFillOpacity, &s.FillOpacity)
	getF(feature.KeyIconScale, &s.IconScale)
	getF(feature.KeyLabelScale, &s.LabelScale)
	getF(feature.KeyTextScale, &s.TextScale)
	getF(feature.KeyTextRotation, &s.TextRotation)
	getF(feature.KeyTextOpacity, &s.TextOpacity)
	getS(feature.KeyTextFillColor, &s.TextFillColor)
	getS(feature.KeyTextStroke, &s.TextStroke)
	getS(feature.KeyTextAlign, &s.TextAlign)
	if s.IsZero() {
		return nil
	}
	return s
}

// reservedKeys are the contract properties that never land in Attrs.
func reservedKeys() map[string]bool {
	keys := map[string]bool{
		feature.KeyLineColor: true, feature.KeyLineWidth: true,
		feature.KeyOpacity: true, feature.KeyStrokeColor: true,
		feature.KeyStrokeOpacity: true, feature.KeyFillColor: true,
		feature.KeyFillOpacity: true, feature.KeyIconScale: true,
		feature.KeyLabelScale: true, feature.KeyTextScale: true,
		feature.KeyTextRotation: true, feature.KeyTextOpacity: true,
		feature.KeyTextFillColor: true, feature.KeyTextStroke: true,
		feature.KeyTextAlign: true, feature.KeyLegendTypeID: true,
		feature.KeyDistance: true, feature.KeyUnit: true,
		feature.KeyTextContent: true, feature.KeyIconPath: true,
		feature.KeyIconSymbol: true, feature.KeyFolderID: true,
	}
	for _, k := range feature.Kinds() {
		keys[k.PropertyName()] = true
	}
	return keys
}

func decodeAttrs(props map[string]interface{}) map[string]string {
	reserved := reservedKeys()
	var attrs map[string]string
	for k, v := range props {
		if reserved[k] {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[k] = s
	}
	return attrs
}

func propString(props map[string]interface{}, key string) string {
	s, _ := props[key].(string)
	return s
}

func propFloat(props map[string]interface{}, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
