// Package export serializes the feature collection to interchange
// formats. Exporters never mutate the features they serialize.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"mapmark/feature"
)

// Exporter converts a feature set to an interchange payload.
type Exporter interface {
	Export(features []*feature.Feature) ([]byte, error)
	GetFileExtension() string
	GetFormatName() string
}

// GeoJSONExporter writes a GeoJSON FeatureCollection carrying the full
// feature property contract: the kind discriminator flag, kind-specific
// metadata, style overrides, and the folder assignment.
type GeoJSONExporter struct{}

// NewGeoJSONExporter creates a new GeoJSON exporter.
func NewGeoJSONExporter() *GeoJSONExporter {
	return &GeoJSONExporter{}
}

// Export converts the features to a GeoJSON document.
func (e *GeoJSONExporter) Export(features []*feature.Feature) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf, err := encodeFeature(f)
		if err != nil {
			return nil, err
		}
		fc.Append(gf)
	}
	return json.MarshalIndent(fc, "", "  ")
}

// GetFileExtension returns the file extension for GeoJSON.
func (e *GeoJSONExporter) GetFileExtension() string {
	return ".geojson"
}

// GetFormatName returns the format name.
func (e *GeoJSONExporter) GetFormatName() string {
	return "GeoJSON"
}

func encodeFeature(f *feature.Feature) (*geojson.Feature, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("export: feature %s has no geometry", f.ID)
	}
	gf := geojson.NewFeature(orb.Clone(f.Geometry))
	gf.ID = f.ID
	props := gf.Properties

	props[f.Kind.PropertyName()] = true

	if f.FolderID != "" {
		props[feature.KeyFolderID] = f.FolderID
	}
	if f.Text != nil {
		props[feature.KeyTextContent] = f.Text.Content
	}
	if f.Measure != nil {
		props[feature.KeyDistance] = f.Measure.Distance
		if f.Measure.Unit != "" {
			props[feature.KeyUnit] = f.Measure.Unit
		}
	}
	if f.Icon != nil {
		if f.Icon.Path != "" {
			props[feature.KeyIconPath] = f.Icon.Path
		}
		if f.Icon.Symbol != "" {
			props[feature.KeyIconSymbol] = f.Icon.Symbol
		}
	}
	if f.Legend != nil && f.Legend.TypeID != "" {
		props[feature.KeyLegendTypeID] = f.Legend.TypeID
	}

	encodeStyle(props, f.Style)

	for k, v := range f.Attrs {
		if _, taken := props[k]; !taken {
			props[k] = v
		}
	}
	return gf, nil
}

func encodeStyle(props geojson.Properties, s *feature.StyleOverride) {
	if s.IsZero() {
		return
	}
	setS := func(key string, v *string) {
		if v != nil {
			props[key] = *v
		}
	}
	setF := func(key string, v *float64) {
		if v != nil {
			props[key] = *v
		}
	}
	setS(feature.KeyLineColor, s.LineColor)
	setF(feature.KeyLineWidth, s.LineWidth)
	setF(feature.KeyOpacity, s.Opacity)
	setS(feature.KeyStrokeColor, s.StrokeColor)
	setF(feature.KeyStrokeOpacity, s.StrokeOpacity)
	setS(feature.KeyFillColor, s.FillColor)
	setF(feature.KeyFillOpacity, s.FillOpacity)
	setF(feature.KeyIconScale, s.IconScale)
	setF(feature.KeyLabelScale, s.LabelScale)
	setF(feature.KeyTextScale, s.TextScale)
	setF(feature.KeyTextRotation, s.TextRotation)
	setF(feature.KeyTextOpacity, s.TextOpacity)
	setS(feature.KeyTextFillColor, s.TextFillColor)
	setS(feature.KeyTextStroke, s.TextStroke)
	setS(feature.KeyTextAlign, s.TextAlign)
}
