package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"mapmark/feature"
	"mapmark/importer"
)

func TestExportCarriesPropertyContract(t *testing.T) {
	f := feature.New(feature.KindLegend, orb.LineString{{0, 0}, {100, 0}})
	f.Legend.TypeID = "water-pipe"
	f.FolderID = "utilities"
	f.Style = &feature.StyleOverride{
		LineColor: feature.String("#0277bd"),
		LineWidth: feature.Float(3),
	}

	data, err := NewGeoJSONExporter().Export([]*feature.Feature{f})
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string                 `json:"id"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if doc.Type != "FeatureCollection" {
		t.Errorf("Expected a FeatureCollection, got %q", doc.Type)
	}
	props := doc.Features[0].Properties
	if props["is-legend-line"] != true {
		t.Error("Expected the kind discriminator flag")
	}
	if props[feature.KeyLegendTypeID] != "water-pipe" {
		t.Errorf("Expected legend type id, got %v", props[feature.KeyLegendTypeID])
	}
	if props[feature.KeyFolderID] != "utilities" {
		t.Errorf("Expected folder id, got %v", props[feature.KeyFolderID])
	}
	if props[feature.KeyLineColor] != "#0277bd" {
		t.Errorf("Expected line color override, got %v", props[feature.KeyLineColor])
	}
	if doc.Features[0].ID != f.ID {
		t.Errorf("Expected the feature id on the wire, got %q", doc.Features[0].ID)
	}
}

func TestRoundTrip(t *testing.T) {
	point := feature.New(feature.KindPoint, orb.Point{1, 2})
	point.Attrs = map[string]string{"name": "valve 3"}

	measure := feature.New(feature.KindMeasure, orb.LineString{{0, 0}, {1500, 0}})
	measure.Measure.Unit = "km"

	text := feature.New(feature.KindText, orb.Point{5, 5})
	text.Text.Content = "pump house"

	icon := feature.New(feature.KindIcon, orb.Point{9, 9})
	icon.Icon.Symbol = "tower"
	icon.Style = &feature.StyleOverride{IconScale: feature.Float(2)}

	cloud := feature.New(feature.KindRevCloud, orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}})

	in := []*feature.Feature{point, measure, text, icon, cloud}
	data, err := NewGeoJSONExporter().Export(in)
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}

	imp := importer.NewGeoJSONImporter()
	if !imp.CanImport(data) {
		t.Fatal("Expected the payload to be recognized")
	}
	out, err := imp.Import(data)
	if err != nil {
		t.Fatalf("Expected import to succeed, got %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("Expected %d features, got %d", len(in), len(out))
	}

	for i, f := range out {
		if f.Kind != in[i].Kind {
			t.Errorf("Feature %d: expected kind %v, got %v", i, in[i].Kind, f.Kind)
		}
		if f.ID != in[i].ID {
			t.Errorf("Feature %d: expected id preserved, got %q", i, f.ID)
		}
	}
	if out[0].Attrs["name"] != "valve 3" {
		t.Errorf("Expected attribute carried through, got %v", out[0].Attrs)
	}
	if out[1].Measure == nil || out[1].Measure.Unit != "km" {
		t.Error("Expected measure unit carried through")
	}
	if out[1].Measure.Distance != 1500 {
		t.Errorf("Expected distance recomputed on import, got %v", out[1].Measure.Distance)
	}
	if out[2].Text == nil || out[2].Text.Content != "pump house" {
		t.Error("Expected text content carried through")
	}
	if out[3].Icon == nil || out[3].Icon.Symbol != "tower" {
		t.Error("Expected icon symbol carried through")
	}
	if out[3].Style == nil || out[3].Style.IconScale == nil || *out[3].Style.IconScale != 2 {
		t.Error("Expected icon scale override carried through")
	}
}

func TestImportIsAtomic(t *testing.T) {
	bad := []byte(`{"type":"FeatureCollection","features":[{"type":"Feature"`)
	if _, err := importer.NewGeoJSONImporter().Import(bad); err == nil {
		t.Error("Expected malformed payload to fail")
	}
}

func TestImportFallbackKinds(t *testing.T) {
	payload := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[5,5]]},"properties":{}},
		{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{}}
	]}`
	out, err := importer.NewGeoJSONImporter().Import([]byte(payload))
	if err != nil {
		t.Fatalf("Expected import to succeed, got %v", err)
	}
	want := []feature.Kind{feature.KindPoint, feature.KindPolyline, feature.KindBox}
	for i, k := range want {
		if out[i].Kind != k {
			t.Errorf("Feature %d: expected fallback kind %v, got %v", i, k, out[i].Kind)
		}
	}
}

func TestExporterMetadata(t *testing.T) {
	e := NewGeoJSONExporter()
	if e.GetFileExtension() != ".geojson" {
		t.Errorf("Expected .geojson, got %s", e.GetFileExtension())
	}
	if !strings.EqualFold(e.GetFormatName(), "geojson") {
		t.Errorf("Expected GeoJSON format name, got %s", e.GetFormatName())
	}
}
