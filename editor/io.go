package editor

import (
	"mapmark/export"
	"mapmark/feature"
	"mapmark/history"
	"mapmark/importer"
)

// ImportFeatures parses a GeoJSON payload and adds the features as one
// undoable batch. A malformed payload leaves the store unchanged.
func (e *Editor) ImportFeatures(data []byte) (int, error) {
	features, err := importer.NewGeoJSONImporter().Import(data)
	if err != nil {
		return 0, err
	}
	if len(features) == 0 {
		return 0, nil
	}
	rec := &feature.AddRecord{Store: e.store, Features: features}
	rec.Apply()
	e.hist.Record(&history.Batch{Name: "import", Records: []history.Record{rec}})
	return len(features), nil
}

// ExportGeoJSON serializes the whole feature collection.
func (e *Editor) ExportGeoJSON() ([]byte, error) {
	return export.NewGeoJSONExporter().Export(e.store.All())
}
