package style

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed legends.yaml
var defaultCatalogYAML []byte

// LegendEntry is one predefined cartographic line symbology in the
// catalog. RepeatText, when set, renders as repeating text along the
// line in addition to the stroke.
type LegendEntry struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Color      string    `yaml:"color"`
	Width      float64   `yaml:"width"`
	Dash       []float64 `yaml:"dash,omitempty"`
	Opacity    float64   `yaml:"opacity"`
	RepeatText string    `yaml:"repeat-text,omitempty"`
}

// Catalog is the named set of legend-line symbologies.
type Catalog struct {
	entries map[string]LegendEntry
	order   []string
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Legends []LegendEntry `yaml:"legends"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("legend catalog: %w", err)
	}
	c := &Catalog{entries: make(map[string]LegendEntry)}
	for _, e := range doc.Legends {
		if e.ID == "" {
			return nil, fmt.Errorf("legend catalog: entry %q missing id", e.Name)
		}
		if e.Opacity == 0 {
			e.Opacity = 1
		}
		if e.Width == 0 {
			e.Width = 2
		}
		c.entries[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	return c, nil
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultCatalogYAML)
	if err != nil {
		// The embedded catalog is fixed at build time.
		panic(err)
	}
	return c
}

// Get looks an entry up by id.
func (c *Catalog) Get(id string) (LegendEntry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Entries returns the catalog in file order.
func (c *Catalog) Entries() []LegendEntry {
	out := make([]LegendEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}
