package main

import (
	"flag"
	"fmt"
	"os"

	"mapmark/editor"
	"mapmark/export"
	"mapmark/importer"
	"mapmark/style"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive TUI mode")
		worldScale  = flag.Bool("world-scale", false, "Scale stroke widths and labels with the view resolution")
		outputFile  = flag.String("o", "", "Output file (default: stdout)")
		showLabels  = flag.Bool("labels", true, "Render label overlays for labelled features")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [annotations.geojson]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A map annotation editor that reads and writes GeoJSON feature collections.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                        # Start interactive editor on an empty map\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i notes.geojson       # Edit an existing annotation file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s notes.geojson          # Round-trip the file through the editor model\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -o out.geojson in.geojson\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	var filename string
	if len(args) > 0 {
		filename = args[0]
	}

	opts := editor.Options{
		Catalog: style.DefaultCatalog(),
		Style: style.Options{
			WorldScale: *worldScale,
			ShowLabels: *showLabels,
		},
	}

	if *interactive || filename == "" {
		if err := runInteractive(filename, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Non-interactive: load, normalize through the editor model, write back.
	e := editor.New(opts)
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		os.Exit(1)
	}
	if !importer.NewGeoJSONImporter().CanImport(data) {
		fmt.Fprintf(os.Stderr, "Error: %s does not look like a GeoJSON FeatureCollection\n", filename)
		os.Exit(1)
	}
	n, err := e.ImportFeatures(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", filename, err)
		os.Exit(1)
	}

	out, err := e.ExportGeoJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, out, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d features to %s (%s)\n", n, *outputFile, export.NewGeoJSONExporter().GetFormatName())
	} else {
		os.Stdout.Write(out)
		fmt.Println()
	}
}
