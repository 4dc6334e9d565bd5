package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beetlebugorg/osmsf/pkg/osmsf"
)

func assembleWithDiagnostics(path string) (*osmsf.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("extract not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	doc, err := osmsf.LoadXML(context.Background(), f)
	if err != nil {
		// Log detailed error
		log.Printf("Failed to load %s: %v", path, err)
		return nil, err
	}

	// Route data-quality findings to stderr as they are recorded
	opts := osmsf.DefaultAssembleOptions()
	opts.ErrorLog = os.Stderr
	dataset, err := osmsf.NewAssembler().AssembleWithOptions(doc, opts)
	if err != nil {
		// A fatal error names the offending entity, for example
		// "way 42 references missing node 7"
		log.Printf("Failed to assemble %s: %v", path, err)
		return nil, err
	}
	return dataset, nil
}

func main() {
	dataset, err := assembleWithDiagnostics("extract.osm")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	// Findings are also available on the dataset itself
	report := dataset.Report()
	if report.HasFindings() {
		log.Printf("Warning: %d relations excluded for unclosed rings",
			len(report.UnclosedRings))
		for _, u := range report.UnclosedRings {
			log.Printf("  relation %d: %d open %s chain(s)",
				u.RelationID, u.OpenChains, u.Role)
		}
		for _, fr := range report.ForeignRoles {
			log.Printf("  relation %d: way %d has role %q",
				fr.RelationID, fr.WayID, fr.Role)
		}
	}

	labels := make([]string, 0, dataset.MultiPolygons().Len())
	for i := 0; i < dataset.MultiPolygons().Len(); i++ {
		labels = append(labels, dataset.MultiPolygons().Label(i))
	}
	fmt.Printf("Assembled multipolygons: %s\n", strings.Join(labels, ", "))
}
