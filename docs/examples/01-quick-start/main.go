package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/osmsf/pkg/osmsf"
)

func main() {
	// Open an OSM XML extract
	f, err := os.Open("extract.osm")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Load the entity graph
	doc, err := osmsf.LoadXML(context.Background(), f)
	if err != nil {
		log.Fatal(err)
	}

	// Assemble the five geometry collections
	dataset, err := osmsf.NewAssembler().Assemble(doc)
	if err != nil {
		log.Fatal(err)
	}

	// Print collection sizes
	for _, fs := range dataset.FeatureSets() {
		fmt.Printf("%-16s %d features\n", fs.Category(), fs.Len())
	}

	// Get document bounds
	bounds := dataset.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)
}
