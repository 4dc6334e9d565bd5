package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/osmsf/pkg/osmsf"
)

func main() {
	f, err := os.Open("extract.osm")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	doc, err := osmsf.LoadXML(context.Background(), f)
	if err != nil {
		log.Fatal(err)
	}

	dataset, err := osmsf.NewAssembler().Assemble(doc)
	if err != nil {
		log.Fatal(err)
	}

	// Every collection carries a dense attribute table: one row per
	// feature, one column per tag key seen on that entity kind.
	polygons := dataset.Polygons()
	table := polygons.Table()

	fmt.Printf("Polygon attribute columns: %v\n\n", table.Columns())

	// Find all buildings
	for i := 0; i < polygons.Len(); i++ {
		value, ok := table.Value(i, "building")
		if !ok {
			continue
		}
		fmt.Printf("way %s: building=%s", polygons.Label(i), value)
		if name, ok := table.Value(i, "name"); ok {
			fmt.Printf(" (%s)", name)
		}
		fmt.Println()
	}

	// An unset cell is distinct from an explicitly empty tag value
	if value, ok := table.Value(0, "name"); ok {
		fmt.Printf("first polygon has a name tag: %q\n", value)
	} else {
		fmt.Println("first polygon has no name tag")
	}
}
