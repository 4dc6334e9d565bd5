package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/beetlebugorg/osmsf/pkg/osmsf"
	"github.com/paulmach/osm/osmpbf"
)

func main() {
	f, err := os.Open("extract.osm.pbf")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Back the entity store with LevelDB for extracts too large to
	// hold in memory
	store, err := osmsf.OpenDiskStore("entities.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(0))
	doc, err := osmsf.Load(ctx, scanner, osmsf.LoadOptions{DiskStore: store})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d nodes, %d ways, %d relations\n",
		doc.NodeCount(), doc.WayCount(), doc.RelationCount())

	// Assemble the output categories concurrently
	opts := osmsf.DefaultAssembleOptions()
	opts.Parallel = true
	dataset, err := osmsf.NewAssembler().AssembleWithOptions(doc, opts)
	if err != nil {
		log.Fatal(err)
	}

	for _, fs := range dataset.FeatureSets() {
		fmt.Printf("%-16s %d features\n", fs.Category(), fs.Len())
	}
}
