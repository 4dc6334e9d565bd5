package osmsf

import (
	"runtime"
	"sync"

	"github.com/beetlebugorg/osmsf/internal/assembler"
)

// assembleParallel runs the per-category assembly on a worker pool.
//
// The categories have no data dependency between them and the entity
// store is read-only for the pass, so relations, polygon ways, line
// ways, and nodes are assembled as independent tasks. Each task owns a
// private report; results and reports merge in the fixed output order,
// so the dataset is identical to a serial pass.
func assembleParallel(doc *Document, opts AssembleOptions) (*Dataset, error) {
	store := doc.store
	keys := doc.keys
	exclude := assembler.PolygonWayIDs(store)

	var (
		multiPolygons    *assembler.Collection
		multiLineStrings *assembler.Collection
		polygons         *assembler.Collection
		lineStrings      *assembler.Collection
		points           *assembler.Collection
	)
	reports := []*assembler.Report{
		assembler.NewReport(), assembler.NewReport(),
		assembler.NewReport(), assembler.NewReport(),
	}

	tasks := []func() error{
		func() (err error) {
			multiPolygons, multiLineStrings, err = assembler.AssembleRelations(store, keys, reports[0])
			return err
		},
		func() (err error) {
			polygons, err = assembler.AssembleWays(store, keys, assembler.WayPolygon, exclude, reports[1])
			return err
		},
		func() (err error) {
			lineStrings, err = assembler.AssembleWays(store, keys, assembler.WayLineString, exclude, reports[2])
			return err
		},
		func() (err error) {
			points, err = assembler.AssembleNodes(store, keys, reports[3])
			return err
		},
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan int, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				errs[idx] = tasks[idx]()
			}
		}()
	}
	for i := range tasks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	rep := assembler.NewReport()
	for _, r := range reports {
		rep.Merge(r)
	}

	res := &assembler.Result{
		Points:           points,
		LineStrings:      lineStrings,
		Polygons:         polygons,
		MultiPolygons:    multiPolygons,
		MultiLineStrings: multiLineStrings,
		Report:           rep,
	}
	if opts.ValidateShapes {
		for _, c := range res.Collections() {
			if err := assembler.CheckShapes(c); err != nil {
				return nil, err
			}
		}
	}
	return convertDataset(res, doc.bounds, doc.crs), nil
}
