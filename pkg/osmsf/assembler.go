package osmsf

import (
	"fmt"
	"io"

	"github.com/beetlebugorg/osmsf/internal/assembler"
)

// Assembler turns a loaded document into a Dataset.
//
// Create one with NewAssembler and use Assemble or AssembleWithOptions.
type Assembler interface {
	// Assemble runs one pass over the document with default options.
	//
	// The pass either completes with five category outputs (some
	// possibly empty) or aborts with an error naming the offending
	// entity id and error kind.
	Assemble(doc *Document) (*Dataset, error)

	// AssembleWithOptions runs one pass with custom options.
	//
	// Use AssembleOptions to control shape validation, parallelism, and
	// finding diagnostics.
	AssembleWithOptions(doc *Document, opts AssembleOptions) (*Dataset, error)
}

// NewAssembler creates an assembler with default settings.
//
// Example:
//
//	doc, _ := osmsf.LoadXML(ctx, reader)
//	dataset, err := osmsf.NewAssembler().Assemble(doc)
func NewAssembler() Assembler {
	return &assemblerWrapper{}
}

// assemblerWrapper wraps the internal assembler and converts types.
type assemblerWrapper struct{}

func (a *assemblerWrapper) Assemble(doc *Document) (*Dataset, error) {
	return a.AssembleWithOptions(doc, DefaultAssembleOptions())
}

func (a *assemblerWrapper) AssembleWithOptions(doc *Document, opts AssembleOptions) (*Dataset, error) {
	var dataset *Dataset
	var err error
	if opts.Parallel {
		dataset, err = assembleParallel(doc, opts)
	} else {
		var res *assembler.Result
		res, err = assembler.Assemble(doc.store, doc.keys, assembler.Options{
			ValidateShapes: opts.ValidateShapes,
		})
		if err == nil {
			dataset = convertDataset(res, doc.bounds, doc.crs)
		}
	}
	if err != nil {
		return nil, err
	}
	if opts.ErrorLog != nil {
		logFindings(opts.ErrorLog, dataset.Report())
	}
	return dataset, nil
}

// logFindings writes each finding on its own line, in report order.
func logFindings(w io.Writer, rep Report) {
	for _, u := range rep.UnclosedRings {
		fmt.Fprintf(w, "relation %d: %d open %s chain(s), excluded from multipolygon output\n",
			u.RelationID, u.OpenChains, u.Role)
	}
	for _, id := range rep.EmptyPolygons {
		fmt.Fprintf(w, "relation %d: no exterior ring, excluded from multipolygon output\n", id)
	}
	for _, f := range rep.ForeignRoles {
		fmt.Fprintf(w, "relation %d: way %d has role %q, excluded from ring assembly\n",
			f.RelationID, f.WayID, f.Role)
	}
	for _, d := range rep.DroppedKeys {
		fmt.Fprintf(w, "%s %s: tag key %q outside key universe, dropped\n",
			d.Category, d.Label, d.Key)
	}
}
