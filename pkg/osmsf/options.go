package osmsf

import "io"

// AssembleOptions configures an assembly pass.
type AssembleOptions struct {
	// ValidateShapes runs the full shape-consistency check over every
	// output collection at the end of the pass. Per-feature checks
	// always run. Default is true.
	ValidateShapes bool

	// Parallel assembles the output categories concurrently. The
	// categories have no data dependency on each other; results merge
	// deterministically in the fixed output order.
	Parallel bool

	// Workers is the number of worker goroutines when Parallel is set.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// ErrorLog is an optional writer for the pass's data-quality
	// findings (unclosed rings, foreign roles, dropped keys). The same
	// findings are always available via Dataset.Report.
	ErrorLog io.Writer
}

// DefaultAssembleOptions returns assemble options with defaults.
func DefaultAssembleOptions() AssembleOptions {
	return AssembleOptions{
		ValidateShapes: true,
		Parallel:       false,
		Workers:        0,
		ErrorLog:       nil,
	}
}
