package external

import (
	"context"

	"github.com/d2dtabu/engine/pkg/pareto"
	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
)

// ProblemSource turns whatever on-disk or network representation an
// external caller holds (the text problem files with their
// `Customers N` / `number_drone D` headers and per-customer rows, plus
// the JSON-shaped truck and drone configuration files) into an
// already-validated Problem. This package parses none of it; a
// command-line front-end implements ProblemSource and hands pkg/driver
// an already-built *problem.Problem.
type ProblemSource interface {
	// Load returns a fully validated Problem, or a *ierrors.Error of
	// kind ProblemImportError.
	Load(ctx context.Context) (*problem.Problem, error)
}

// RunSummary is the subset of a completed run a ResultSink needs to
// render a result dump: the problem name, the run configuration, and
// the loop's closing statistics. The engine computes none of the
// JSON/CSV encoding itself.
type RunSummary struct {
	ProblemName         string
	IterationsCount     int
	TabuSize            int
	DroneConfig         problem.DroneVariant
	PropagationPriority string
	LastImproved        int
	ElapsedSeconds      float64
}

// ResultSink persists a finished Pareto set however the caller sees
// fit: a JSON dump, a CSV export, a plot, or a multi-run comparison
// row. The engine only ever produces a *pareto.Set[*solution.Solution];
// everything downstream of that is the caller's concern.
type ResultSink interface {
	Write(ctx context.Context, summary RunSummary, results *pareto.Set[*solution.Solution]) error
}

// WorkerIndexRange is one slice of the cartesian (source, destination)
// enumeration a neighborhood splits across its worker pool.
// pkg/neighborhood's in-process batch dispatch never needs this type,
// since goroutines share the parent Solution and Problem by reference,
// but a distributed deployment that fans neighborhood evaluation across
// processes or machines would marshal exactly this shape across the
// wire instead of a full Solution.
type WorkerIndexRange struct {
	Source, Destination [2]int
}

// WorkerBundle is the envelope a distributed worker pool would
// exchange: a neighborhood identifier plus extras (problem identifier,
// drone configuration variant) sufficient for a worker to re-hydrate
// its process-local Problem cache, and the index ranges that worker
// must evaluate. The discipline that the envelope carry move
// descriptors, never full Solutions, keeps its size proportional to the
// number of winning moves rather than the enumerated search space.
// That is worth preserving even though this engine's actual worker pool
// is in-process goroutines.
type WorkerBundle struct {
	Neighborhood string
	ProblemID    string
	DroneConfig  problem.DroneVariant
	Ranges       []WorkerIndexRange
}
