package driver

import (
	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/priority"
	"github.com/d2dtabu/engine/pkg/solution"
)

const (
	// DefaultWorkers bounds Tier 1: the pool of concurrent tasks walking
	// the current propagation frontier, one per Solution.
	DefaultWorkers = 8
	// DefaultNeighborhoodWorkers bounds Tier 2: the goroutines each
	// neighborhood's FindBestCandidates fans its enumeration across.
	DefaultNeighborhoodWorkers = 4
	DefaultIterationsCount     = 100
	DefaultTabuSize            = 50
	DefaultMaxPropagation      = 50
)

// MaxPropagationFunc computes the truncation limit for the next
// propagation frontier from the iteration index and the current
// cost-vector counter.
type MaxPropagationFunc func(iteration int, counter map[string]int) int

// Constant returns a MaxPropagationFunc that always truncates to n.
func Constant(n int) MaxPropagationFunc {
	return func(int, map[string]int) int { return n }
}

// Hook observes the driver's state at the start or end of an iteration.
type Hook func(iteration, lastImproved int, current []*solution.Solution, counter map[string]int)

func noopHook(int, int, []*solution.Solution, map[string]int) {}

// PostOptimizationFunc transforms one final Pareto member after the
// iteration loop finishes. Returning the input unchanged is the
// identity behavior a nil hook defaults to.
type PostOptimizationFunc func(*solution.Solution) (*solution.Solution, error)

// Args configures a Driver run.
type Args struct {
	// Workers bounds Tier 1 concurrency: min(Workers, len(current))
	// tasks run at a time.
	Workers int
	// NeighborhoodWorkers bounds Tier 2 concurrency inside each
	// neighborhood's FindBestCandidates call.
	NeighborhoodWorkers int
	IterationsCount     int
	TabuSize            int

	// PriorityName selects one of the named propagation-priority
	// functions (see pkg/priority.ByName), or "none"/"" for random
	// ordering of the next frontier.
	PriorityName string

	MaxPropagation  MaxPropagationFunc
	BeforeIteration Hook
	AfterIteration  Hook

	// PostOptimization, when non-nil, is applied to every Pareto member
	// once the iteration loop has finished; the results are merged back
	// through dominance pruning before Run returns.
	PostOptimization PostOptimizationFunc
}

// SetDefaults_Args fills in the zero-valued fields of args with the
// engine's defaults.
func SetDefaults_Args(args *Args) {
	if args.Workers <= 0 {
		args.Workers = DefaultWorkers
	}
	if args.NeighborhoodWorkers <= 0 {
		args.NeighborhoodWorkers = DefaultNeighborhoodWorkers
	}
	if args.IterationsCount <= 0 {
		args.IterationsCount = DefaultIterationsCount
	}
	if args.TabuSize <= 0 {
		args.TabuSize = DefaultTabuSize
	}
	if args.MaxPropagation == nil {
		args.MaxPropagation = Constant(DefaultMaxPropagation)
	}
	if args.BeforeIteration == nil {
		args.BeforeIteration = noopHook
	}
	if args.AfterIteration == nil {
		args.AfterIteration = noopHook
	}
}

// ValidateArgs checks args for the kind of malformed configuration the
// driver cannot run with.
func ValidateArgs(args *Args) error {
	if args.Workers <= 0 {
		return ierrors.New(ierrors.KindNeighborhoodConfiguration, "workers must be positive", nil)
	}
	if args.NeighborhoodWorkers <= 0 {
		return ierrors.New(ierrors.KindNeighborhoodConfiguration, "neighborhoodWorkers must be positive", nil)
	}
	if args.IterationsCount <= 0 {
		return ierrors.New(ierrors.KindNeighborhoodConfiguration, "iterationsCount must be positive", nil)
	}
	if args.TabuSize <= 0 {
		return ierrors.New(ierrors.KindNeighborhoodConfiguration, "tabuSize must be positive", nil)
	}
	if args.MaxPropagation == nil {
		return ierrors.New(ierrors.KindNeighborhoodConfiguration, "maxPropagation must not be nil", nil)
	}
	if args.PriorityName != "" && args.PriorityName != "none" {
		if _, ok := priority.ByName(args.PriorityName); !ok {
			return ierrors.Newf(ierrors.KindNeighborhoodConfiguration, nil, "unknown propagation priority %q", args.PriorityName)
		}
	}
	return nil
}
