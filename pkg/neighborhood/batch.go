package neighborhood

import (
	"sync"

	"github.com/d2dtabu/engine/pkg/pareto"
	"github.com/d2dtabu/engine/pkg/solution"
)

// Candidate is a neighborhood's evaluated move: the materialized child
// Solution plus the nonnegative soft-feasibility penalty accumulated
// while reconstructing it. Violation never participates in Pareto
// dominance, and the driver neither logs it nor breaks ties with it; it
// rides along as metadata on the candidate.
type Candidate struct {
	*solution.Solution
	Violation float64
}

// Neighborhood is the contract every move neighborhood satisfies: given a
// parent Solution and a worker-pool size, return the neighborhood-local
// Pareto-pruned set of candidate moves. Implementations never mutate
// parent.
type Neighborhood interface {
	FindBestCandidates(parent *solution.Solution, workers int) []Candidate
	// Name identifies the neighborhood instance for metrics and tracing.
	Name() string
}

// moveFunc evaluates one enumerated move, reporting ok=false when the
// child Solution could not be built from the move's descriptor.
type moveFunc func() (Candidate, bool)

// batchRanges splits n items into at most workers roughly-equal
// [lo, hi) index ranges.
func batchRanges(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	base, rem := n/workers, n%workers
	ranges := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		ranges = append(ranges, [2]int{start, start + size})
		start += size
	}
	return ranges
}

// runBatches dispatches moves across up to workers goroutines, collects
// each goroutine's candidates, and merges them into a single
// neighborhood-local Pareto set keyed by cost, so only non-dominated
// moves reach the driver.
func runBatches(moves []moveFunc, workers int) []Candidate {
	ranges := batchRanges(len(moves), workers)
	if ranges == nil {
		return nil
	}

	results := make([][]Candidate, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i int, lo, hi int) {
			defer wg.Done()
			var out []Candidate
			for _, m := range moves[lo:hi] {
				if c, ok := m(); ok {
					out = append(out, c)
				}
			}
			results[i] = out
		}(i, r[0], r[1])
	}
	wg.Wait()

	set := pareto.NewSet[Candidate]()
	for _, batch := range results {
		for _, c := range batch {
			set.Add(c.Cost, c)
		}
	}
	return set.All()
}
