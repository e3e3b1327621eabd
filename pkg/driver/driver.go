package driver

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/d2dtabu/engine/pkg/metrics"
	"github.com/d2dtabu/engine/pkg/neighborhood"
	"github.com/d2dtabu/engine/pkg/pareto"
	"github.com/d2dtabu/engine/pkg/priority"
	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
	"github.com/d2dtabu/engine/pkg/telemetry"
)

// Driver runs the multi-objective tabu search against a fixed Problem:
// a fixed-budget iteration loop over a frontier of propagating
// Solutions, with a shared Pareto set collecting every non-dominated
// candidate discovered along the way.
type Driver struct {
	Problem       *problem.Problem
	Neighborhoods []neighborhood.Neighborhood
	Args          Args
	Logger        klog.Logger
}

// New constructs a Driver for p, defaulting args and building a fresh
// StandardSet of neighborhoods over its own tabu registries.
func New(p *problem.Problem, args Args, logger klog.Logger) *Driver {
	SetDefaults_Args(&args)
	registries := neighborhood.NewRegistries(args.TabuSize)
	return &Driver{
		Problem:       p,
		Neighborhoods: neighborhood.StandardSet(registries),
		Args:          args,
		Logger:        logger,
	}
}

// Run executes the tabu search to completion and returns the Pareto
// set of Solutions discovered. The loop always runs the full
// IterationsCount, with no early exit.
func (d *Driver) Run(ctx context.Context) (*pareto.Set[*solution.Solution], error) {
	SetDefaults_Args(&d.Args)
	if err := ValidateArgs(&d.Args); err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	logger := d.Logger.WithValues("runID", runID, "iterationsCount", d.Args.IterationsCount)

	initial, err := solution.Initial(d.Problem)
	if err != nil {
		return nil, err
	}

	results := pareto.NewSet[*solution.Solution]()
	results.Add(initial.Cost, initial)

	current := []*solution.Solution{initial}
	lastImproved := 0

	var extremes priority.Extremes
	extremes.Observe(initial.Cost)

	priorityFn, _ := priority.ByName(d.Args.PriorityName)
	var mu sync.Mutex

	for iteration := 0; iteration < d.Args.IterationsCount; iteration++ {
		counter := results.Counter()
		d.Args.BeforeIteration(iteration, lastImproved, current, counter)

		iterCtx, span := telemetry.StartIteration(ctx, runID, iteration)
		propagate, improved, err := d.runIteration(iterCtx, current, results, &extremes, &mu)
		span.End()
		if err != nil {
			return nil, err
		}
		if improved {
			lastImproved = iteration
		}

		if len(propagate) == 0 {
			propagate, err = diversify(current)
			if err != nil {
				return nil, err
			}
			logger.V(4).Info("no productive candidates, forcing diversification", "iteration", iteration)
		}

		orderPropagation(propagate, results, extremes, priorityFn)

		limit := d.Args.MaxPropagation(iteration, results.Counter())
		if limit > 0 && limit < len(propagate) {
			propagate = propagate[:limit]
		}

		current = propagate
		metrics.IterationsTotal.Inc()
		metrics.ParetoSetSize.Set(float64(results.Len()))
		d.Args.AfterIteration(iteration, lastImproved, current, results.Counter())
		logger.V(2).Info("iteration complete",
			"iteration", iteration, "resultsCount", results.Len(), "propagateCount", len(current))
	}

	return d.postOptimize(results)
}

// postOptimize runs the configured PostOptimization hook over every
// final Pareto member and merges the transformed solutions back through
// dominance pruning. A nil hook is the identity.
func (d *Driver) postOptimize(results *pareto.Set[*solution.Solution]) (*pareto.Set[*solution.Solution], error) {
	if d.Args.PostOptimization == nil {
		return results, nil
	}
	out := pareto.NewSet[*solution.Solution]()
	for _, s := range results.All() {
		improved, err := d.Args.PostOptimization(s)
		if err != nil {
			return nil, err
		}
		out.Add(improved.Cost, improved)
	}
	return out, nil
}

// runIteration fans current out across a Tier-1 pool bounded to
// min(Workers, len(current)), each task walking its shuffled
// neighborhoods sequentially and breaking at the first one that
// propagates a candidate.
func (d *Driver) runIteration(
	ctx context.Context,
	current []*solution.Solution,
	results *pareto.Set[*solution.Solution],
	extremes *priority.Extremes,
	mu *sync.Mutex,
) ([]*solution.Solution, bool, error) {
	workers := d.Args.Workers
	if len(current) < workers {
		workers = len(current)
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

	var propagate []*solution.Solution
	seen := make(map[string]bool)
	improved := false

	for _, s := range current {
		s := s
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			if err := gctx.Err(); err != nil {
				return err
			}
			if d.processSolution(gctx, s, mu, results, &propagate, extremes, seen) {
				mu.Lock()
				improved = true
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}
	return propagate, improved, nil
}

// processSolution walks s's shuffled neighborhoods, merging every
// candidate into results and collecting the deduplicated, to_propagate
// ones. Reports whether any candidate improved results.
func (d *Driver) processSolution(
	ctx context.Context,
	s *solution.Solution,
	mu *sync.Mutex,
	results *pareto.Set[*solution.Solution],
	propagate *[]*solution.Solution,
	extremes *priority.Extremes,
	seen map[string]bool,
) bool {
	order := append([]neighborhood.Neighborhood(nil), d.Neighborhoods...)
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	improved := false
	for _, n := range order {
		_, span := telemetry.StartBatch(ctx, n.Name())
		candidates := n.FindBestCandidates(s, d.Args.NeighborhoodWorkers)
		span.End()
		propagated := false

		mu.Lock()
		for _, c := range candidates {
			extremes.Observe(c.Cost)
			if added, _ := results.Add(c.Cost, c.Solution); added {
				improved = true
			}
			if c.ToPropagate {
				propagated = true
				key := c.Solution.Key()
				if !seen[key] {
					seen[key] = true
					*propagate = append(*propagate, c.Solution)
				}
			}
		}
		mu.Unlock()

		d.Logger.V(5).Info("neighborhood evaluated",
			"neighborhood", n.Name(), "candidates", len(candidates), "propagated", propagated)
		if propagated {
			break
		}
	}
	return improved
}

// diversify is the forced-diversification fallback: when no candidate
// propagated this iteration, shuffle a copy of every current Solution
// instead.
func diversify(current []*solution.Solution) ([]*solution.Solution, error) {
	out := make([]*solution.Solution, len(current))
	for i, s := range current {
		shuffled, err := s.Shuffle()
		if err != nil {
			return nil, err
		}
		out[i] = shuffled
	}
	return out, nil
}

// orderPropagation orders propagate by the propagation-priority
// function when one is configured, or randomly otherwise.
func orderPropagation(propagate []*solution.Solution, results *pareto.Set[*solution.Solution], extremes priority.Extremes, fn priority.Func) {
	if fn != nil {
		priority.Sort(propagate, results.Counter(), results.Keys(), extremes, fn)
		return
	}
	rand.Shuffle(len(propagate), func(i, j int) { propagate[i], propagate[j] = propagate[j], propagate[i] })
}
