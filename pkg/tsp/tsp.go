// Package tsp treats the single-objective Travelling-Salesman problem
// as a structural sub-case of the delivery engine: a thin constructor
// for a degenerate Problem (zero drones, one technician, every customer
// non-dronable) plus a wrapper around pkg/driver that collapses the
// bi-objective cost vector down to the single makespan dimension,
// reusing every other component unchanged.
package tsp

import (
	"context"
	"math"

	"k8s.io/klog/v2"

	"github.com/d2dtabu/engine/pkg/driver"
	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
)

// NewProblem builds a degenerate Problem for the TSP sub-case: zero
// drones, a single technician, every customer marked non-dronable, and
// zero demand everywhere (a technician path carries no capacity limit,
// so demand is irrelevant here). serviceTime is shared by both the
// drone and technician service-time slots even though no drone ever
// visits a node in this sub-case.
func NewProblem(n int, coords []problem.Coord, serviceTime []float64, truckSpeed problem.TruckSpeedProfile) (*problem.Problem, error) {
	size := n + 1
	if len(serviceTime) != size {
		return nil, ierrors.Newf(ierrors.KindProblemImport, nil,
			"serviceTime has length %d, want %d (N+1)", len(serviceTime), size)
	}
	demand := make([]float64, size)
	dronable := make([]bool, size)
	return problem.New(n, 0, 1, coords, demand, serviceTime, serviceTime, dronable, truckSpeed, problem.DroneConfig{})
}

// Result is the TSP sub-case's single-objective outcome: the winning
// tour, its makespan, and the full bi-objective Solution it was drawn
// from (kept for callers that still want the waiting-time dimension for
// diagnostics).
type Result struct {
	Tour     []int
	Makespan float64
	Solution *solution.Solution
}

// Solve runs the shared tabu-search driver against p (which must have
// been built by NewProblem, or otherwise carry zero drones and one
// technician) and returns the Pareto member with the smallest makespan.
// The waiting-time dimension of the engine's bi-objective cost is
// ignored entirely, collapsing the shared engine's output to TSP's
// single objective.
func Solve(ctx context.Context, p *problem.Problem, args driver.Args, logger klog.Logger) (Result, error) {
	if p.Drones != 0 || p.Technicians != 1 {
		return Result{}, ierrors.New(ierrors.KindProblemImport,
			"tsp.Solve requires a degenerate Problem with zero drones and one technician", nil)
	}

	d := driver.New(p, args, logger)
	results, err := d.Run(ctx)
	if err != nil {
		return Result{}, err
	}

	best := Result{Makespan: math.Inf(1)}
	for _, s := range results.All() {
		if len(s.Cost) == 0 || s.Cost[0] >= best.Makespan {
			continue
		}
		best = Result{
			Tour:     append([]int(nil), s.TechPaths[0]...),
			Makespan: s.Cost[0],
			Solution: s,
		}
	}
	if best.Solution == nil {
		return Result{}, ierrors.New(ierrors.KindIntegrity, "tabu search produced no solutions", nil)
	}
	return best, nil
}
