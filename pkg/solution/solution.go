// Package solution implements the immutable Solution record: a bundle
// of drone and technician paths together with their derived arrival
// timestamps, waiting times and two-dimensional cost vector.
package solution

import (
	"sort"
	"strconv"
	"strings"

	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/kernel"
	"github.com/d2dtabu/engine/pkg/pareto"
	"github.com/d2dtabu/engine/pkg/problem"
)

// Solution is an immutable bundle of drone and technician routes plus
// their derived costs. Every exported slice is owned by the Solution and
// must not be mutated by callers; new Solutions are always produced by
// New, a movedesc.Apply, or Shuffle, never by in-place edits.
type Solution struct {
	Problem *problem.Problem

	// DronePaths[d] is the ordered list of sorties flown by drone d,
	// each sortie an (0, c1, ..., ck, 0) path.
	DronePaths [][][]int
	// TechPaths[t] is technician t's single path.
	TechPaths [][]int

	DroneArrivalTS [][][]float64
	TechArrivalTS  [][]float64

	// DroneTimespan[d] is the last arrival timestamp of drone d's last
	// sortie, or 0 if drone d flew no sorties.
	DroneTimespan []float64
	TechTimespan  []float64

	DroneWaiting [][]float64
	TechWaiting  []float64

	Cost        pareto.Cost
	ToPropagate bool
}

// New constructs a Solution from paths, computing every derived quantity:
// per-sortie arrival timestamps (sorties on the same drone are chained,
// each starting at the previous sortie's completion time), waiting times,
// per-vehicle timespans, and the two-dimensional cost vector (makespan,
// cumulative waiting). ToPropagate defaults to true.
func New(p *problem.Problem, dronePaths [][][]int, techPaths [][]int) (*Solution, error) {
	if len(dronePaths) != p.Drones {
		return nil, ierrors.Newf(ierrors.KindIntegrity, nil, "drone path count %d, want %d drones", len(dronePaths), p.Drones)
	}
	if len(techPaths) != p.Technicians {
		return nil, ierrors.Newf(ierrors.KindIntegrity, nil, "tech path count %d, want %d technicians", len(techPaths), p.Technicians)
	}

	s := &Solution{
		Problem:        p,
		DronePaths:     dronePaths,
		TechPaths:      techPaths,
		DroneArrivalTS: make([][][]float64, len(dronePaths)),
		DroneWaiting:   make([][]float64, len(dronePaths)),
		DroneTimespan:  make([]float64, len(dronePaths)),
		TechArrivalTS:  make([][]float64, len(techPaths)),
		TechWaiting:    make([]float64, len(techPaths)),
		TechTimespan:   make([]float64, len(techPaths)),
		ToPropagate:    true,
	}

	for d, sorties := range dronePaths {
		s.DroneArrivalTS[d] = make([][]float64, len(sorties))
		s.DroneWaiting[d] = make([]float64, len(sorties))
		offset := 0.0
		for i, path := range sorties {
			ts := kernel.DroneArrivalTimestamps(p, path, offset)
			s.DroneArrivalTS[d][i] = ts
			s.DroneWaiting[d][i] = kernel.TotalWaiting(p, path, ts, true)
			if len(ts) > 0 {
				offset = ts[len(ts)-1]
			}
		}
		s.DroneTimespan[d] = offset
	}

	for t, path := range techPaths {
		ts := kernel.TechnicianArrivalTimestamps(p, path, 0)
		s.TechArrivalTS[t] = ts
		s.TechWaiting[t] = kernel.TotalWaiting(p, path, ts, false)
		if len(ts) > 0 {
			s.TechTimespan[t] = ts[len(ts)-1]
		}
	}

	s.Cost = computeCost(s)
	return s, nil
}

func computeCost(s *Solution) pareto.Cost {
	makespan := 0.0
	for _, t := range s.DroneTimespan {
		if t > makespan {
			makespan = t
		}
	}
	for _, t := range s.TechTimespan {
		if t > makespan {
			makespan = t
		}
	}

	var waiting float64
	for _, perDrone := range s.DroneWaiting {
		for _, w := range perDrone {
			waiting += w
		}
	}
	for _, w := range s.TechWaiting {
		waiting += w
	}

	return pareto.Cost{makespan, waiting}
}

// Key renders a canonical string identifying this Solution for equality
// and hashing purposes: the unordered set of drone sub-paths (sorted
// lexicographically so re-orderings across drones collapse to the same
// key), the ordered technician paths, and the rounded cost.
func (s *Solution) Key() string {
	var allSorties []string
	for _, sorties := range s.DronePaths {
		for _, path := range sorties {
			allSorties = append(allSorties, pathString(path))
		}
	}
	sort.Strings(allSorties)

	var b strings.Builder
	b.WriteString(strings.Join(allSorties, ";"))
	b.WriteByte('#')
	for _, path := range s.TechPaths {
		b.WriteString(pathString(path))
		b.WriteByte(';')
	}
	b.WriteByte('#')
	b.WriteString(s.Cost.Key())
	return b.String()
}

func pathString(path []int) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// Equal reports whether s and other share the same Key.
func (s *Solution) Equal(other *Solution) bool {
	if other == nil {
		return false
	}
	return s.Key() == other.Key()
}

// CostVector satisfies pkg/priority's Candidate interface, letting
// propagation-priority functions rank *Solution directly.
func (s *Solution) CostVector() pareto.Cost { return s.Cost }
