package solution

import "github.com/d2dtabu/engine/pkg/kernel"

// Feasible verifies the solution invariants: every customer 1..n appears
// exactly once across all paths, every path starts and ends at the depot,
// no non-dronable customer sits in a drone path, and every drone sortie
// satisfies its physical constraints (capacity plus either energy or
// endurance, depending on the active drone variant). The Problem has no
// drone-only flag, so no customer is required to be in a drone path.
func (s *Solution) Feasible() bool {
	seen := make([]int, s.Problem.N+1)

	for _, sorties := range s.DronePaths {
		for _, path := range sorties {
			if !validEndpoints(path) {
				return false
			}
			for _, c := range path[1 : len(path)-1] {
				if !s.Problem.Dronable[c] {
					return false
				}
				seen[c]++
			}
		}
	}

	for _, path := range s.TechPaths {
		if !validEndpoints(path) {
			return false
		}
		for _, c := range path[1 : len(path)-1] {
			seen[c]++
		}
	}

	for c := 1; c <= s.Problem.N; c++ {
		if seen[c] != 1 {
			return false
		}
	}

	for d, sorties := range s.DronePaths {
		for i, path := range sorties {
			ts := s.DroneArrivalTS[d][i]
			if !kernel.Feasible(s.Problem, path, ts, true) {
				return false
			}
		}
	}

	return true
}

func validEndpoints(path []int) bool {
	return len(path) >= 2 && path[0] == 0 && path[len(path)-1] == 0
}
