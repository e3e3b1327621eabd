package solution

import "golang.org/x/exp/rand"

// Shuffle produces a perturbed Solution: independently for each drone
// sortie and each technician path, with probability 1/2 the path is
// reversed (the depot endpoints stay fixed, so only the internal
// customers swap order).
func (s *Solution) Shuffle() (*Solution, error) {
	dronePaths := make([][][]int, len(s.DronePaths))
	for d, sorties := range s.DronePaths {
		dronePaths[d] = make([][]int, len(sorties))
		for i, path := range sorties {
			dronePaths[d][i] = maybeReverse(path)
		}
	}

	techPaths := make([][]int, len(s.TechPaths))
	for t, path := range s.TechPaths {
		techPaths[t] = maybeReverse(path)
	}

	return New(s.Problem, dronePaths, techPaths)
}

func maybeReverse(path []int) []int {
	out := make([]int, len(path))
	copy(out, path)
	if len(path) <= 3 || rand.Float64() >= 0.5 {
		return out
	}
	internal := out[1 : len(out)-1]
	for i, j := 0, len(internal)-1; i < j; i, j = i+1, j-1 {
		internal[i], internal[j] = internal[j], internal[i]
	}
	return out
}
