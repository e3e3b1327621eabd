package solution

import (
	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/kernel"
	"github.com/d2dtabu/engine/pkg/problem"
)

// Initial constructs the deterministic starting Solution:
// non-dronable customers are assigned round-robin to technicians via
// nearest-neighbor greedy from the depot; remaining dronable customers
// are assigned round-robin to drones via nearest neighbor, closing a
// sortie and opening a new one whenever a customer would violate
// capacity/energy/endurance, and falling back to the nearest technician
// (by penultimate stop) when even a fresh single-customer sortie cannot
// admit the node.
func Initial(p *problem.Problem) (*Solution, error) {
	var nonDronable, dronable []int
	for c := 1; c <= p.N; c++ {
		if p.Dronable[c] {
			dronable = append(dronable, c)
		} else {
			nonDronable = append(nonDronable, c)
		}
	}

	techPaths := make([][]int, p.Technicians)
	for t := range techPaths {
		techPaths[t] = []int{0}
	}
	if len(nonDronable) > 0 && p.Technicians == 0 {
		return nil, ierrors.New(ierrors.KindProblemImport, "non-dronable customers exist but there are no technicians", nil)
	}

	t := 0
	for len(nonDronable) > 0 {
		idx := t % p.Technicians
		last := techPaths[idx][len(techPaths[idx])-1]
		best := nearest(p, last, nonDronable)
		techPaths[idx] = append(techPaths[idx], nonDronable[best])
		nonDronable = removeAt(nonDronable, best)
		t++
	}
	for i := range techPaths {
		techPaths[i] = append(techPaths[i], 0)
	}

	dronePaths := make([][][]int, p.Drones)
	openSortie := make([][]int, p.Drones)
	offset := make([]float64, p.Drones)
	if len(dronable) > 0 && p.Drones == 0 {
		return nil, ierrors.New(ierrors.KindProblemImport, "dronable customers exist but there are no drones", nil)
	}

	d := 0
	for len(dronable) > 0 {
		idx := d % p.Drones
		d++
		if openSortie[idx] == nil {
			openSortie[idx] = []int{0}
		}
		last := openSortie[idx][len(openSortie[idx])-1]
		best := nearest(p, last, dronable)
		candidate := dronable[best]

		tentative := append(append([]int{}, openSortie[idx]...), candidate, 0)
		ts := kernel.DroneArrivalTimestamps(p, tentative, offset[idx])
		if kernel.Feasible(p, tentative, ts, true) {
			openSortie[idx] = append(openSortie[idx], candidate)
			dronable = removeAt(dronable, best)
			continue
		}

		if len(openSortie[idx]) > 1 {
			closed := append(openSortie[idx], 0)
			closedTS := kernel.DroneArrivalTimestamps(p, closed, offset[idx])
			dronePaths[idx] = append(dronePaths[idx], closed)
			offset[idx] = closedTS[len(closedTS)-1]
			openSortie[idx] = nil
			continue
		}

		// Even a fresh single-customer sortie cannot admit this node:
		// reassign it to the technician whose penultimate stop is nearest.
		techIdx := nearestTechnicianPenultimate(p, techPaths, candidate)
		path := techPaths[techIdx]
		techPaths[techIdx] = append(path[:len(path)-1], candidate, 0)
		dronable = removeAt(dronable, best)
		openSortie[idx] = nil
	}

	for drone, sortie := range openSortie {
		if len(sortie) > 1 {
			dronePaths[drone] = append(dronePaths[drone], append(sortie, 0))
		}
	}

	return New(p, dronePaths, techPaths)
}

func nearest(p *problem.Problem, from int, candidates []int) int {
	best := 0
	bestDist := p.Distance[from][candidates[0]]
	for i, c := range candidates[1:] {
		if d := p.Distance[from][c]; d < bestDist {
			bestDist = d
			best = i + 1
		}
	}
	return best
}

func nearestTechnicianPenultimate(p *problem.Problem, techPaths [][]int, customer int) int {
	best := 0
	bestDist := -1.0
	for t, path := range techPaths {
		penultimate := 0
		if len(path) >= 2 {
			penultimate = path[len(path)-2]
		}
		d := p.Distance[penultimate][customer]
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = t
		}
	}
	return best
}

func removeAt(s []int, i int) []int {
	out := make([]int, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}
