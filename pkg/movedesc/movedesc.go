// Package movedesc implements the lightweight move descriptor: a
// compact description of how to transform a parent Solution. Each
// neighborhood worker builds a Descriptor per move and materializes it
// with Apply in the same goroutine; the worker hands back the resulting
// child Solution, not the Descriptor.
package movedesc

import (
	"sort"

	"github.com/d2dtabu/engine/pkg/solution"
)

// DroneUpdate replaces drone d's sortie at PathIndex with NewPath, or
// removes that sortie entirely when Remove is true.
type DroneUpdate struct {
	Drone     int
	PathIndex int
	NewPath   []int
	Remove    bool
}

// DroneAppend adds a brand-new trailing sortie to drone d.
type DroneAppend struct {
	Drone   int
	NewPath []int
}

// TechUpdate replaces technician t's single path with NewPath.
type TechUpdate struct {
	Technician int
	NewPath    []int
}

// Descriptor describes how to transform a parent Solution into a child:
// which drone sorties are appended or updated/removed, which technician
// paths are replaced, and the nonnegative soft-feasibility penalty
// accumulated while constructing the candidate. Penalties accumulate
// uniformly; constructing a candidate never short-circuits on
// infeasibility.
type Descriptor struct {
	AppendDrone []DroneAppend
	UpdateDrone []DroneUpdate
	UpdateTech  []TechUpdate
	Violation   float64
}

// AddViolation accumulates a nonnegative relative-overshoot penalty.
func (d *Descriptor) AddViolation(v float64) {
	if v > 0 {
		d.Violation += v
	}
}

// Apply materializes d against parent, producing the child Solution.
// Every touched path is copied rather than mutated in place; untouched
// paths are shared by reference with the parent, which stays immutable.
// The child's derived quantities (arrival timestamps, waiting, cost)
// are recomputed from the resulting paths via solution.New rather than
// spliced in from precomputed per-path deltas.
func (d *Descriptor) Apply(parent *solution.Solution) (*solution.Solution, error) {
	dronePaths := make([][][]int, len(parent.DronePaths))
	for i, sorties := range parent.DronePaths {
		dronePaths[i] = append([][]int(nil), sorties...)
	}
	techPaths := make([][]int, len(parent.TechPaths))
	copy(techPaths, parent.TechPaths)

	// PathIndex in every UpdateDrone entry refers to the sortie's position
	// in parent.DronePaths[drone], before any of this descriptor's own
	// removals are applied. Non-remove updates are therefore applied
	// first, indexing unchanged per-drone slices; removals are collected
	// and applied afterwards, per drone, in descending PathIndex order,
	// so removing one sortie never shifts the index of another
	// not-yet-applied removal or update out from under it. Two sorties of
	// the same drone can appear in one descriptor (e.g. an Insert move
	// removing the source sortie while updating a different sortie on
	// the same drone), so applying removals eagerly and in ascending
	// order would silently overwrite or drop the wrong sortie.
	removalsByDrone := make(map[int][]int)
	for _, u := range d.UpdateDrone {
		if u.Remove {
			removalsByDrone[u.Drone] = append(removalsByDrone[u.Drone], u.PathIndex)
			continue
		}
		updated := append([][]int(nil), dronePaths[u.Drone]...)
		updated[u.PathIndex] = u.NewPath
		dronePaths[u.Drone] = updated
	}
	for drone, indices := range removalsByDrone {
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		sorties := dronePaths[drone]
		for _, idx := range indices {
			sorties = append(sorties[:idx:idx], sorties[idx+1:]...)
		}
		dronePaths[drone] = sorties
	}
	for _, a := range d.AppendDrone {
		dronePaths[a.Drone] = append(dronePaths[a.Drone], a.NewPath)
	}
	for _, u := range d.UpdateTech {
		techPaths[u.Technician] = u.NewPath
	}

	// ToPropagate defaults to true (set by solution.New); the owning
	// neighborhood flips it to false after checking the move's tabu key.
	return solution.New(parent.Problem, dronePaths, techPaths)
}
