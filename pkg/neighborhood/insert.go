package neighborhood

import (
	"fmt"

	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/metrics"
	"github.com/d2dtabu/engine/pkg/movedesc"
	"github.com/d2dtabu/engine/pkg/solution"
	"github.com/d2dtabu/engine/pkg/tabu"
)

func sameSlot(a, b slot) bool {
	return a.drone == b.drone && a.vi == b.vi && a.si == b.si
}

// applySourceUpdate replaces a source path after its segment is removed,
// collapsing a now-empty drone sortie (just [0,0]) to a removal instead
// of leaving a degenerate zero-customer sortie on the drone.
func applySourceUpdate(desc *movedesc.Descriptor, s slot, newPath []int) {
	if s.drone && len(newPath) == 2 {
		desc.UpdateDrone = append(desc.UpdateDrone, movedesc.DroneUpdate{Drone: s.vi, PathIndex: s.si, Remove: true})
		return
	}
	applyUpdate(desc, s, newPath)
}

// Insert is the Insert(L) neighborhood: removing a contiguous internal
// segment of length L from a source path and inserting it into a target
// path, or (drone destinations only) into a brand-new sortie.
type Insert struct {
	L    int
	Tabu *tabu.Registry[InsertKey]
}

// NewInsert constructs an Insert(L) neighborhood backed by reg. Segment
// lengths below 1 are a configuration error, rejected at construction.
func NewInsert(l int, reg *tabu.Registry[InsertKey]) (*Insert, error) {
	if l < 1 {
		return nil, ierrors.Newf(ierrors.KindNeighborhoodConfiguration, nil,
			"insert segment length must be at least 1, got %d", l)
	}
	return &Insert{L: l, Tabu: reg}, nil
}

// Name identifies this neighborhood instance for metrics labels.
func (n *Insert) Name() string { return fmt.Sprintf("insert-%d", n.L) }

// FindBestCandidates enumerates every Insert(L) variant against parent
// and returns the dominance-pruned merge of every worker's findings.
func (n *Insert) FindBestCandidates(parent *solution.Solution, workers int) []Candidate {
	defer metrics.Measure(n.Name())()
	return runBatches(n.enumerate(parent), workers)
}

func (n *Insert) enumerate(parent *solution.Solution) []moveFunc {
	drones := droneSlots(parent)
	techs := techSlots(parent)

	var moves []moveFunc
	moves = append(moves, n.crossInserts(parent, techs, techs, true, 0)...)   // tech -> tech
	moves = append(moves, n.crossInserts(parent, drones, techs, false, 0)...) // drone -> tech
	moves = append(moves, n.crossInserts(parent, techs, drones, false, 1)...) // tech -> drone, must be dronable
	moves = append(moves, n.crossInserts(parent, drones, drones, true, 0)...) // drone -> drone, existing sortie
	moves = append(moves, n.newSortieInserts(parent, drones)...)             // drone -> drone, new sortie
	return moves
}

// crossInserts enumerates every (source, target) slot pair drawn from
// sources x targets, excluding a slot paired with itself; sameList
// additionally excludes the positional identity pair (i==j) when sources
// and targets are the same slice, to avoid a degenerate self-insert.
func (n *Insert) crossInserts(parent *solution.Solution, sources, targets []slot, sameList bool, requireDronable int) []moveFunc {
	var moves []moveFunc
	for i, src := range sources {
		for j, tgt := range targets {
			if sameList && i == j {
				continue
			}
			if sameSlot(src, tgt) {
				continue
			}
			moves = append(moves, n.insertMoves(parent, src, tgt, requireDronable)...)
		}
	}
	return moves
}

func (n *Insert) insertMoves(parent *solution.Solution, src, tgt slot, requireDronable int) []moveFunc {
	srcPath := src.get(parent)
	tgtPath := tgt.get(parent)

	var moves []moveFunc
	for _, start := range segmentStarts(srcPath, n.L) {
		if requireDronable == 1 && !segmentDronable(parent.Problem.Dronable, srcPath, start, n.L) {
			continue
		}
		for at := 1; at <= len(tgtPath)-1; at++ {
			start, at := start, at
			moves = append(moves, func() (Candidate, bool) {
				return n.evaluate(parent, src, start, tgt, at)
			})
		}
	}
	return moves
}

func (n *Insert) newSortieInserts(parent *solution.Solution, drones []slot) []moveFunc {
	var moves []moveFunc
	for _, src := range drones {
		srcPath := src.get(parent)
		for _, start := range segmentStarts(srcPath, n.L) {
			for d := 0; d < len(parent.DronePaths); d++ {
				start, d := start, d
				moves = append(moves, func() (Candidate, bool) {
					return n.evaluateNewSortie(parent, src, start, d)
				})
			}
		}
	}
	return moves
}

func (n *Insert) applyTabu(key InsertKey, child *solution.Solution) {
	if n.Tabu.Contains(key) {
		child.ToPropagate = false
		metrics.TabuHitsTotal.WithLabelValues(n.Name()).Inc()
	}
	n.Tabu.Add(key)
}

func (n *Insert) evaluate(parent *solution.Solution, src slot, start int, tgt slot, at int) (Candidate, bool) {
	srcPath := src.get(parent)
	tgtPath := tgt.get(parent)

	seg := append([]int(nil), srcPath[start:start+n.L]...)
	newSrc := append(srcPath[:start:start], srcPath[start+n.L:]...)

	newTgt := make([]int, 0, len(tgtPath)+n.L)
	newTgt = append(newTgt, tgtPath[:at]...)
	newTgt = append(newTgt, seg...)
	newTgt = append(newTgt, tgtPath[at:]...)

	desc := &movedesc.Descriptor{}
	applySourceUpdate(desc, src, newSrc)
	applyUpdate(desc, tgt, newTgt)

	child, err := desc.Apply(parent)
	if err != nil {
		return Candidate{}, false
	}

	key := InsertKey{Seg: boundaryPair(srcPath, start, n.L), Target: tgtPath[at-1]}
	n.applyTabu(key, child)

	// An emptied source sortie is gone from child, and any later sortie of
	// the same drone has shifted down by one.
	touched := []slot{tgt}
	if src.drone && len(newSrc) == 2 {
		if tgt.drone && tgt.vi == src.vi && tgt.si > src.si {
			touched[0].si--
		}
	} else {
		touched = append(touched, src)
	}

	return Candidate{Solution: child, Violation: touchedViolation(child, touched...)}, true
}

func (n *Insert) evaluateNewSortie(parent *solution.Solution, src slot, start int, destDrone int) (Candidate, bool) {
	srcPath := src.get(parent)
	seg := append([]int(nil), srcPath[start:start+n.L]...)
	newSrc := append(srcPath[:start:start], srcPath[start+n.L:]...)

	newSortie := make([]int, 0, n.L+2)
	newSortie = append(newSortie, 0)
	newSortie = append(newSortie, seg...)
	newSortie = append(newSortie, 0)

	desc := &movedesc.Descriptor{}
	applySourceUpdate(desc, src, newSrc)
	desc.AppendDrone = append(desc.AppendDrone, movedesc.DroneAppend{Drone: destDrone, NewPath: newSortie})

	child, err := desc.Apply(parent)
	if err != nil {
		return Candidate{}, false
	}

	key := InsertKey{Seg: boundaryPair(srcPath, start, n.L), Target: 0}
	n.applyTabu(key, child)

	newSortieIdx := len(child.DronePaths[destDrone]) - 1
	touched := []slot{{drone: true, vi: destDrone, si: newSortieIdx}}
	if len(newSrc) != 2 {
		touched = append(touched, src)
	}
	violation := touchedViolation(child, touched...)

	return Candidate{Solution: child, Violation: violation}, true
}
