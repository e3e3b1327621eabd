package neighborhood

import (
	"fmt"

	"github.com/d2dtabu/engine/pkg/ierrors"
	"github.com/d2dtabu/engine/pkg/metrics"
	"github.com/d2dtabu/engine/pkg/movedesc"
	"github.com/d2dtabu/engine/pkg/solution"
	"github.com/d2dtabu/engine/pkg/tabu"
)

// slot addresses one path within a Solution: a technician's single path,
// or one sortie of one drone.
type slot struct {
	drone bool
	vi    int // drone or technician index
	si    int // sortie index; unused (0) for a technician slot
}

func (s slot) get(parent *solution.Solution) []int {
	if s.drone {
		return parent.DronePaths[s.vi][s.si]
	}
	return parent.TechPaths[s.vi]
}

func droneSlots(parent *solution.Solution) []slot {
	var out []slot
	for d, sorties := range parent.DronePaths {
		for i := range sorties {
			out = append(out, slot{drone: true, vi: d, si: i})
		}
	}
	return out
}

func techSlots(parent *solution.Solution) []slot {
	out := make([]slot, len(parent.TechPaths))
	for t := range parent.TechPaths {
		out[t] = slot{drone: false, vi: t}
	}
	return out
}

func applyUpdate(desc *movedesc.Descriptor, s slot, newPath []int) {
	if s.drone {
		desc.UpdateDrone = append(desc.UpdateDrone, movedesc.DroneUpdate{Drone: s.vi, PathIndex: s.si, NewPath: newPath})
		return
	}
	desc.UpdateTech = append(desc.UpdateTech, movedesc.TechUpdate{Technician: s.vi, NewPath: newPath})
}

// touchedViolation sums droneViolation over every drone sortie touched by
// a move, reading the already-recomputed arrival timestamps off child.
func touchedViolation(child *solution.Solution, slots ...slot) float64 {
	var v float64
	for _, s := range slots {
		if !s.drone {
			continue
		}
		path := child.DronePaths[s.vi][s.si]
		ts := child.DroneArrivalTS[s.vi][s.si]
		v += droneViolation(child.Problem, path, ts)
	}
	return v
}

func spliceReplace(path []int, start, l int, seg []int) []int {
	out := make([]int, 0, len(path)-l+len(seg))
	out = append(out, path[:start]...)
	out = append(out, seg...)
	out = append(out, path[start+l:]...)
	return out
}

func spliceSwapSelf(path []int, start1, l1, start2, l2 int) []int {
	seg1 := append([]int(nil), path[start1:start1+l1]...)
	seg2 := append([]int(nil), path[start2:start2+l2]...)
	out := make([]int, 0, len(path))
	out = append(out, path[:start1]...)
	out = append(out, seg2...)
	out = append(out, path[start1+l1:start2]...)
	out = append(out, seg1...)
	out = append(out, path[start2+l2:]...)
	return out
}

// Swap is the Swap(L1,L2) neighborhood: exchanging two non-overlapping
// internal segments of length L1 and L2 between (or within) drone
// sorties and technician paths, preserving both orientations.
type Swap struct {
	L1, L2 int
	Tabu   *tabu.Registry[SwapKey]
}

// NewSwap constructs a Swap(L1,L2) neighborhood backed by reg, swapping
// the arguments if needed so L1 >= L2 >= 1. Segment lengths below 1 are
// a configuration error, rejected at construction.
func NewSwap(l1, l2 int, reg *tabu.Registry[SwapKey]) (*Swap, error) {
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	if l2 < 1 {
		return nil, ierrors.Newf(ierrors.KindNeighborhoodConfiguration, nil,
			"swap segment lengths must be at least 1, got (%d, %d)", l1, l2)
	}
	return &Swap{L1: l1, L2: l2, Tabu: reg}, nil
}

// Name identifies this neighborhood instance for metrics labels.
func (n *Swap) Name() string { return fmt.Sprintf("swap-%d-%d", n.L1, n.L2) }

// FindBestCandidates enumerates every Swap(L1,L2) variant against parent
// and returns the dominance-pruned merge of every worker's findings.
func (n *Swap) FindBestCandidates(parent *solution.Solution, workers int) []Candidate {
	defer metrics.Measure(n.Name())()
	return runBatches(n.enumerate(parent), workers)
}

func (n *Swap) enumerate(parent *solution.Solution) []moveFunc {
	var moves []moveFunc
	moves = append(moves, n.droneDroneMoves(parent)...)
	moves = append(moves, n.techTechMoves(parent)...)
	moves = append(moves, n.techDroneMoves(parent)...)
	for _, s := range droneSlots(parent) {
		moves = append(moves, n.selfMoves(parent, s)...)
	}
	for _, s := range techSlots(parent) {
		moves = append(moves, n.selfMoves(parent, s)...)
	}
	return moves
}

func (n *Swap) droneDroneMoves(parent *solution.Solution) []moveFunc {
	slots := droneSlots(parent)
	var moves []moveFunc
	for i, a := range slots {
		for j, b := range slots {
			if i == j || a.vi == b.vi {
				continue
			}
			if n.L1 == n.L2 && j < i {
				continue
			}
			moves = append(moves, n.crossMovesOriented(parent, a, n.L1, b, n.L2, 0)...)
		}
	}
	return moves
}

func (n *Swap) techTechMoves(parent *solution.Solution) []moveFunc {
	slots := techSlots(parent)
	var moves []moveFunc
	for i, a := range slots {
		for j, b := range slots {
			if i == j {
				continue
			}
			if n.L1 == n.L2 && j < i {
				continue
			}
			moves = append(moves, n.crossMovesOriented(parent, a, n.L1, b, n.L2, 0)...)
		}
	}
	return moves
}

// techDroneMoves enumerates the technician-segment-to-drone exchange in
// both length assignments (since there is no ordered-pair symmetry to
// rely on across two distinct slot lists); requireDronable=1 enforces
// that the segment leaving the technician path is entirely dronable.
func (n *Swap) techDroneMoves(parent *solution.Solution) []moveFunc {
	var moves []moveFunc
	for _, t := range techSlots(parent) {
		for _, d := range droneSlots(parent) {
			moves = append(moves, n.crossMovesOriented(parent, t, n.L1, d, n.L2, 1)...)
			if n.L1 != n.L2 {
				moves = append(moves, n.crossMovesOriented(parent, t, n.L2, d, n.L1, 1)...)
			}
		}
	}
	return moves
}

// crossMovesOriented enumerates every (startA, startB) pair exchanging a
// length-lA segment of a's path with a length-lB segment of b's path.
// requireDronable gates a segment's customers through segmentDronable: 1
// for a's segment, 2 for b's, 0 for no gate.
func (n *Swap) crossMovesOriented(parent *solution.Solution, a slot, lA int, b slot, lB int, requireDronable int) []moveFunc {
	pathA, pathB := a.get(parent), b.get(parent)
	var moves []moveFunc
	for _, sa := range segmentStarts(pathA, lA) {
		if requireDronable == 1 && !segmentDronable(parent.Problem.Dronable, pathA, sa, lA) {
			continue
		}
		for _, sb := range segmentStarts(pathB, lB) {
			if requireDronable == 2 && !segmentDronable(parent.Problem.Dronable, pathB, sb, lB) {
				continue
			}
			sa, sb := sa, sb
			moves = append(moves, func() (Candidate, bool) {
				return n.evaluateCross(parent, a, sa, lA, b, sb, lB)
			})
		}
	}
	return moves
}

// selfMoves enumerates every non-overlapping segment-pair exchange within
// a single path, trying both length assignments when L1 != L2 (position
// order start1 < start2 already rules out the symmetric duplicate).
func (n *Swap) selfMoves(parent *solution.Solution, s slot) []moveFunc {
	path := s.get(parent)
	lengthPairs := [][2]int{{n.L1, n.L2}}
	if n.L1 != n.L2 {
		lengthPairs = append(lengthPairs, [2]int{n.L2, n.L1})
	}

	var moves []moveFunc
	for _, lp := range lengthPairs {
		l1, l2 := lp[0], lp[1]
		for _, start1 := range segmentStarts(path, l1) {
			for _, start2 := range segmentStarts(path, l2) {
				if start1+l1 > start2 {
					continue
				}
				start1, start2, l1, l2 := start1, start2, l1, l2
				moves = append(moves, func() (Candidate, bool) {
					return n.evaluateSelf(parent, s, start1, l1, start2, l2)
				})
			}
		}
	}
	return moves
}

func (n *Swap) applyTabu(key SwapKey, child *solution.Solution) {
	if n.Tabu.Contains(key) {
		child.ToPropagate = false
		metrics.TabuHitsTotal.WithLabelValues(n.Name()).Inc()
	}
	n.Tabu.Add(key)
}

func (n *Swap) evaluateCross(parent *solution.Solution, a slot, startA, lA int, b slot, startB, lB int) (Candidate, bool) {
	pathA, pathB := a.get(parent), b.get(parent)
	segA := append([]int(nil), pathA[startA:startA+lA]...)
	segB := append([]int(nil), pathB[startB:startB+lB]...)

	desc := &movedesc.Descriptor{}
	applyUpdate(desc, a, spliceReplace(pathA, startA, lA, segB))
	applyUpdate(desc, b, spliceReplace(pathB, startB, lB, segA))

	child, err := desc.Apply(parent)
	if err != nil {
		return Candidate{}, false
	}

	key := canonicalSwapKey(boundaryPair(pathA, startA, lA), boundaryPair(pathB, startB, lB))
	n.applyTabu(key, child)

	return Candidate{Solution: child, Violation: touchedViolation(child, a, b)}, true
}

func (n *Swap) evaluateSelf(parent *solution.Solution, s slot, start1, l1, start2, l2 int) (Candidate, bool) {
	path := s.get(parent)

	desc := &movedesc.Descriptor{}
	applyUpdate(desc, s, spliceSwapSelf(path, start1, l1, start2, l2))

	child, err := desc.Apply(parent)
	if err != nil {
		return Candidate{}, false
	}

	key := canonicalSwapKey(boundaryPair(path, start1, l1), boundaryPair(path, start2, l2))
	n.applyTabu(key, child)

	return Candidate{Solution: child, Violation: touchedViolation(child, s)}, true
}
