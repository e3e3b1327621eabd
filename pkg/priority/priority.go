// Package priority implements the propagation-priority functions used
// by pkg/driver to order (or select) the next propagation frontier, and
// the running per-dimension extremes the driver maintains to normalize
// them.
package priority

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/d2dtabu/engine/pkg/pareto"
)

// Extremes tracks the running component-wise minima and maxima observed
// across every candidate cost seen so far. Zero-valued Extremes has
// empty Min/Max; Observe must be called before Min/Max are meaningful.
type Extremes struct {
	Min, Max []float64
	seen     bool
}

// Observe folds cost into the running extremes, growing Min/Max lazily
// on the first call so Extremes needs no a-priori dimensionality.
func (e *Extremes) Observe(cost pareto.Cost) {
	if !e.seen {
		e.Min = append([]float64(nil), cost...)
		e.Max = append([]float64(nil), cost...)
		e.seen = true
		return
	}
	for i, v := range cost {
		if v < e.Min[i] {
			e.Min[i] = v
		}
		if v > e.Max[i] {
			e.Max[i] = v
		}
	}
}

// normalize computes value / (maximum - minimum), treating a zero-width
// range as 0 (the value itself must then be ~0 too, since a degenerate
// range implies every observed cost was identical on that axis).
func normalize(value, minimum, maximum float64) float64 {
	width := maximum - minimum
	if width == 0 {
		return 0
	}
	return value / width
}

// Candidate is the minimal shape a priority function needs from a
// propagation candidate: its own cost vector.
type Candidate interface {
	CostVector() pareto.Cost
}

// Func scores a candidate for propagation ordering: candidates are
// sorted ascending by Func value, so the *lowest*-scoring candidates
// propagate first.
type Func func(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64

// normalizeVector divides each component of v by its observed extremes'
// range (normalize), or returns v unchanged when normalized is false.
func normalizeVector(v []float64, extremes Extremes, normalized bool) []float64 {
	if !normalized {
		return v
	}
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = normalize(math.Abs(c), extremes.Min[i], extremes.Max[i])
	}
	return out
}

// componentDistanceSum sums, over every retained Pareto cost weighted by
// its bucket size, the (optionally normalized) L1 distance from that
// cost to candidate's cost. floats.Norm(_, 1) computes that L1 norm once
// both vectors are already expressed as signed differences.
func componentDistanceSum(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate, normalized bool) float64 {
	cost := candidate.CostVector()
	var result float64
	for _, k := range keys {
		n := counter[k.Key()]
		diff := make([]float64, len(k))
		for i, v := range k {
			diff[i] = v - cost[i]
		}
		d := floats.Norm(normalizeVector(diff, extremes, normalized), 1)
		result += float64(n) * d
	}
	return result
}

// MinDistance prefers candidates whose (counter-weighted, normalized)
// summed distance to the current Pareto front is smallest.
func MinDistance(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return componentDistanceSum(counter, keys, extremes, candidate, true)
}

// MaxDistance prefers candidates whose summed distance is largest; it
// negates the min-distance score so ascending sort still puts the
// preferred candidates first.
func MaxDistance(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return -componentDistanceSum(counter, keys, extremes, candidate, true)
}

// MinDistanceNoNormalize is MinDistance without range normalization.
func MinDistanceNoNormalize(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return componentDistanceSum(counter, keys, extremes, candidate, false)
}

// MaxDistanceNoNormalize is MaxDistance without range normalization.
func MaxDistanceNoNormalize(counter map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return -componentDistanceSum(counter, keys, extremes, candidate, false)
}

// idealPoint returns the per-dimension minimum across every retained
// Pareto cost (not the running Extremes, which span every candidate ever
// observed, not just the current front).
func idealPoint(keys []pareto.Cost) []float64 {
	ideal := append([]float64(nil), keys[0]...)
	for _, k := range keys[1:] {
		for i, v := range k {
			if v < ideal[i] {
				ideal[i] = v
			}
		}
	}
	return ideal
}

func idealDistance(extremes Extremes, keys []pareto.Cost, candidate Candidate, normalized bool) float64 {
	ideal := idealPoint(keys)
	cost := candidate.CostVector()
	diff := make([]float64, len(ideal))
	for i, v := range ideal {
		diff[i] = v - cost[i]
	}
	return floats.Norm(normalizeVector(diff, extremes, normalized), 1)
}

// IdealDistance prefers candidates closest to the ideal point (the
// per-dimension minima of the current Pareto front), distance
// normalized by the running extremes.
func IdealDistance(_ map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return idealDistance(extremes, keys, candidate, true)
}

// IdealDistanceNoNormalize is IdealDistance without range normalization.
func IdealDistanceNoNormalize(_ map[string]int, keys []pareto.Cost, extremes Extremes, candidate Candidate) float64 {
	return idealDistance(extremes, keys, candidate, false)
}

// ByName resolves a propagation-priority option string to its Func, or
// (nil, false) for "none" or an unrecognized name.
func ByName(name string) (Func, bool) {
	switch name {
	case "min-distance":
		return MinDistance, true
	case "max-distance":
		return MaxDistance, true
	case "ideal-distance":
		return IdealDistance, true
	case "min-distance-no-normalize":
		return MinDistanceNoNormalize, true
	case "max-distance-no-normalize":
		return MaxDistanceNoNormalize, true
	case "ideal-distance-no-normalize":
		return IdealDistanceNoNormalize, true
	case "none", "":
		return nil, false
	default:
		return nil, false
	}
}

// Sort orders candidates ascending by fn's score, stably so ties keep
// their pre-sort relative order. counter and keys come from the
// driver's pareto.Set (Counter and Keys), which already hold decoded
// cost vectors keyed the same way.
func Sort[C Candidate](candidates []C, counter map[string]int, keys []pareto.Cost, extremes Extremes, fn Func) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return fn(counter, keys, extremes, candidates[i]) < fn(counter, keys, extremes, candidates[j])
	})
}
