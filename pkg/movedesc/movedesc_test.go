package movedesc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d2dtabu/engine/pkg/movedesc"
	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
)

func newTestProblem(t *testing.T) *problem.Problem {
	t.Helper()
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	demand := []float64{0, 1, 1, 1}
	service := []float64{0, 0, 0, 0}
	dronable := []bool{false, true, true, true}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 10, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(3, 2, 0, coords, demand, service, service, dronable, truck, cfg)
	assert.NoError(t, err)
	return p
}

func TestApplyUpdateDrone(t *testing.T) {
	p := newTestProblem(t)
	parent, err := solution.New(p, [][][]int{{{0, 1, 0}}, {{0, 2, 0}}}, [][]int{})
	assert.NoError(t, err)

	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{{Drone: 0, PathIndex: 0, NewPath: []int{0, 3, 1, 0}}},
	}
	child, err := d.Apply(parent)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 3, 1, 0}, child.DronePaths[0][0])
	assert.Equal(t, []int{0, 2, 0}, child.DronePaths[1][0]) // untouched drone unchanged
}

func TestApplyAppendDrone(t *testing.T) {
	p := newTestProblem(t)
	parent, err := solution.New(p, [][][]int{{}, {{0, 2, 0}}}, [][]int{})
	assert.NoError(t, err)

	d := &movedesc.Descriptor{
		AppendDrone: []movedesc.DroneAppend{{Drone: 0, NewPath: []int{0, 1, 0}}},
	}
	child, err := d.Apply(parent)
	assert.NoError(t, err)
	assert.Len(t, child.DronePaths[0], 1)
	assert.Equal(t, []int{0, 1, 0}, child.DronePaths[0][0])
}

func TestApplyRemoveDroneSortie(t *testing.T) {
	p := newTestProblem(t)
	parent, err := solution.New(p, [][][]int{{{0, 1, 0}, {0, 3, 0}}, {{0, 2, 0}}}, [][]int{})
	assert.NoError(t, err)

	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{{Drone: 0, PathIndex: 0, Remove: true}},
	}
	child, err := d.Apply(parent)
	assert.NoError(t, err)
	assert.Len(t, child.DronePaths[0], 1)
	assert.Equal(t, []int{0, 3, 0}, child.DronePaths[0][0])
}

func TestApplyDoesNotMutateParent(t *testing.T) {
	p := newTestProblem(t)
	parent, err := solution.New(p, [][][]int{{{0, 1, 0}}, {{0, 2, 0}}}, [][]int{})
	assert.NoError(t, err)
	originalPath := append([]int(nil), parent.DronePaths[0][0]...)

	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{{Drone: 0, PathIndex: 0, NewPath: []int{0, 3, 1, 0}}},
	}
	_, err = d.Apply(parent)
	assert.NoError(t, err)
	assert.Equal(t, originalPath, parent.DronePaths[0][0])
}

// TestApplyRemoveThenUpdateSameDroneDifferentSorties reproduces an
// Insert(1) move between two different sorties of the same drone: the
// source sortie collapses to empty and is removed while a later sortie
// on the same drone is independently updated. PathIndex on every
// UpdateDrone entry refers to the sortie's position in the parent
// (pre-removal), so removing sortie 0 must not shift the index that
// locates sortie 2's update.
func TestApplyRemoveThenUpdateSameDroneDifferentSorties(t *testing.T) {
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}
	demand := []float64{0, 1, 1, 1, 1}
	service := []float64{0, 0, 0, 0, 0}
	dronable := []bool{false, true, true, true, true}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 10, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(4, 1, 0, coords, demand, service, service, dronable, truck, cfg)
	require.NoError(t, err)

	s0 := []int{0, 1, 0}
	s1 := []int{0, 2, 0}
	s2 := []int{0, 3, 0}
	s3 := []int{0, 4, 0}
	parent, err := solution.New(p, [][][]int{{s0, s1, s2, s3}}, [][]int{})
	require.NoError(t, err)

	// Move customer 1 out of sortie 0 (which then collapses to empty and
	// is removed) into sortie 2, alongside its existing customer 3.
	newS2 := []int{0, 3, 1, 0}

	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{
			{Drone: 0, PathIndex: 0, Remove: true},
			{Drone: 0, PathIndex: 2, NewPath: newS2},
		},
	}
	child, err := d.Apply(parent)
	require.NoError(t, err)

	require.Len(t, child.DronePaths[0], 3)
	assert.Equal(t, []int{0, 2, 0}, child.DronePaths[0][0])
	assert.Equal(t, newS2, child.DronePaths[0][1])
	assert.Equal(t, []int{0, 4, 0}, child.DronePaths[0][2])
	assert.True(t, child.Feasible())
}

// TestApplyRemoveThenUpdateSameDroneIndexOrderIndependent checks the
// same scenario with the descriptor's UpdateDrone entries listed in the
// opposite order, since a correct Apply must not depend on removals
// being listed before or after the updates they would otherwise
// invalidate.
func TestApplyRemoveThenUpdateSameDroneIndexOrderIndependent(t *testing.T) {
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}}
	demand := []float64{0, 1, 1, 1, 1}
	service := []float64{0, 0, 0, 0, 0}
	dronable := []bool{false, true, true, true, true}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 10, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(4, 1, 0, coords, demand, service, service, dronable, truck, cfg)
	require.NoError(t, err)

	s0 := []int{0, 1, 0}
	s1 := []int{0, 2, 0}
	s2 := []int{0, 3, 0}
	s3 := []int{0, 4, 0}
	parent, err := solution.New(p, [][][]int{{s0, s1, s2, s3}}, [][]int{})
	require.NoError(t, err)

	newS2 := []int{0, 3, 1, 0}

	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{
			{Drone: 0, PathIndex: 2, NewPath: newS2},
			{Drone: 0, PathIndex: 0, Remove: true},
		},
	}
	child, err := d.Apply(parent)
	require.NoError(t, err)

	require.Len(t, child.DronePaths[0], 3)
	assert.Equal(t, []int{0, 2, 0}, child.DronePaths[0][0])
	assert.Equal(t, newS2, child.DronePaths[0][1])
	assert.Equal(t, []int{0, 4, 0}, child.DronePaths[0][2])
}

// TestApplyMatchesDirectConstruction deep-compares the Solution produced
// by Apply against one built directly via solution.New from the same
// final paths, catching any divergence in derived fields (arrival
// timestamps, waiting, timespans, cost) that per-field assert.Equal
// checks elsewhere in this file could miss one at a time.
func TestApplyMatchesDirectConstruction(t *testing.T) {
	p := newTestProblem(t)
	parent, err := solution.New(p, [][][]int{{{0, 1, 0}}, {{0, 2, 0}}}, [][]int{})
	require.NoError(t, err)

	newPath := []int{0, 3, 1, 0}
	d := &movedesc.Descriptor{
		UpdateDrone: []movedesc.DroneUpdate{{Drone: 0, PathIndex: 0, NewPath: newPath}},
	}
	child, err := d.Apply(parent)
	require.NoError(t, err)

	want, err := solution.New(p, [][][]int{{newPath}, {{0, 2, 0}}}, [][]int{})
	require.NoError(t, err)

	if diff := cmp.Diff(want, child); diff != "" {
		t.Errorf("Apply result diverged from direct construction (-want +got):\n%s", diff)
	}
}

func TestAddViolationIgnoresNonPositive(t *testing.T) {
	d := &movedesc.Descriptor{}
	d.AddViolation(-1)
	d.AddViolation(0)
	assert.Equal(t, 0.0, d.Violation)
	d.AddViolation(0.5)
	assert.Equal(t, 0.5, d.Violation)
}
