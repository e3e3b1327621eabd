package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d2dtabu/engine/pkg/kernel"
	"github.com/d2dtabu/engine/pkg/problem"
)

func TestDroneEnergyLinear(t *testing.T) {
	p := newLinearProblem(t)
	path := []int{0, 1, 0}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)

	got := kernel.DroneEnergy(p, path, ts)
	assert.Greater(t, got, 0.0)
	assert.True(t, kernel.CheckEnergy(p, path, ts))
}

func TestDroneEnergyEnduranceIsAlwaysZero(t *testing.T) {
	p := newLinearProblem(t)
	p.DroneCfg = problem.DroneConfig{
		Variant: problem.DroneEndurance,
		Endurance: problem.DroneEnduranceConfig{
			TakeoffSpeed: 5, CruiseSpeed: 10, LandingSpeed: 5, Altitude: 20,
			Capacity: 10, FixedTime: 1000, FixedDistance: 1000,
		},
	}
	path := []int{0, 1, 0}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)

	assert.Equal(t, 0.0, kernel.DroneEnergy(p, path, ts))
	assert.True(t, kernel.CheckEnergy(p, path, ts))
}

func TestCheckEnduranceRejectsOverrange(t *testing.T) {
	p := newLinearProblem(t)
	p.DroneCfg = problem.DroneConfig{
		Variant: problem.DroneEndurance,
		Endurance: problem.DroneEnduranceConfig{
			TakeoffSpeed: 5, CruiseSpeed: 10, LandingSpeed: 5, Altitude: 20,
			Capacity: 10, FixedTime: 1e6, FixedDistance: 1,
		},
	}
	path := []int{0, 1, 0}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)

	assert.False(t, kernel.CheckEndurance(p, path, ts))
	assert.False(t, kernel.Feasible(p, path, ts, true))
}

func TestCheckCapacityRejectsOverweight(t *testing.T) {
	p := newLinearProblem(t)
	p.DroneCfg.Linear.Capacity = 0.5
	path := []int{0, 1, 0}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)

	assert.False(t, kernel.CheckCapacity(p, path, true))
	assert.False(t, kernel.Feasible(p, path, ts, true))
}

func TestTechnicianFeasibilityIgnoresDroneChecks(t *testing.T) {
	p := newLinearProblem(t)
	path := []int{0, 1, 2, 0}
	ts := kernel.TechnicianArrivalTimestamps(p, path, 0)
	assert.True(t, kernel.Feasible(p, path, ts, false))
}

// TestNonlinearEnergyChargesLandingAtItsOwnSpeed pins the per-phase
// vertical model: slowing only the landing speed must change the
// sortie's energy, since the landing sub-phase is charged at its own
// velocity and duration rather than the takeoff's.
func TestNonlinearEnergyChargesLandingAtItsOwnSpeed(t *testing.T) {
	p := newLinearProblem(t)
	cfg := problem.DroneNonlinearConfig{
		TakeoffSpeed: 5, CruiseSpeed: 10, LandingSpeed: 5, Altitude: 20,
		Capacity: 10, Battery: 1e9,
		K1: 0.01, K2: 5, C1: 1, C2: 1, C4: 0.01, C5: 0.01,
	}
	path := []int{0, 1, 0}

	p.DroneCfg = problem.DroneConfig{Variant: problem.DroneNonlinear, Nonlinear: cfg}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)
	symmetric := kernel.DroneEnergy(p, path, ts)

	cfg.LandingSpeed = 2
	p.DroneCfg = problem.DroneConfig{Variant: problem.DroneNonlinear, Nonlinear: cfg}
	ts = kernel.DroneArrivalTimestamps(p, path, 0)
	asymmetric := kernel.DroneEnergy(p, path, ts)

	assert.NotEqual(t, symmetric, asymmetric)
}

func TestNonlinearEnergyPositive(t *testing.T) {
	p := newLinearProblem(t)
	p.DroneCfg = problem.DroneConfig{
		Variant: problem.DroneNonlinear,
		Nonlinear: problem.DroneNonlinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 10, LandingSpeed: 5, Altitude: 20,
			Capacity: 10, Battery: 1e9,
			K1: 0.01, K2: 5, C1: 1, C2: 1, C4: 0.01, C5: 0.01,
		},
	}
	path := []int{0, 1, 0}
	ts := kernel.DroneArrivalTimestamps(p, path, 0)

	got := kernel.DroneEnergy(p, path, ts)
	assert.Greater(t, got, 0.0)
}
