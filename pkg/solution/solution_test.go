package solution_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
)

// Single dronable customer at (10,0), zero altitude, cruise speed 5.
func newSingleCustomerProblem(t *testing.T, serviceDrone1 float64) *problem.Problem {
	t.Helper()
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}}
	demand := []float64{0, 1}
	serviceDrone := []float64{0, serviceDrone1}
	serviceTech := []float64{0, 0}
	dronable := []bool{false, true}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 10, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(1, 1, 0, coords, demand, serviceDrone, serviceTech, dronable, truck, cfg)
	assert.NoError(t, err)
	return p
}

func TestScenarioSingleDroneCustomer(t *testing.T) {
	p := newSingleCustomerProblem(t, 3)
	s, err := solution.New(p, [][][]int{{{0, 1, 0}}}, [][]int{})
	assert.NoError(t, err)

	assert.InDelta(t, 3+4, s.Cost[0], 1e-9) // service_drone[1] + 2*2
	assert.InDelta(t, 0, s.Cost[1], 1e-9)
}

// Two non-dronable customers, single technician, constant truck speed
// 1, zero service times: makespan equals tour length, waiting equals
// the (k-1)-summed prefix durations.
func TestScenarioTechnicianTour(t *testing.T) {
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}
	demand := []float64{0, 1, 1}
	service := []float64{0, 0, 0}
	dronable := []bool{false, false, false}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}

	p, err := problem.New(2, 0, 1, coords, demand, service, service, dronable, truck, problem.DroneConfig{})
	assert.NoError(t, err)

	s, err := solution.New(p, [][][]int{}, [][]int{{0, 1, 2, 0}})
	assert.NoError(t, err)

	tourLength := p.Distance[0][1] + p.Distance[1][2] + p.Distance[2][0]
	assert.InDelta(t, tourLength, s.Cost[0], 1e-9)

	// waiting: customer 1 waits for the edge (1,2); customer 2 (last)
	// waits 0.
	assert.InDelta(t, p.Distance[1][2], s.Cost[1], 1e-9)
}

func TestSolutionFeasibleDetectsMissingCustomer(t *testing.T) {
	p := newSingleCustomerProblem(t, 3)
	s, err := solution.New(p, [][][]int{{}}, [][]int{})
	assert.NoError(t, err)
	assert.False(t, s.Feasible())
}

func TestSolutionFeasibleAcceptsValidAssignment(t *testing.T) {
	p := newSingleCustomerProblem(t, 3)
	s, err := solution.New(p, [][][]int{{{0, 1, 0}}}, [][]int{})
	assert.NoError(t, err)
	assert.True(t, s.Feasible())
}

func TestInitialProducesFeasibleSolution(t *testing.T) {
	p := newSingleCustomerProblem(t, 3)
	s, err := solution.Initial(p)
	assert.NoError(t, err)
	assert.True(t, s.Feasible())
}

func TestShuffleInvariance(t *testing.T) {
	p := newSingleCustomerProblem(t, 3)
	s, err := solution.Initial(p)
	assert.NoError(t, err)

	shuffled, err := s.Shuffle()
	assert.NoError(t, err)
	assert.True(t, shuffled.Feasible())
}

func TestSolutionKeyIgnoresDroneOrdering(t *testing.T) {
	coords := []problem.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	demand := []float64{0, 1, 1}
	service := []float64{0, 0, 0}
	dronable := []bool{false, true, true}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 10, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(2, 2, 0, coords, demand, service, service, dronable, truck, cfg)
	assert.NoError(t, err)

	a, err := solution.New(p, [][][]int{{{0, 1, 0}}, {{0, 2, 0}}}, [][]int{})
	assert.NoError(t, err)
	b, err := solution.New(p, [][][]int{{{0, 2, 0}}, {{0, 1, 0}}}, [][]int{})
	assert.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
}
