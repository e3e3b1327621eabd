package driver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"

	"github.com/d2dtabu/engine/pkg/driver"
	"github.com/d2dtabu/engine/pkg/problem"
	"github.com/d2dtabu/engine/pkg/solution"
)

func newTestProblem(t *testing.T) *problem.Problem {
	t.Helper()
	coords := make([]problem.Coord, 6)
	demand := make([]float64, 6)
	service := make([]float64, 6)
	dronable := make([]bool, 6)
	for i := range coords {
		coords[i] = problem.Coord{X: float64(i % 3), Y: float64(i / 3)}
		dronable[i] = true
	}
	truck := problem.TruckSpeedProfile{VMax: 1, Coefficients: []float64{1}}
	cfg := problem.DroneConfig{
		Variant: problem.DroneLinear,
		Linear: problem.DroneLinearConfig{
			TakeoffSpeed: 5, CruiseSpeed: 5, LandingSpeed: 5,
			Altitude: 0, Capacity: 100, Battery: 1e9, Beta: 0, Gamma: 1,
		},
	}
	p, err := problem.New(5, 2, 1, coords, demand, service, service, dronable, truck, cfg)
	require.NoError(t, err)
	return p
}

func TestSetDefaultsArgsFillsZeroValues(t *testing.T) {
	args := driver.Args{}
	driver.SetDefaults_Args(&args)
	assert.Equal(t, driver.DefaultWorkers, args.Workers)
	assert.Equal(t, driver.DefaultNeighborhoodWorkers, args.NeighborhoodWorkers)
	assert.Equal(t, driver.DefaultIterationsCount, args.IterationsCount)
	assert.Equal(t, driver.DefaultTabuSize, args.TabuSize)
	require.NotNil(t, args.MaxPropagation)
	assert.Equal(t, driver.DefaultMaxPropagation, args.MaxPropagation(0, nil))
	require.NotNil(t, args.BeforeIteration)
	require.NotNil(t, args.AfterIteration)
}

func TestValidateArgsRejectsUnknownPriority(t *testing.T) {
	args := driver.Args{}
	driver.SetDefaults_Args(&args)
	args.PriorityName = "not-a-real-priority"
	assert.Error(t, driver.ValidateArgs(&args))
}

func TestValidateArgsAcceptsKnownPriority(t *testing.T) {
	args := driver.Args{}
	driver.SetDefaults_Args(&args)
	args.PriorityName = "min-distance"
	assert.NoError(t, driver.ValidateArgs(&args))
}

func TestRunProducesNonEmptyParetoSet(t *testing.T) {
	p := newTestProblem(t)
	args := driver.Args{IterationsCount: 2, Workers: 2, NeighborhoodWorkers: 2, TabuSize: 16}
	d := driver.New(p, args, klog.Background())

	results, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Greater(t, results.Len(), 0)
}

func TestRunAppliesPostOptimizationToEveryResult(t *testing.T) {
	p := newTestProblem(t)
	d := driver.New(p, driver.Args{
		IterationsCount: 1, Workers: 1, NeighborhoodWorkers: 1, TabuSize: 8,
	}, klog.Background())

	calls := 0
	d.Args.PostOptimization = func(s *solution.Solution) (*solution.Solution, error) {
		calls++
		return s, nil
	}

	results, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Greater(t, calls, 0)
	assert.Equal(t, results.Len(), calls)
}

func TestRunCallsHooksEveryIteration(t *testing.T) {
	p := newTestProblem(t)
	var before, after int

	d := driver.New(p, driver.Args{
		IterationsCount: 3, Workers: 2, NeighborhoodWorkers: 2, TabuSize: 16,
	}, klog.Background())
	d.Args.BeforeIteration = func(iteration, lastImproved int, current []*solution.Solution, counter map[string]int) {
		before++
	}
	d.Args.AfterIteration = func(iteration, lastImproved int, current []*solution.Solution, counter map[string]int) {
		after++
	}

	_, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, before)
	assert.Equal(t, 3, after)
}
