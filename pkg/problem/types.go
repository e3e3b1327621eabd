// Package problem holds the immutable, process-wide record consumed by the
// tabu-search engine: customer coordinates, demands, service times, the
// truck speed schedule, and the selected drone-energy configuration.
//
// The core never parses problem files itself; that is an external
// collaborator's job (see pkg/external). It only constructs and validates
// an already-assembled Problem.
package problem

import (
	"math"

	"github.com/d2dtabu/engine/pkg/ierrors"
)

// Coord is a 2D position.
type Coord struct {
	X, Y float64
}

// DroneVariant identifies which energy/endurance model is active.
type DroneVariant int

const (
	// DroneLinear uses a constant per-phase power draw P = beta*weight + gamma.
	DroneLinear DroneVariant = iota
	// DroneNonlinear uses the closed-form vertical/cruise power formulas.
	DroneNonlinear
	// DroneEndurance has no weight-based energy model; it constrains total
	// flight time and maximum radial distance from the depot instead.
	DroneEndurance
)

func (v DroneVariant) String() string {
	switch v {
	case DroneLinear:
		return "linear"
	case DroneNonlinear:
		return "non-linear"
	case DroneEndurance:
		return "endurance"
	default:
		return "unknown"
	}
}

// DroneLinearConfig parameterizes the constant-power drone energy
// model: power at any flight phase is Beta*weight + Gamma.
type DroneLinearConfig struct {
	TakeoffSpeed float64
	CruiseSpeed  float64
	LandingSpeed float64
	Altitude     float64
	Capacity     float64
	Battery      float64
	Beta         float64 // W/kg
	Gamma        float64 // W
}

// DroneNonlinearConfig parameterizes the closed-form vertical and
// cruise power models.
type DroneNonlinearConfig struct {
	TakeoffSpeed float64
	CruiseSpeed  float64
	LandingSpeed float64
	Altitude     float64
	Capacity     float64
	Battery      float64
	K1, K2       float64
	C1, C2       float64
	C4, C5       float64
}

// DroneEnduranceConfig bounds a sortie kinematically. It deliberately
// carries no per-weight energy terms: endurance feasibility is purely a
// matter of flight time and radial distance.
type DroneEnduranceConfig struct {
	TakeoffSpeed  float64
	CruiseSpeed   float64
	LandingSpeed  float64
	Altitude      float64
	Capacity      float64
	FixedTime     float64 // seconds, max total flight duration per sortie
	FixedDistance float64 // meters, max radial distance from depot
	DroneSpeed    float64
}

// DroneConfig is the closed sum type selecting exactly one
// energy/endurance model.
type DroneConfig struct {
	Variant   DroneVariant
	Linear    DroneLinearConfig
	Nonlinear DroneNonlinearConfig
	Endurance DroneEnduranceConfig
}

// TruckSpeedProfile is the truck's maximum velocity and the cyclic sequence
// of coefficients applied in 3600-second windows.
type TruckSpeedProfile struct {
	VMax         float64
	Coefficients []float64
}

// CoefficientAt returns the coefficient active in the k-th hour window
// (0-indexed), cycling through Coefficients.
func (p TruckSpeedProfile) CoefficientAt(windowIndex int) float64 {
	n := len(p.Coefficients)
	if n == 0 {
		return 1
	}
	return p.Coefficients[windowIndex%n]
}

// Problem is the immutable, process-wide record every kernel, solution and
// neighborhood computation is keyed against.
type Problem struct {
	N           int // customer count; depot is index 0, customers are 1..N
	Drones      int
	Technicians int

	Coords []Coord // length N+1, index 0 is the depot

	// Distance[i][j] is the symmetric, precomputed pairwise distance.
	Distance [][]float64

	Demand           []float64 // length N+1, Demand[0] == 0
	ServiceTimeDrone []float64
	ServiceTimeTech  []float64
	Dronable         []bool // length N+1; Dronable[0] is unused

	TruckSpeed TruckSpeedProfile
	DroneCfg   DroneConfig
}

// New validates and constructs a Problem. It never parses text; the
// caller has already assembled the per-customer slices (problem-file
// parsing is an external collaborator's concern).
func New(
	n, drones, technicians int,
	coords []Coord,
	demand, serviceDrone, serviceTech []float64,
	dronable []bool,
	truckSpeed TruckSpeedProfile,
	droneCfg DroneConfig,
) (*Problem, error) {
	if n < 0 {
		return nil, ierrors.New(ierrors.KindProblemImport, "negative customer count", nil)
	}
	size := n + 1
	for name, s := range map[string]int{
		"coords":       len(coords),
		"demand":       len(demand),
		"serviceDrone": len(serviceDrone),
		"serviceTech":  len(serviceTech),
		"dronable":     len(dronable),
	} {
		if s != size {
			return nil, ierrors.Newf(ierrors.KindProblemImport, nil,
				"%s has length %d, want %d (N+1)", name, s, size)
		}
	}
	if demand[0] != 0 {
		return nil, ierrors.New(ierrors.KindProblemImport, "depot demand must be zero", nil)
	}
	if drones < 0 || technicians < 0 {
		return nil, ierrors.New(ierrors.KindProblemImport, "negative fleet size", nil)
	}

	dist := make([][]float64, size)
	for i := 0; i < size; i++ {
		dist[i] = make([]float64, size)
		for j := 0; j < size; j++ {
			dist[i][j] = euclidean(coords[i], coords[j])
		}
	}

	return &Problem{
		N:                n,
		Drones:           drones,
		Technicians:      technicians,
		Coords:           coords,
		Distance:         dist,
		Demand:           demand,
		ServiceTimeDrone: serviceDrone,
		ServiceTimeTech:  serviceTech,
		Dronable:         dronable,
		TruckSpeed:       truckSpeed,
		DroneCfg:         droneCfg,
	}, nil
}

// NewWithDistances behaves like New but accepts a precomputed distance
// matrix rather than deriving it from Euclidean coordinates, for
// problems whose distances are specified directly.
func NewWithDistances(
	n, drones, technicians int,
	coords []Coord,
	distance [][]float64,
	demand, serviceDrone, serviceTech []float64,
	dronable []bool,
	truckSpeed TruckSpeedProfile,
	droneCfg DroneConfig,
) (*Problem, error) {
	p, err := New(n, drones, technicians, coords, demand, serviceDrone, serviceTech, dronable, truckSpeed, droneCfg)
	if err != nil {
		return nil, err
	}
	size := n + 1
	if len(distance) != size {
		return nil, ierrors.Newf(ierrors.KindProblemImport, nil, "distance matrix has %d rows, want %d", len(distance), size)
	}
	for i, row := range distance {
		if len(row) != size {
			return nil, ierrors.Newf(ierrors.KindProblemImport, nil, "distance row %d has %d cols, want %d", i, len(row), size)
		}
	}
	p.Distance = distance
	return p, nil
}

func euclidean(a, b Coord) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
