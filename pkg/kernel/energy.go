package kernel

import (
	"math"

	"github.com/d2dtabu/engine/pkg/problem"
)

const gravity = 9.8

// DroneEnergy returns the energy, in joules, consumed by a sortie along
// path. Per-edge flight durations are derived from edge distances and the
// configured speeds and altitude; ts is not read. For the
// endurance variant it always returns 0: that model has no weight-based
// energy term, so callers must check CheckEndurance instead.
func DroneEnergy(p *problem.Problem, path []int, ts []float64) float64 {
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		return linearEnergy(p, path, ts)
	case problem.DroneNonlinear:
		return nonlinearEnergy(p, path, ts)
	default:
		return 0
	}
}

// linearEnergy applies P = beta*weight + gamma across vertical and cruise
// phases, where weight is the cumulative remaining payload at each edge.
func linearEnergy(p *problem.Problem, path []int, ts []float64) float64 {
	c := p.DroneCfg.Linear
	vt := VerticalTime(c.TakeoffSpeed, c.LandingSpeed, c.Altitude)

	remaining := TotalWeight(p, path)
	var energy float64
	for i := 0; i < len(path)-1; i++ {
		prev, cur := path[i], path[i+1]
		cruiseTime := p.Distance[prev][cur] / c.CruiseSpeed
		power := c.Beta*remaining + c.Gamma
		energy += power * (vt + cruiseTime)
		remaining -= p.Demand[cur]
	}
	return energy
}

// nonlinearEnergy applies the closed-form vertical and cruise power
// models. The vertical power depends on the phase velocity, so the
// takeoff and landing sub-phases are charged separately at their own
// speeds.
func nonlinearEnergy(p *problem.Problem, path []int, ts []float64) float64 {
	c := p.DroneCfg.Nonlinear
	takeoffTime := c.Altitude / c.TakeoffSpeed
	landingTime := c.Altitude / c.LandingSpeed

	remaining := TotalWeight(p, path)
	var energy float64
	for i := 0; i < len(path)-1; i++ {
		prev, cur := path[i], path[i+1]
		weight := 1.5 + remaining // W = drone self-weight (1.5kg) + payload
		takeoffPower := verticalPower(c, weight, c.TakeoffSpeed)
		landingPower := verticalPower(c, weight, c.LandingSpeed)
		cruisePower := cruisePower(c, weight)
		cruiseTime := p.Distance[prev][cur] / c.CruiseSpeed
		energy += takeoffPower*takeoffTime + landingPower*landingTime + cruisePower*cruiseTime
		remaining -= p.Demand[cur]
	}
	return energy
}

// verticalPower computes P(v,w) = k1*W*g*(v/2 + sqrt((v/2)^2 + W*g/k2^2)) +
// c2*(W*g)^1.5, the induced+profile power of ascent/descent.
func verticalPower(c problem.DroneNonlinearConfig, weight, verticalSpeed float64) float64 {
	wg := weight * gravity
	half := verticalSpeed / 2
	inner := math.Sqrt(half*half + wg/(c.K2*c.K2))
	return c.K1*wg*(half+inner) + c.C2*math.Pow(wg, 1.5)
}

// cruisePower computes the forward-flight power at cruise speed v_c:
// (c1+c2)*((W*g - c5*(v_c*cos(10deg))^2)^2 + (c4*v_c^2)^2)^0.75 + c4*v_c^3.
func cruisePower(c problem.DroneNonlinearConfig, weight float64) float64 {
	wg := weight * gravity
	vc := c.CruiseSpeed
	cos10 := math.Cos(10 * math.Pi / 180)
	term1 := wg - c.C5*math.Pow(vc*cos10, 2)
	inner := math.Pow(term1, 2) + math.Pow(c.C4*vc*vc, 2)
	return (c.C1+c.C2)*math.Pow(inner, 0.75) + c.C4*math.Pow(vc, 3)
}

// CheckCapacity reports whether path's cumulative demand does not exceed
// the active drone variant's capacity. Technician paths (drone=false)
// always pass.
func CheckCapacity(p *problem.Problem, path []int, drone bool) bool {
	weight := TotalWeight(p, path)
	if !drone {
		return true // technicians carry no payload limit in this model
	}
	var limit float64
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		limit = p.DroneCfg.Linear.Capacity
	case problem.DroneNonlinear:
		limit = p.DroneCfg.Nonlinear.Capacity
	default:
		limit = p.DroneCfg.Endurance.Capacity
	}
	return weight <= limit
}

// CheckEnergy reports whether a linear/nonlinear sortie's energy consumption
// stays within the configured battery. Always true for the endurance
// variant, which has no energy budget.
func CheckEnergy(p *problem.Problem, path []int, ts []float64) bool {
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		return DroneEnergy(p, path, ts) <= p.DroneCfg.Linear.Battery
	case problem.DroneNonlinear:
		return DroneEnergy(p, path, ts) <= p.DroneCfg.Nonlinear.Battery
	default:
		return true
	}
}

// CheckEndurance reports whether an endurance-variant sortie stays within
// both the fixed flight-time and fixed-range limits. Always true for the
// other two variants, which are governed by CheckEnergy instead.
func CheckEndurance(p *problem.Problem, path []int, ts []float64) bool {
	if p.DroneCfg.Variant != problem.DroneEndurance {
		return true
	}
	c := p.DroneCfg.Endurance
	if FlightDuration(ts) > c.FixedTime {
		return false
	}
	if RequiredRange(p, path) > c.FixedDistance {
		return false
	}
	return true
}

// Feasible runs every applicable feasibility predicate for a single drone
// sortie: capacity, energy (linear/nonlinear) and endurance (time/range).
func Feasible(p *problem.Problem, path []int, ts []float64, drone bool) bool {
	if !CheckCapacity(p, path, drone) {
		return false
	}
	if !drone {
		return true
	}
	return CheckEnergy(p, path, ts) && CheckEndurance(p, path, ts)
}
