// Package kernel implements the pure, stateless path-cost functions:
// arrival timestamps, waiting time, weight, flight duration and energy
// consumption for a single drone or technician path. Every function
// here is keyed only by the problem.Problem and the path; none mutate
// or retain state.
package kernel

import "github.com/d2dtabu/engine/pkg/problem"

// VerticalTime returns altitude*(1/takeoff + 1/landing), the time spent
// ascending and descending on every edge of a drone sortie.
func VerticalTime(takeoffSpeed, landingSpeed, altitude float64) float64 {
	return altitude*(1/takeoffSpeed) + altitude*(1/landingSpeed)
}

// DroneArrivalTimestamps computes ts[i] for each node in path, where ts[0]
// is offset (the instant the sortie begins) and ts[len-1] is the sortie's
// completion time. Service time of the first node (the depot) contributes
// nothing.
func DroneArrivalTimestamps(p *problem.Problem, path []int, offset float64) []float64 {
	ts := make([]float64, len(path))
	if len(path) == 0 {
		return ts
	}
	ts[0] = offset
	vt := verticalTimeForVariant(p)
	cruiseSpeed := cruiseSpeedForVariant(p)
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		ts[i] = ts[i-1] + p.ServiceTimeDrone[prev] + vt + p.Distance[prev][cur]/cruiseSpeed
	}
	return ts
}

func verticalTimeForVariant(p *problem.Problem) float64 {
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		c := p.DroneCfg.Linear
		return VerticalTime(c.TakeoffSpeed, c.LandingSpeed, c.Altitude)
	case problem.DroneNonlinear:
		c := p.DroneCfg.Nonlinear
		return VerticalTime(c.TakeoffSpeed, c.LandingSpeed, c.Altitude)
	default:
		c := p.DroneCfg.Endurance
		return VerticalTime(c.TakeoffSpeed, c.LandingSpeed, c.Altitude)
	}
}

func cruiseSpeedForVariant(p *problem.Problem) float64 {
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		return p.DroneCfg.Linear.CruiseSpeed
	case problem.DroneNonlinear:
		return p.DroneCfg.Nonlinear.CruiseSpeed
	default:
		return p.DroneCfg.Endurance.CruiseSpeed
	}
}

// TechnicianArrivalTimestamps computes ts[i] for each node of a technician
// path, honoring the truck's piecewise-constant velocity: the coefficient
// cursor advances every 3600s of elapsed truck time (service time counts
// toward that elapsed time), cycling through the coefficient list.
func TechnicianArrivalTimestamps(p *problem.Problem, path []int, offset float64) []float64 {
	ts := make([]float64, len(path))
	if len(path) == 0 {
		return ts
	}
	ts[0] = offset

	// Truck speed windows are measured in hours since this path started,
	// not wall-clock depot time, so the window cursor always begins at
	// index 0 regardless of offset.
	elapsed := offset
	windowElapsed := 0.0
	windowIdx := 0

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		elapsed += p.ServiceTimeTech[prev]
		windowElapsed, windowIdx = advanceWindow(p, windowElapsed, windowIdx, p.ServiceTimeTech[prev])

		remaining := p.Distance[prev][cur]
		for remaining > 0 {
			coef := p.TruckSpeed.CoefficientAt(windowIdx)
			v := p.TruckSpeed.VMax * coef
			if v <= 0 {
				// Degenerate configuration: treat as instantaneous to avoid
				// a division by zero; callers are expected to supply a
				// positive truck speed.
				remaining = 0
				break
			}
			timeToConsume := remaining / v
			timeToWindowEdge := 3600 - windowElapsed
			if timeToConsume <= timeToWindowEdge {
				elapsed += timeToConsume
				windowElapsed += timeToConsume
				remaining = 0
			} else {
				distanceInWindow := timeToWindowEdge * v
				remaining -= distanceInWindow
				elapsed += timeToWindowEdge
				windowElapsed = 0
				windowIdx++
			}
		}
		ts[i] = elapsed
	}
	return ts
}

func advanceWindow(p *problem.Problem, windowElapsed float64, windowIdx int, delta float64) (float64, int) {
	windowElapsed += delta
	for windowElapsed >= 3600 {
		windowElapsed -= 3600
		windowIdx++
	}
	return windowElapsed, windowIdx
}
