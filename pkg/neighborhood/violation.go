package neighborhood

import (
	"github.com/d2dtabu/engine/pkg/kernel"
	"github.com/d2dtabu/engine/pkg/problem"
)

// droneViolation returns the nonnegative relative-overshoot penalty for a
// reconstructed drone sortie: how far capacity and the configured
// energy/endurance limit are exceeded, summed across every limit the
// active drone variant applies. Zero means the sortie is fully
// feasible; the underlying quantities come from pkg/kernel.
func droneViolation(p *problem.Problem, path []int, ts []float64) float64 {
	var v float64

	weight := kernel.TotalWeight(p, path)
	if limit := capacityLimit(p); limit > 0 && weight > limit {
		v += (weight - limit) / limit
	}

	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		if b := p.DroneCfg.Linear.Battery; b > 0 {
			if e := kernel.DroneEnergy(p, path, ts); e > b {
				v += (e - b) / b
			}
		}
	case problem.DroneNonlinear:
		if b := p.DroneCfg.Nonlinear.Battery; b > 0 {
			if e := kernel.DroneEnergy(p, path, ts); e > b {
				v += (e - b) / b
			}
		}
	default:
		c := p.DroneCfg.Endurance
		if c.FixedTime > 0 {
			if d := kernel.FlightDuration(ts); d > c.FixedTime {
				v += (d - c.FixedTime) / c.FixedTime
			}
		}
		if c.FixedDistance > 0 {
			if r := kernel.RequiredRange(p, path); r > c.FixedDistance {
				v += (r - c.FixedDistance) / c.FixedDistance
			}
		}
	}

	return v
}

func capacityLimit(p *problem.Problem) float64 {
	switch p.DroneCfg.Variant {
	case problem.DroneLinear:
		return p.DroneCfg.Linear.Capacity
	case problem.DroneNonlinear:
		return p.DroneCfg.Nonlinear.Capacity
	default:
		return p.DroneCfg.Endurance.Capacity
	}
}
