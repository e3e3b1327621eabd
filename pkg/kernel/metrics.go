package kernel

import "github.com/d2dtabu/engine/pkg/problem"

// TotalWaiting sums, over internal nodes of path, how long each customer
// waited after being served until the path's last customer is also
// served. The reference point is departure from the last customer, not
// the final depot-return arrival: the return leg is travel time for the
// vehicle, not time any customer spends waiting on it.
func TotalWaiting(p *problem.Problem, path []int, ts []float64, drone bool) float64 {
	if len(path) < 3 {
		return 0
	}
	service := p.ServiceTimeTech
	if drone {
		service = p.ServiceTimeDrone
	}
	lastCustomer := len(path) - 2
	finish := ts[lastCustomer] + service[path[lastCustomer]]

	var waiting float64
	for i := 1; i <= lastCustomer; i++ {
		waiting += finish - ts[i] - service[path[i]]
	}
	return waiting
}

// TotalWeight sums demand over every node in path, including the depot
// endpoints (whose demand is always zero).
func TotalWeight(p *problem.Problem, path []int) float64 {
	var w float64
	for _, c := range path {
		w += p.Demand[c]
	}
	return w
}

// FlightDuration returns ts[-1] - ts[0], a sortie's total airborne time.
func FlightDuration(ts []float64) float64 {
	if len(ts) == 0 {
		return 0
	}
	return ts[len(ts)-1] - ts[0]
}

// RequiredRange returns the maximum depot distance among the nodes of path,
// the binding constraint for the endurance drone variant.
func RequiredRange(p *problem.Problem, path []int) float64 {
	var maxDist float64
	for _, c := range path {
		if d := p.Distance[0][c]; d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}
