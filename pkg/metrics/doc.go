// Package metrics exposes the engine's prometheus/client_golang
// instrumentation: an iteration counter, a Pareto-set size gauge, a
// tabu-hit counter, and a move-evaluation duration histogram.
package metrics
