// Package driver implements the multi-objective tabu-search loop: it
// walks a frontier of propagating Solutions through their neighborhoods,
// merges candidate moves into a global Pareto set, and orders the next
// frontier by a propagation-priority function. Concurrency is split
// across two tiers: golang.org/x/sync/errgroup bounds the per-Solution
// tasks, and pkg/neighborhood fans each task's move enumeration out
// across its own goroutine pool.
package driver
