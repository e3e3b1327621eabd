// Package neighborhood implements the Swap(L1,L2) and Insert(L) move
// neighborhoods: parallel enumeration of candidate moves against a
// parent Solution, continuous soft-feasibility scoring, and
// per-neighborhood tabu keys. Move evaluation fans out across an
// in-process goroutine pool; workers hand back materialized candidates,
// and the merge keeps only the dominance-pruned survivors.
package neighborhood
