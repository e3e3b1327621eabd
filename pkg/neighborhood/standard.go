package neighborhood

import "github.com/d2dtabu/engine/pkg/tabu"

// Registries bundles the shared tabu registries a StandardSet's
// neighborhoods draw from: one Swap registry shared across every
// (L1,L2) pair, and one Insert registry shared across every L.
type Registries struct {
	Swap   *tabu.Registry[SwapKey]
	Insert *tabu.Registry[InsertKey]
}

// NewRegistries constructs both registries bounded to tabuSize.
func NewRegistries(tabuSize int) Registries {
	return Registries{
		Swap:   tabu.NewRegistry[SwapKey](tabuSize),
		Insert: tabu.NewRegistry[InsertKey](tabuSize),
	}
}

// StandardSet returns the deterministic neighborhood list a propagating
// Solution walks each iteration: Swap(1,1), Swap(2,1), Swap(2,2),
// Insert(1), Insert(2). The lengths are fixed and legal, so the
// neighborhoods are built directly rather than through the validating
// constructors.
func StandardSet(reg Registries) []Neighborhood {
	return []Neighborhood{
		&Swap{L1: 1, L2: 1, Tabu: reg.Swap},
		&Swap{L1: 2, L2: 1, Tabu: reg.Swap},
		&Swap{L1: 2, L2: 2, Tabu: reg.Swap},
		&Insert{L: 1, Tabu: reg.Insert},
		&Insert{L: 2, Tabu: reg.Insert},
	}
}
