// Package tabu implements the bounded, rotating tabu registry each
// neighborhood keeps of its recently-applied move keys.
package tabu

import "sync"

// Registry is a mutex-guarded, bounded FIFO of tabu keys. Re-adding a
// key already present rotates it to the tail instead of being a no-op:
// the key is still the freshest even though it was already forbidden.
type Registry[K comparable] struct {
	mu      sync.Mutex
	order   []K
	present map[K]struct{}
	maxLen  int
}

// NewRegistry constructs a Registry bounded to maxLen entries.
func NewRegistry[K comparable](maxLen int) *Registry[K] {
	return &Registry[K]{
		order:   make([]K, 0, maxLen),
		present: make(map[K]struct{}, maxLen),
		maxLen:  maxLen,
	}
}

// Contains reports whether key is currently tabu.
func (r *Registry[K]) Contains(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.present[key]
	return ok
}

// Add marks key as tabu. If key is already tabu it is moved to the tail
// of the FIFO (the most-recently-added position); otherwise it is
// appended and, if the registry now exceeds maxLen, the oldest entry is
// evicted.
func (r *Registry[K]) Add(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.present[key]; ok {
		for i, k := range r.order {
			if k == key {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
		r.order = append(r.order, key)
		return
	}

	r.present[key] = struct{}{}
	r.order = append(r.order, key)
	r.evict()
}

func (r *Registry[K]) evict() {
	for len(r.order) > r.maxLen {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.present, oldest)
	}
}

// Reset changes the registry's capacity to maxLen, evicting the oldest
// entries if the new capacity is smaller.
func (r *Registry[K]) Reset(maxLen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxLen = maxLen
	r.evict()
}

// Len returns the number of currently tabu keys.
func (r *Registry[K]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
