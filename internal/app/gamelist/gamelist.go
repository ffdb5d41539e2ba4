// Package gamelist tracks which packages are registered as games.
// Pure set membership, safe for arbitrary calling goroutines; unlike the
// boost scheduler it is not serialized through any queue.
package gamelist

import (
	"log"
	"sort"
	"sync"

	"github.com/perfkit/boostd/internal/domain"
	"github.com/perfkit/boostd/internal/infra/metrics"
)

// Registry is a thread-safe set of game package identifiers with optional
// write-through persistence.
type Registry struct {
	mu       sync.RWMutex
	packages map[string]struct{}
	store    domain.GameListStore // optional, nil disables persistence
}

// New creates a registry. When store is non-nil, previously persisted
// packages are loaded and later additions written through.
func New(store domain.GameListStore) *Registry {
	r := &Registry{
		packages: make(map[string]struct{}),
		store:    store,
	}
	if store != nil {
		pkgs, err := store.ListGamePackages()
		if err != nil {
			log.Printf("[gamelist] load persisted packages: %v", err)
		}
		for _, p := range pkgs {
			r.packages[p] = struct{}{}
		}
	}
	metrics.GameListSize.Set(float64(len(r.packages)))
	return r
}

// Add inserts a package into the game list. Idempotent.
func (r *Registry) Add(pkg string) {
	r.mu.Lock()
	_, exists := r.packages[pkg]
	if !exists {
		r.packages[pkg] = struct{}{}
	}
	size := len(r.packages)
	r.mu.Unlock()

	metrics.GameListSize.Set(float64(size))
	if !exists && r.store != nil {
		if err := r.store.AddGamePackage(pkg); err != nil {
			log.Printf("[gamelist] persist %q: %v", pkg, err)
		}
	}
}

// Contains reports whether a package is on the game list.
// Never-added packages simply test false.
func (r *Registry) Contains(pkg string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.packages[pkg]
	return ok
}

// List returns all registered packages, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.packages))
	for p := range r.packages {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}
