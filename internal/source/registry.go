package source

import (
	"slices"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// Registry holds the configured adapters keyed by source, preserving
// registration order.
type Registry struct {
	order    []domain.Source
	adapters map[domain.Source]Adapter
}

// NewRegistry registers adapters. A later adapter with the same name
// replaces the earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.Source]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces an adapter.
func (r *Registry) Register(a Adapter) {
	name := a.Name()
	if _, ok := r.adapters[name]; !ok {
		r.order = append(r.order, name)
	}
	r.adapters[name] = a
}

// Get returns the adapter for name.
func (r *Registry) Get(name domain.Source) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns registered source names in registration order.
func (r *Registry) Names() []domain.Source {
	return slices.Clone(r.order)
}

// All returns registered adapters in registration order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}
