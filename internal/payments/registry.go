package payments

import (
	"fmt"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

// Registry holds the providers in preference order.
type Registry struct {
	byName  map[string]Provider
	ordered []Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byName: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.byName[p.Name()] = p
		r.ordered = append(r.ordered, p)
	}
	return r
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// ForRegion returns the first provider, in preference order, that operates
// in region.
func (r *Registry) ForRegion(region model.Region) (Provider, error) {
	for _, p := range r.ordered {
		if p.Supports(region) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: none operates in %s", ErrUnknownProvider, region.ID)
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.ordered))
	for i, p := range r.ordered {
		names[i] = p.Name()
	}
	return names
}
