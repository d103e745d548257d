package pricing

import (
	"slices"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

// Selector returns the package list that applies to a region. Lists keep
// catalog order, which is the display order.
type Selector struct {
	defaults []model.PricePackage
	regional map[string][]model.PricePackage
}

func NewSelector(defaults []model.PricePackage, regional map[string][]model.PricePackage) *Selector {
	s := &Selector{
		defaults: slices.Clone(defaults),
		regional: make(map[string][]model.PricePackage, len(regional)),
	}
	for id, pkgs := range regional {
		if len(pkgs) == 0 {
			continue
		}
		s.regional[normalizeRegionID(id)] = slices.Clone(pkgs)
	}
	return s
}

func (s *Selector) HasCatalog(regionID string) bool {
	_, ok := s.regional[normalizeRegionID(regionID)]
	return ok
}

// PackagesFor returns the region's own catalog, or the default catalog
// relabeled with the region currency. Amounts are not converted.
func (s *Selector) PackagesFor(region model.Region) []model.PricePackage {
	if pkgs, ok := s.regional[normalizeRegionID(region.ID)]; ok {
		return slices.Clone(pkgs)
	}

	out := make([]model.PricePackage, len(s.defaults))
	for i, pkg := range s.defaults {
		if region.Currency != "" {
			pkg.Currency = region.Currency
		}
		out[i] = pkg
	}
	return out
}

func (s *Selector) Defaults() []model.PricePackage {
	return slices.Clone(s.defaults)
}
