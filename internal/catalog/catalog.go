// Package catalog holds the static pricing configuration: supported regions,
// credit packages, special offers, payment methods and the course list. A
// Catalog is built once at startup and is read-only afterwards.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/anyulbade/aiclases-pricing/internal/model"
	"github.com/anyulbade/aiclases-pricing/internal/pricing"
)

//go:embed defaults.json
var defaultsJSON []byte

type Data struct {
	DefaultRegion          string                           `json:"default_region"`
	Regions                []model.Region                   `json:"regions"`
	DefaultPackages        []model.PricePackage             `json:"default_packages"`
	RegionalPackages       map[string][]model.PricePackage  `json:"regional_packages"`
	SpecialOffers          []model.SpecialOffer             `json:"special_offers"`
	DefaultPaymentMethods  []model.PaymentMethod            `json:"default_payment_methods"`
	RegionalPaymentMethods map[string][]model.PaymentMethod `json:"regional_payment_methods"`
	Courses                []model.Course                   `json:"courses"`
}

type Catalog struct {
	data     Data
	resolver *pricing.Resolver
	selector *pricing.Selector
}

// Parse decodes a catalog document. It does not validate it.
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("parse catalog: %w", err)
	}
	return data, nil
}

// DefaultData returns the catalog bundled with the binary.
func DefaultData() (Data, error) {
	return Parse(defaultsJSON)
}

func Default() (*Catalog, error) {
	data, err := DefaultData()
	if err != nil {
		return nil, err
	}
	return New(data)
}

func New(data Data) (*Catalog, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	resolver, err := pricing.NewResolver(data.Regions, data.DefaultRegion)
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	return &Catalog{
		data:     data,
		resolver: resolver,
		selector: pricing.NewSelector(data.DefaultPackages, data.RegionalPackages),
	}, nil
}

func (c *Catalog) Resolver() *pricing.Resolver {
	return c.resolver
}

func (c *Catalog) Selector() *pricing.Selector {
	return c.selector
}

func (c *Catalog) Regions() []model.Region {
	return slices.Clone(c.data.Regions)
}

func (c *Catalog) SpecialOffers() []model.SpecialOffer {
	return slices.Clone(c.data.SpecialOffers)
}

// PaymentMethods lists the default methods followed by the region's extras.
func (c *Catalog) PaymentMethods(regionID string) []model.PaymentMethod {
	extra := c.data.RegionalPaymentMethods[regionID]
	out := make([]model.PaymentMethod, 0, len(c.data.DefaultPaymentMethods)+len(extra))
	out = append(out, c.data.DefaultPaymentMethods...)
	return append(out, extra...)
}

func (c *Catalog) Courses() []model.Course {
	return slices.Clone(c.data.Courses)
}

// FindPackage looks a package up by id in the list that applies to region.
func (c *Catalog) FindPackage(region model.Region, packageID string) (model.PricePackage, bool) {
	for _, pkg := range c.selector.PackagesFor(region) {
		if pkg.ID == packageID {
			return pkg, true
		}
	}
	return model.PricePackage{}, false
}

// Data returns a copy of the catalog document, e.g. for seeding a database.
func (c *Catalog) Data() Data {
	out := c.data
	out.Regions = slices.Clone(c.data.Regions)
	out.DefaultPackages = slices.Clone(c.data.DefaultPackages)
	out.SpecialOffers = slices.Clone(c.data.SpecialOffers)
	out.DefaultPaymentMethods = slices.Clone(c.data.DefaultPaymentMethods)
	out.Courses = slices.Clone(c.data.Courses)

	out.RegionalPackages = make(map[string][]model.PricePackage, len(c.data.RegionalPackages))
	for id, pkgs := range c.data.RegionalPackages {
		out.RegionalPackages[id] = slices.Clone(pkgs)
	}
	out.RegionalPaymentMethods = make(map[string][]model.PaymentMethod, len(c.data.RegionalPaymentMethods))
	for id, methods := range c.data.RegionalPaymentMethods {
		out.RegionalPaymentMethods[id] = slices.Clone(methods)
	}
	return out
}
