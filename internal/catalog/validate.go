package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

var validate = validator.New(validator.WithRequiredStructEnabled())

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

// Validate checks the invariants every catalog must hold before it is served:
// unique region ids with ISO 4217 currencies, positive prices and base credits,
// non-negative bonuses, and regional entries that only reference known regions.
func Validate(data Data) error {
	if len(data.Regions) == 0 {
		return invalid("no regions")
	}
	if len(data.DefaultPackages) == 0 {
		return invalid("no default packages")
	}

	regions := make(map[string]model.Region, len(data.Regions))
	for i, r := range data.Regions {
		if err := validate.Struct(r); err != nil {
			return invalid("region %d: %v", i, err)
		}
		if _, err := currency.ParseISO(r.Currency); err != nil {
			return invalid("region %s: currency %q is not an ISO 4217 code", r.ID, r.Currency)
		}
		if _, dup := regions[r.ID]; dup {
			return invalid("region %s is declared twice", r.ID)
		}
		regions[r.ID] = r
	}

	if _, ok := regions[data.DefaultRegion]; !ok {
		return invalid("default region %q is not declared", data.DefaultRegion)
	}

	if err := validatePackages("default", data.DefaultPackages, ""); err != nil {
		return err
	}
	for id, pkgs := range data.RegionalPackages {
		region, ok := regions[id]
		if !ok {
			return invalid("packages declared for unknown region %q", id)
		}
		if err := validatePackages(id, pkgs, region.Currency); err != nil {
			return err
		}
	}

	seenOffers := make(map[string]bool, len(data.SpecialOffers))
	for _, o := range data.SpecialOffers {
		if err := validate.Struct(o); err != nil {
			return invalid("special offer %q: %v", o.ID, err)
		}
		if seenOffers[o.ID] {
			return invalid("special offer %s is declared twice", o.ID)
		}
		seenOffers[o.ID] = true
	}

	for _, m := range data.DefaultPaymentMethods {
		if err := validate.Struct(m); err != nil {
			return invalid("payment method %q: %v", m.ID, err)
		}
	}
	for id, methods := range data.RegionalPaymentMethods {
		if _, ok := regions[id]; !ok {
			return invalid("payment methods declared for unknown region %q", id)
		}
		for _, m := range methods {
			if err := validate.Struct(m); err != nil {
				return invalid("payment method %s/%q: %v", id, m.ID, err)
			}
		}
	}

	return nil
}

func validatePackages(list string, pkgs []model.PricePackage, wantCurrency string) error {
	seen := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		if err := validate.Struct(p); err != nil {
			return invalid("%s package %q: %v", list, p.ID, err)
		}
		if !p.Price.IsPositive() {
			return invalid("%s package %s: price must be positive", list, p.ID)
		}
		if _, err := currency.ParseISO(p.Currency); err != nil {
			return invalid("%s package %s: currency %q is not an ISO 4217 code", list, p.ID, p.Currency)
		}
		if wantCurrency != "" && p.Currency != wantCurrency {
			return invalid("%s package %s: priced in %s, region uses %s", list, p.ID, p.Currency, wantCurrency)
		}
		if seen[p.ID] {
			return invalid("%s package %s is declared twice", list, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
