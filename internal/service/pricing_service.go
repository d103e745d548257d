package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/metrics"
	"github.com/anyulbade/aiclases-pricing/internal/model"
	"github.com/anyulbade/aiclases-pricing/internal/offers"
	"github.com/anyulbade/aiclases-pricing/internal/pricing"
)

// Signals are the request inputs region resolution looks at.
type Signals struct {
	Country        string
	AcceptLanguage string
	UserAgent      string
}

type Quote struct {
	Region         model.Region           `json:"region"`
	Source         pricing.Source         `json:"source"`
	Detected       pricing.Resolution     `json:"detected"`
	Locale         string                 `json:"locale"`
	Packages       []model.AnnotatedOffer `json:"packages"`
	SpecialOffers  []model.SpecialOffer   `json:"special_offers"`
	PaymentMethods []model.PaymentMethod  `json:"payment_methods"`
}

type PricingService struct {
	catalog  *catalog.Catalog
	resolver *pricing.Resolver
	selector *pricing.Selector
	offers   *offers.Engine
	metrics  *metrics.Metrics
}

func NewPricingService(cat *catalog.Catalog, engine *offers.Engine, m *metrics.Metrics) *PricingService {
	return &PricingService{
		catalog:  cat,
		resolver: cat.Resolver(),
		selector: cat.Selector(),
		offers:   engine,
		metrics:  m,
	}
}

func (s *PricingService) Regions() []model.Region {
	return s.catalog.Regions()
}

func (s *PricingService) DefaultRegion() model.Region {
	return s.resolver.Default()
}

func (s *PricingService) Resolve(sig Signals) pricing.Resolution {
	res := s.resolver.ResolveWithSource(sig.Country, sig.AcceptLanguage, sig.UserAgent)
	s.metrics.RecordResolution(string(res.Source), res.Region.ID)
	return res
}

// Packages returns the annotated catalog served for region. Entries that
// cannot be annotated are logged and left out; the rest are still served.
func (s *PricingService) Packages(region model.Region) []model.AnnotatedOffer {
	if !s.selector.HasCatalog(region.ID) {
		s.metrics.RecordFallback(region.ID)
	}

	offers, rejected := s.annotated(region)
	for _, r := range rejected {
		log.Warn().Err(r.err).
			Str("region", region.ID).
			Str("package", r.packageID).
			Msg("dropping catalog entry")
		s.metrics.RecordInvalidEntry(r.packageID)
	}
	return offers
}

type rejectedEntry struct {
	packageID string
	err       error
}

// annotated has no side effects; lookups and reports use it directly.
func (s *PricingService) annotated(region model.Region) ([]model.AnnotatedOffer, []rejectedEntry) {
	pkgs := s.selector.PackagesFor(region)
	out := make([]model.AnnotatedOffer, 0, len(pkgs))
	var rejected []rejectedEntry
	for _, pkg := range pkgs {
		offer, err := pricing.Annotate(pkg)
		if err != nil {
			rejected = append(rejected, rejectedEntry{packageID: pkg.ID, err: err})
			continue
		}
		out = append(out, offer)
	}
	return out, rejected
}

// Quote assembles everything the pricing page shows for one request.
func (s *PricingService) Quote(sig Signals) *Quote {
	res := s.Resolve(sig)
	locale := pricing.MatchLocale(sig.AcceptLanguage)

	return &Quote{
		Region:         res.Region,
		Source:         res.Source,
		Detected:       s.resolver.Detect(sig.AcceptLanguage, sig.UserAgent),
		Locale:         locale,
		Packages:       s.Packages(res.Region),
		SpecialOffers:  s.offers.For(res.Region, locale),
		PaymentMethods: s.catalog.PaymentMethods(res.Region.ID),
	}
}

// FindOffer resolves a package id against the region's effective catalog.
func (s *PricingService) FindOffer(region model.Region, packageID string) (model.AnnotatedOffer, error) {
	offers, _ := s.annotated(region)
	for _, offer := range offers {
		if offer.ID == packageID {
			return offer, nil
		}
	}
	return model.AnnotatedOffer{}, fmt.Errorf("%w: %q in region %s", ErrUnknownPackage, packageID, region.ID)
}

func (s *PricingService) Courses(level, category string) []model.Course {
	courses := s.catalog.Courses()
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if level != "" && c.Level != level {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}
