package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/metrics"
	"github.com/anyulbade/aiclases-pricing/internal/model"
	"github.com/anyulbade/aiclases-pricing/internal/payments"
	"github.com/anyulbade/aiclases-pricing/internal/pricing"
)

type CheckoutService struct {
	pricing   *PricingService
	providers *payments.Registry
	metrics   *metrics.Metrics
	returnURL string
}

func NewCheckoutService(pricingSvc *PricingService, providers *payments.Registry, m *metrics.Metrics, returnURL string) *CheckoutService {
	return &CheckoutService{pricing: pricingSvc, providers: providers, metrics: m, returnURL: returnURL}
}

type CheckoutResult struct {
	Session *payments.CheckoutSession
	Offer   model.AnnotatedOffer
}

// CreateCheckout prices the requested package for the caller's region and
// opens a session with the provider that serves it.
func (s *CheckoutService) CreateCheckout(ctx context.Context, user *model.User, req *dto.CheckoutRequest, sig Signals) (*CheckoutResult, error) {
	if user == nil {
		return nil, ErrUnauthorized
	}

	sig.Country = req.Country
	res := s.pricing.Resolve(sig)
	if req.Country != "" && res.Source != pricing.SourceExplicit {
		return nil, &validationErr{field: "country", message: fmt.Sprintf("%q is not a supported region", req.Country)}
	}

	offer, err := s.pricing.FindOffer(res.Region, req.PackageID)
	if err != nil {
		return nil, err
	}

	provider, err := s.provider(req.Provider, res.Region)
	if err != nil {
		return nil, err
	}

	session, err := provider.CreateCheckout(ctx, payments.CheckoutRequest{
		UserID:     user.ID,
		Email:      user.Email,
		Region:     res.Region,
		Offer:      offer,
		SuccessURL: s.redirectURL("success"),
		CancelURL:  s.redirectURL("cancelled"),
	})
	if err != nil {
		return nil, fmt.Errorf("create %s checkout: %w", provider.Name(), err)
	}

	s.metrics.RecordCheckout(provider.Name(), res.Region.ID)
	log.Info().
		Str("provider", provider.Name()).
		Str("session", session.ID).
		Str("region", res.Region.ID).
		Str("package", offer.ID).
		Msg("checkout session created")

	return &CheckoutResult{Session: session, Offer: offer}, nil
}

func (s *CheckoutService) provider(name string, region model.Region) (payments.Provider, error) {
	if name == "" {
		return s.providers.ForRegion(region)
	}
	p, err := s.providers.Get(name)
	if err != nil {
		return nil, err
	}
	if !p.Supports(region) {
		return nil, &validationErr{field: "provider", message: fmt.Sprintf("%s does not operate in %s", name, region.ID)}
	}
	return p, nil
}

func (s *CheckoutService) redirectURL(outcome string) string {
	u, err := url.Parse(s.returnURL)
	if err != nil {
		return s.returnURL
	}
	q := u.Query()
	q.Set("payment", outcome)
	u.RawQuery = q.Encode()
	return u.String()
}
