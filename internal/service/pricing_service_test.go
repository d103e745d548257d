package service

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/aiclases-pricing/internal/catalog"
	"github.com/anyulbade/aiclases-pricing/internal/metrics"
	"github.com/anyulbade/aiclases-pricing/internal/model"
	"github.com/anyulbade/aiclases-pricing/internal/offers"
	"github.com/anyulbade/aiclases-pricing/internal/pricing"
)

func newTestPricingService(t *testing.T, m *metrics.Metrics) *PricingService {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	engine, err := offers.NewEngine(cat.SpecialOffers())
	require.NoError(t, err)
	return NewPricingService(cat, engine, m)
}

func TestPricingService_Quote(t *testing.T) {
	svc := newTestPricingService(t, nil)

	q := svc.Quote(Signals{Country: "co", AcceptLanguage: "pt-BR,pt;q=0.9"})

	assert.Equal(t, "CO", q.Region.ID)
	assert.Equal(t, pricing.SourceExplicit, q.Source)
	assert.Equal(t, "BR", q.Detected.Region.ID)
	assert.Equal(t, pricing.SourceAcceptLanguage, q.Detected.Source)
	assert.Equal(t, "pt", q.Locale)
	require.Len(t, q.Packages, 3)
	for _, p := range q.Packages {
		assert.Equal(t, "COP", p.Currency)
	}
	assert.Empty(t, q.SpecialOffers)
	assert.Len(t, q.PaymentMethods, 5)
}

func TestPricingService_QuoteSpecialOffers(t *testing.T) {
	svc := newTestPricingService(t, nil)

	q := svc.Quote(Signals{AcceptLanguage: "pt-BR"})
	require.Len(t, q.SpecialOffers, 1)
	assert.Equal(t, "pix-relampago", q.SpecialOffers[0].ID)

	q = svc.Quote(Signals{Country: "AR", AcceptLanguage: "es-AR"})
	require.Len(t, q.SpecialOffers, 1)
	assert.Equal(t, "bienvenida-cono-sur", q.SpecialOffers[0].ID)
}

func TestPricingService_QuoteDefaults(t *testing.T) {
	svc := newTestPricingService(t, nil)

	q := svc.Quote(Signals{})
	assert.Equal(t, "MX", q.Region.ID)
	assert.Equal(t, pricing.SourceDefault, q.Source)
	assert.Equal(t, pricing.DefaultLocale, q.Locale)
	require.Len(t, q.Packages, 2)

	popular := q.Packages[1]
	assert.Equal(t, "popular", popular.ID)
	assert.Equal(t, 1400, popular.TotalUnits)
	assert.True(t, popular.IsPopular)
	assert.Equal(t, "59 MXN", popular.FormattedPrice)
	assert.True(t, decimal.NewFromInt(59).Div(decimal.NewFromInt(1400)).Equal(popular.UnitPrice))
}

func TestPricingService_PackagesFallback(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := newTestPricingService(t, metrics.NewMetrics(reg))

	br, ok := svc.resolver.Lookup("BR")
	require.True(t, ok)

	offers := svc.Packages(br)
	require.Len(t, offers, 3)
	assert.Equal(t, []string{"starter", "popular", "pro"}, []string{offers[0].ID, offers[1].ID, offers[2].ID})
	assert.Equal(t, "BRL", offers[2].Currency)
	assert.True(t, offers[2].IsRecommended)

	count, err := testutil.GatherAndCount(reg, "pricing_catalog_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPricingService_DropsInvalidEntries(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := newTestPricingService(t, metrics.NewMetrics(reg))
	svc.selector = pricing.NewSelector([]model.PricePackage{
		{ID: "starter", Name: "Starter", BaseUnits: 500, Price: decimal.NewFromInt(29), Currency: "USD"},
		{ID: "broken", Name: "Broken", BaseUnits: 0, BonusUnits: 0, Price: decimal.NewFromInt(10), Currency: "USD"},
		{ID: "pro", Name: "Pro", BaseUnits: 3000, BonusUnits: 750, Price: decimal.NewFromInt(129), Currency: "USD"},
	}, nil)

	offers := svc.Packages(model.Region{ID: "PE", Name: "Perú", Currency: "PEN"})

	require.Len(t, offers, 2)
	assert.Equal(t, "starter", offers[0].ID)
	assert.Equal(t, "pro", offers[1].ID)

	count, err := testutil.GatherAndCount(reg, "pricing_invalid_catalog_entries_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPricingService_FindOffer(t *testing.T) {
	svc := newTestPricingService(t, nil)
	mx, _ := svc.resolver.Lookup("MX")

	offer, err := svc.FindOffer(mx, "popular")
	require.NoError(t, err)
	assert.Equal(t, "MXN", offer.Currency)

	_, err = svc.FindOffer(mx, "pro")
	assert.True(t, errors.Is(err, ErrUnknownPackage))
}

func TestPricingService_FindOfferLeavesCountersAlone(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := newTestPricingService(t, metrics.NewMetrics(reg))
	br, _ := svc.resolver.Lookup("BR")

	_, err := svc.FindOffer(br, "popular")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "pricing_catalog_fallbacks_total")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPricingService_Courses(t *testing.T) {
	svc := newTestPricingService(t, nil)

	assert.Len(t, svc.Courses("", ""), 3)
	assert.Len(t, svc.Courses("beginner", ""), 2)
	assert.Len(t, svc.Courses("beginner", "productividad"), 1)
	assert.Empty(t, svc.Courses("advanced", ""))
}
