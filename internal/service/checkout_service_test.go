package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/model"
	"github.com/anyulbade/aiclases-pricing/internal/payments"
)

var demoUser = &model.User{ID: "1", Email: "demo@aiclases.com"}

func newTestCheckoutService(t *testing.T) *CheckoutService {
	t.Helper()
	registry := payments.NewRegistry(
		payments.NewMercadoPagoProvider("", []string{"MX", "BR", "CO"}),
		payments.NewStripeProvider(""),
	)
	return NewCheckoutService(newTestPricingService(t, nil), registry, nil, "http://localhost:3000/dashboard")
}

func TestCheckoutService_PicksProviderByRegion(t *testing.T) {
	svc := newTestCheckoutService(t)

	res, err := svc.CreateCheckout(context.Background(), demoUser,
		&dto.CheckoutRequest{PackageID: "pro", Country: "CO"}, Signals{})
	require.NoError(t, err)
	assert.Equal(t, "mercadopago", res.Session.Provider)
	assert.Equal(t, "COP", res.Session.Currency)
	assert.True(t, decimal.NewFromInt(519000).Equal(res.Session.Amount))
	assert.Equal(t, 3750, res.Offer.TotalUnits)
	assert.Equal(t, "CO", res.Session.Metadata["region"])

	res, err = svc.CreateCheckout(context.Background(), demoUser,
		&dto.CheckoutRequest{PackageID: "starter", Country: "PE"}, Signals{})
	require.NoError(t, err)
	assert.Equal(t, "stripe", res.Session.Provider)
	assert.Equal(t, "PEN", res.Session.Currency)
}

func TestCheckoutService_DetectsRegionWithoutCountry(t *testing.T) {
	svc := newTestCheckoutService(t)

	res, err := svc.CreateCheckout(context.Background(), demoUser,
		&dto.CheckoutRequest{PackageID: "popular"}, Signals{AcceptLanguage: "es-CL"})
	require.NoError(t, err)
	assert.Equal(t, "CLP", res.Session.Currency)
	assert.Equal(t, "stripe", res.Session.Provider)
}

func TestCheckoutService_ExplicitProvider(t *testing.T) {
	svc := newTestCheckoutService(t)

	res, err := svc.CreateCheckout(context.Background(), demoUser,
		&dto.CheckoutRequest{PackageID: "popular", Country: "MX", Provider: "stripe"}, Signals{})
	require.NoError(t, err)
	assert.Equal(t, "stripe", res.Session.Provider)

	_, err = svc.CreateCheckout(context.Background(), demoUser,
		&dto.CheckoutRequest{PackageID: "popular", Country: "PE", Provider: "mercadopago"}, Signals{})
	field, _, ok := ValidationField(err)
	require.True(t, ok)
	assert.Equal(t, "provider", field)
}

func TestCheckoutService_Errors(t *testing.T) {
	svc := newTestCheckoutService(t)
	ctx := context.Background()

	_, err := svc.CreateCheckout(ctx, nil, &dto.CheckoutRequest{PackageID: "starter"}, Signals{})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	_, err = svc.CreateCheckout(ctx, demoUser, &dto.CheckoutRequest{PackageID: "starter", Country: "ZZ"}, Signals{})
	field, _, ok := ValidationField(err)
	require.True(t, ok)
	assert.Equal(t, "country", field)

	_, err = svc.CreateCheckout(ctx, demoUser, &dto.CheckoutRequest{PackageID: "pro", Country: "MX"}, Signals{})
	assert.True(t, errors.Is(err, ErrUnknownPackage))

	_, err = svc.CreateCheckout(ctx, demoUser, &dto.CheckoutRequest{PackageID: "starter", Provider: "paypal"}, Signals{})
	assert.True(t, errors.Is(err, payments.ErrUnknownProvider))
}

func TestCheckoutService_RedirectURL(t *testing.T) {
	svc := newTestCheckoutService(t)
	assert.Equal(t, "http://localhost:3000/dashboard?payment=success", svc.redirectURL("success"))

	svc.returnURL = "https://aiclases.com/app?tab=credits"
	assert.Equal(t, "https://aiclases.com/app?payment=cancelled&tab=credits", svc.redirectURL("cancelled"))
}
