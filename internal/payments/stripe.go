package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

const defaultStripeCheckoutURL = "https://checkout.stripe.com/c/pay"

// StripeProvider mimics the card processor's checkout sessions. It accepts
// every region.
type StripeProvider struct {
	WebhookSecret string
	CheckoutURL   string

	now func() time.Time
}

func NewStripeProvider(webhookSecret string) *StripeProvider {
	return &StripeProvider{
		WebhookSecret: webhookSecret,
		CheckoutURL:   defaultStripeCheckoutURL,
		now:           time.Now,
	}
}

func (p *StripeProvider) Name() string { return "stripe" }

func (p *StripeProvider) Supports(model.Region) bool { return true }

func (p *StripeProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	id := "cs_" + uuid.NewString()
	return &CheckoutSession{
		ID:        id,
		Provider:  p.Name(),
		URL:       fmt.Sprintf("%s/%s", p.CheckoutURL, id),
		Status:    "unpaid",
		Amount:    req.Offer.Price,
		Currency:  req.Offer.Currency,
		Metadata:  checkoutMetadata(req),
		CreatedAt: p.now().UTC(),
	}, nil
}

func (p *StripeProvider) GetPayment(ctx context.Context, id string) (*Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Payment{
		ID:       id,
		Provider: p.Name(),
		Status:   "paid",
		Metadata: map[string]string{},
	}, nil
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

func (p *StripeProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	if err := verifySignature(p.WebhookSecret, payload, signature); err != nil {
		return nil, err
	}

	var evt stripeEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if evt.ID == "" || evt.Type == "" {
		return nil, fmt.Errorf("%w: missing id or type", ErrMalformedEvent)
	}

	return &WebhookEvent{
		ID:       evt.ID,
		Provider: p.Name(),
		Type:     evt.Type,
		ObjectID: evt.Data.Object.ID,
		Metadata: evt.Data.Object.Metadata,
	}, nil
}
