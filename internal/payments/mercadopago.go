package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

const (
	defaultMercadoPagoInitPoint    = "https://www.mercadopago.com/checkout/v1/redirect"
	defaultMercadoPagoSandboxPoint = "https://sandbox.mercadopago.com/checkout/v1/redirect"
)

// MercadoPagoProvider mimics the regional gateway's payment preferences. It
// only serves the regions it was built with.
type MercadoPagoProvider struct {
	WebhookSecret string
	InitPoint     string
	SandboxPoint  string

	regions map[string]bool
	now     func() time.Time
}

func NewMercadoPagoProvider(webhookSecret string, regionIDs []string) *MercadoPagoProvider {
	regions := make(map[string]bool, len(regionIDs))
	for _, id := range regionIDs {
		regions[id] = true
	}
	return &MercadoPagoProvider{
		WebhookSecret: webhookSecret,
		InitPoint:     defaultMercadoPagoInitPoint,
		SandboxPoint:  defaultMercadoPagoSandboxPoint,
		regions:       regions,
		now:           time.Now,
	}
}

func (p *MercadoPagoProvider) Name() string { return "mercadopago" }

func (p *MercadoPagoProvider) Supports(region model.Region) bool {
	return p.regions[region.ID]
}

func (p *MercadoPagoProvider) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}
	if !p.Supports(req.Region) {
		return nil, fmt.Errorf("checkout: %s does not operate in %s", p.Name(), req.Region.ID)
	}

	id := uuid.NewString()
	return &CheckoutSession{
		ID:         id,
		Provider:   p.Name(),
		URL:        fmt.Sprintf("%s?pref_id=%s", p.InitPoint, id),
		SandboxURL: fmt.Sprintf("%s?pref_id=%s", p.SandboxPoint, id),
		Status:     "pending",
		Amount:     req.Offer.Price,
		Currency:   req.Offer.Currency,
		Metadata:   checkoutMetadata(req),
		CreatedAt:  p.now().UTC(),
	}, nil
}

func (p *MercadoPagoProvider) GetPayment(ctx context.Context, id string) (*Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Payment{
		ID:                id,
		Provider:          p.Name(),
		Status:            "approved",
		StatusDetail:      "accredited",
		ExternalReference: "demo-user",
		Metadata: map[string]string{
			"user_id":    "demo-user",
			"package_id": "starter",
		},
	}, nil
}

type mercadoPagoNotification struct {
	ID     json.Number `json:"id"`
	Type   string      `json:"type"`
	Action string      `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ParseWebhook decodes a gateway notification. Notifications only carry the
// payment id, so the payment is looked up to fill in the metadata.
func (p *MercadoPagoProvider) ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	if err := verifySignature(p.WebhookSecret, payload, signature); err != nil {
		return nil, err
	}

	var n mercadoPagoNotification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if n.Type == "" || n.Data.ID == "" {
		return nil, fmt.Errorf("%w: missing type or data.id", ErrMalformedEvent)
	}

	evt := &WebhookEvent{
		ID:       n.ID.String(),
		Provider: p.Name(),
		Type:     n.Type,
		ObjectID: n.Data.ID,
	}
	if n.Type == "payment" {
		payment, err := p.GetPayment(ctx, n.Data.ID)
		if err != nil {
			return nil, fmt.Errorf("get payment %s: %w", n.Data.ID, err)
		}
		evt.Metadata = payment.Metadata
	}
	return evt, nil
}
