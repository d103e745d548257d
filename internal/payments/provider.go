// Package payments contains offline stand-ins for the card processor and the
// regional payment gateway. They shape checkout sessions and webhook events
// like the real providers but never move money.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

var (
	ErrUnknownProvider  = errors.New("unknown payment provider")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

type CheckoutRequest struct {
	UserID     string
	Email      string
	Region     model.Region
	Offer      model.AnnotatedOffer
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID         string            `json:"id"`
	Provider   string            `json:"provider"`
	URL        string            `json:"url"`
	SandboxURL string            `json:"sandbox_url,omitempty"`
	Status     string            `json:"status"`
	Amount     decimal.Decimal   `json:"amount"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Payment struct {
	ID                string            `json:"id"`
	Provider          string            `json:"provider"`
	Status            string            `json:"status"`
	StatusDetail      string            `json:"status_detail,omitempty"`
	ExternalReference string            `json:"external_reference,omitempty"`
	Metadata          map[string]string `json:"metadata"`
}

type WebhookEvent struct {
	ID       string            `json:"id"`
	Provider string            `json:"provider"`
	Type     string            `json:"type"`
	ObjectID string            `json:"object_id,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Provider interface {
	Name() string
	Supports(region model.Region) bool
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

// Sign returns the hex HMAC-SHA256 of payload, the value providers put in
// their signature header.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// verifySignature accepts everything when no secret is configured.
func verifySignature(secret string, payload []byte, signature string) error {
	if secret == "" {
		return nil
	}
	if signature == "" || !hmac.Equal([]byte(Sign(secret, payload)), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func checkoutMetadata(req CheckoutRequest) map[string]string {
	return map[string]string{
		"user_id":    req.UserID,
		"package_id": req.Offer.ID,
		"region":     req.Region.ID,
		"credits":    strconv.Itoa(req.Offer.BaseUnits),
		"bonus":      strconv.Itoa(req.Offer.BonusUnits),
	}
}

func validateCheckout(req CheckoutRequest) error {
	if req.UserID == "" {
		return errors.New("checkout: user id is required")
	}
	if req.Offer.ID == "" || !req.Offer.Price.IsPositive() {
		return fmt.Errorf("checkout: package %q has no payable price", req.Offer.ID)
	}
	return nil
}
