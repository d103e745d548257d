package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/aiclases-pricing/internal/metrics"
	"github.com/anyulbade/aiclases-pricing/internal/payments"
)

// Event types that confirm a purchase.
var completedEvents = map[string]bool{
	"checkout.session.completed": true,
	"payment":                    true,
}

type WebhookService struct {
	providers *payments.Registry
	activity  *ActivityService
	metrics   *metrics.Metrics
}

func NewWebhookService(providers *payments.Registry, activity *ActivityService, m *metrics.Metrics) *WebhookService {
	return &WebhookService{providers: providers, activity: activity, metrics: m}
}

// Handle verifies and decodes a provider notification. Completed purchases
// are recorded in the activity feed; other event types are acknowledged.
func (s *WebhookService) Handle(ctx context.Context, providerName string, payload []byte, signature string) (*payments.WebhookEvent, error) {
	provider, err := s.providers.Get(providerName)
	if err != nil {
		return nil, err
	}

	evt, err := provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		s.metrics.RecordWebhook(providerName, "rejected")
		log.Warn().Err(err).Str("provider", providerName).Msg("webhook rejected")
		return nil, err
	}

	if !completedEvents[evt.Type] {
		s.metrics.RecordWebhook(providerName, "ignored")
		log.Info().Str("provider", providerName).Str("type", evt.Type).Msg("webhook ignored")
		return evt, nil
	}

	s.metrics.RecordWebhook(providerName, "completed")
	var amount *int
	if credits, err := strconv.Atoi(evt.Metadata["credits"]); err == nil {
		amount = &credits
	}
	s.activity.Record(ActivityPayment, evt.Metadata["user_id"],
		"Compró paquete de créditos "+evt.Metadata["package_id"], amount)

	log.Info().
		Str("provider", providerName).
		Str("event", evt.ID).
		Str("user_id", evt.Metadata["user_id"]).
		Str("package", evt.Metadata["package_id"]).
		Msg("credits purchase confirmed")
	return evt, nil
}
