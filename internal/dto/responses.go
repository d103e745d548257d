package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

type RegionSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type SpecialOfferResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DiscountPct decimal.Decimal `json:"discount_percent"`
}

type CountriesResponse struct {
	Region           model.Region           `json:"region"`
	DetectedRegion   string                 `json:"detected_region"`
	DetectionSource  string                 `json:"detection_source"`
	Locale           string                 `json:"locale"`
	Packages         []model.AnnotatedOffer `json:"packages"`
	AvailableRegions []RegionSummary        `json:"available_regions"`
	SpecialOffers    []SpecialOfferResponse `json:"special_offers"`
	PaymentMethods   []model.PaymentMethod  `json:"payment_methods"`
}

type PackagesResponse struct {
	Region          model.Region           `json:"region"`
	DetectionSource string                 `json:"detection_source"`
	Packages        []model.AnnotatedOffer `json:"packages"`
}

type RegionsResponse struct {
	Default string          `json:"default"`
	Regions []RegionSummary `json:"regions"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      model.User `json:"user"`
}

type CheckoutResponse struct {
	Provider   string               `json:"provider"`
	SessionID  string               `json:"session_id"`
	URL        string               `json:"url"`
	SandboxURL string               `json:"sandbox_url,omitempty"`
	Status     string               `json:"status"`
	Amount     decimal.Decimal      `json:"amount"`
	Currency   string               `json:"currency"`
	Package    model.AnnotatedOffer `json:"package"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type ActivityResponse struct {
	Activities []model.Activity `json:"activities"`
	Total      int              `json:"total"`
}

type CoursesResponse struct {
	Courses []model.Course `json:"courses"`
	Total   int            `json:"total"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func NewRegionSummaries(regions []model.Region) []RegionSummary {
	out := make([]RegionSummary, len(regions))
	for i, r := range regions {
		out[i] = RegionSummary{Code: r.ID, Name: r.Name, Currency: r.Currency}
	}
	return out
}

func NewSpecialOffers(offers []model.SpecialOffer) []SpecialOfferResponse {
	out := make([]SpecialOfferResponse, len(offers))
	for i, o := range offers {
		out[i] = SpecialOfferResponse{
			ID:          o.ID,
			Title:       o.Title,
			Description: o.Description,
			DiscountPct: o.DiscountPct,
		}
	}
	return out
}
