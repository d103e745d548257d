package service

import (
	"bytes"
	"html/template"
	"time"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

type DashboardService struct {
	pricing  *PricingService
	activity *ActivityService
	tmpl     *template.Template
	now      func() time.Time
}

// NewDashboardService parses the HTML view up front so a broken template
// fails at startup.
func NewDashboardService(pricingSvc *PricingService, activity *ActivityService, htmlTemplate string) (*DashboardService, error) {
	funcMap := template.FuncMap{
		"activityLabel": activityLabel,
		"deref":         func(v *int) int { return *v },
	}

	tmpl, err := template.New("dashboard").Funcs(funcMap).Parse(htmlTemplate)
	if err != nil {
		return nil, err
	}

	return &DashboardService{pricing: pricingSvc, activity: activity, tmpl: tmpl, now: time.Now}, nil
}

type DashboardTotals struct {
	Regions       int `json:"regions"`
	Courses       int `json:"courses"`
	Students      int `json:"students"`
	SpecialOffers int `json:"special_offers"`
}

type RegionPricing struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Regional bool   `json:"regional"`
	Packages int    `json:"packages"`
	From     string `json:"from"`
}

type DashboardData struct {
	GeneratedAt string           `json:"generated_at"`
	Totals      DashboardTotals  `json:"totals"`
	Regions     []RegionPricing  `json:"regions"`
	Activity    []model.Activity `json:"recent_activity"`
}

func (s *DashboardService) Build(activityLimit int) *DashboardData {
	regions := s.pricing.Regions()
	courses := s.pricing.Courses("", "")

	students := 0
	for _, c := range courses {
		students += c.Students
	}

	rows := make([]RegionPricing, len(regions))
	for i, r := range regions {
		offers, _ := s.pricing.annotated(r)
		rows[i] = RegionPricing{
			Code:     r.ID,
			Name:     r.Name,
			Currency: r.Currency,
			Regional: s.pricing.selector.HasCatalog(r.ID),
			Packages: len(offers),
			From:     cheapest(offers),
		}
	}

	return &DashboardData{
		GeneratedAt: s.now().UTC().Format("2006-01-02 15:04:05 MST"),
		Totals: DashboardTotals{
			Regions:       len(regions),
			Courses:       len(courses),
			Students:      students,
			SpecialOffers: s.pricing.offers.Len(),
		},
		Regions:  rows,
		Activity: s.activity.List("", activityLimit),
	}
}

func (s *DashboardService) RenderHTML(data *DashboardData) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func cheapest(offers []model.AnnotatedOffer) string {
	if len(offers) == 0 {
		return "-"
	}
	low := offers[0]
	for _, o := range offers[1:] {
		if o.Price.LessThan(low.Price) {
			low = o
		}
	}
	return low.FormattedPrice
}

func activityLabel(activityType string) string {
	switch activityType {
	case ActivityRegistration:
		return "registro"
	case ActivityEnrollment:
		return "inscripción"
	case ActivityPayment:
		return "pago"
	case ActivityCompletion:
		return "curso completado"
	}
	return activityType
}
