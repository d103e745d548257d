package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Region struct {
	ID       string `json:"id" validate:"required,len=2,uppercase"`
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
}

// PricePackage is a purchasable bundle of credits. Price is a native amount in
// Currency; it is never converted between currencies.
type PricePackage struct {
	ID         string          `json:"id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	BaseUnits  int             `json:"credits" validate:"gt=0"`
	BonusUnits int             `json:"bonus" validate:"gte=0"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency" validate:"required,len=3,uppercase"`
}

type AnnotatedOffer struct {
	PricePackage
	TotalUnits     int             `json:"total_credits"`
	UnitPrice      decimal.Decimal `json:"price_per_credit"`
	IsPopular      bool            `json:"popular"`
	IsRecommended  bool            `json:"recommended"`
	FormattedPrice string          `json:"formatted_price"`
}

type SpecialOffer struct {
	ID          string          `json:"id" validate:"required"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Condition   string          `json:"condition" validate:"required"`
}

type PaymentMethod struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required,oneof=CARD BANK_TRANSFER CASH WALLET"`
}

type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Slug        string  `json:"slug"`
	Category    string  `json:"category"`
	Level       string  `json:"level"`
	Hours       int     `json:"duration_hours"`
	Credits     int     `json:"price_credits"`
	Rating      float64 `json:"rating"`
	Students    int     `json:"students"`
	Lessons     int     `json:"lessons"`
	Instructor  string  `json:"instructor"`
	Thumbnail   string  `json:"thumbnail_url,omitempty"`
}

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Amount      *int      `json:"amount,omitempty"`
}

type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	Credits           int    `json:"credits"`
	Level             int    `json:"level"`
	Theme             string `json:"theme"`
	Language          string `json:"language"`
	MentorPersonality string `json:"mentor_personality"`
}
