package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

var ErrInvalidCatalogEntry = errors.New("invalid catalog entry")

// Annotate derives the display fields of a package. Package ids double as
// tags: "popular" marks the popular offer and "pro" the recommended one.
func Annotate(pkg model.PricePackage) (model.AnnotatedOffer, error) {
	total := pkg.BaseUnits + pkg.BonusUnits
	if total <= 0 {
		return model.AnnotatedOffer{}, fmt.Errorf("package %q has %d total credits: %w", pkg.ID, total, ErrInvalidCatalogEntry)
	}

	return model.AnnotatedOffer{
		PricePackage:   pkg,
		TotalUnits:     total,
		UnitPrice:      pkg.Price.Div(decimal.NewFromInt(int64(total))),
		IsPopular:      strings.Contains(pkg.ID, "popular"),
		IsRecommended:  strings.Contains(pkg.ID, "pro"),
		FormattedPrice: FormatPrice(pkg.Price, pkg.Currency),
	}, nil
}

func FormatPrice(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.String(), currency)
}
