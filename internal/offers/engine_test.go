package offers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

var (
	argentina = model.Region{ID: "AR", Name: "Argentina", Currency: "ARS"}
	brazil    = model.Region{ID: "BR", Name: "Brasil", Currency: "BRL"}
	mexico    = model.Region{ID: "MX", Name: "México", Currency: "MXN"}
)

func testOffers() []model.SpecialOffer {
	return []model.SpecialOffer{
		{ID: "cono-sur", Title: "Bono", DiscountPct: decimal.NewFromInt(10), Condition: "region.id in ['AR', 'CL']"},
		{ID: "pix", Title: "PIX", DiscountPct: decimal.NewFromInt(5), Condition: "region.id == 'BR' && locale == 'pt'"},
		{ID: "everyone", Title: "Todos", DiscountPct: decimal.NewFromInt(1), Condition: "true"},
	}
}

func TestEngine_For(t *testing.T) {
	e, err := NewEngine(testOffers())
	require.NoError(t, err)
	assert.Equal(t, 3, e.Len())

	tests := []struct {
		name   string
		region model.Region
		locale string
		want   []string
	}{
		{"argentina", argentina, "es", []string{"cono-sur", "everyone"}},
		{"brazil in portuguese", brazil, "pt", []string{"pix", "everyone"}},
		{"brazil in spanish", brazil, "es", []string{"everyone"}},
		{"mexico", mexico, "es", []string{"everyone"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := e.For(tc.region, tc.locale)
			ids := make([]string, len(got))
			for i, o := range got {
				ids[i] = o.ID
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestEngine_NoOffers(t *testing.T) {
	e, err := NewEngine(nil)
	require.NoError(t, err)

	got := e.For(mexico, "es")
	assert.NotNil(t, got, "an empty list serializes as [] not null")
	assert.Empty(t, got)
}

func TestNewEngine_RejectsBadConditions(t *testing.T) {
	tests := []struct {
		name      string
		condition string
	}{
		{"syntax error", "region.id =="},
		{"unknown variable", "user.id == '1'"},
		{"not a bool", "region.currency"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEngine([]model.SpecialOffer{{ID: "bad", Title: "Bad", Condition: tc.condition}})
			assert.Error(t, err)
		})
	}
}
