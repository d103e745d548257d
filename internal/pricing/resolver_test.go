package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

var testRegions = []model.Region{
	{ID: "AR", Name: "Argentina", Currency: "ARS"},
	{ID: "BR", Name: "Brasil", Currency: "BRL"},
	{ID: "MX", Name: "México", Currency: "MXN"},
	{ID: "CO", Name: "Colombia", Currency: "COP"},
	{ID: "CL", Name: "Chile", Currency: "CLP"},
	{ID: "PE", Name: "Perú", Currency: "PEN"},
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(testRegions, "MX")
	require.NoError(t, err)
	return r
}

func TestNewResolver(t *testing.T) {
	t.Run("no regions", func(t *testing.T) {
		_, err := NewResolver(nil, "MX")
		assert.Error(t, err)
	})

	t.Run("unknown default", func(t *testing.T) {
		_, err := NewResolver(testRegions, "US")
		assert.Error(t, err)
	})

	t.Run("default is normalized", func(t *testing.T) {
		r, err := NewResolver(testRegions, " co ")
		require.NoError(t, err)
		assert.Equal(t, "CO", r.Default().ID)
	})
}

func TestResolver_ExplicitRegionWins(t *testing.T) {
	r := newTestResolver(t)

	for _, region := range testRegions {
		t.Run(region.ID, func(t *testing.T) {
			assert.Equal(t, region, r.Resolve(region.ID, "pt-BR,pt;q=0.9", "Mozilla/5.0 (Linux; U; Android 4.0.3; es-co)"))
			assert.Equal(t, region, r.Resolve(region.ID, "", ""))
		})
	}

	t.Run("explicit id is case-insensitive", func(t *testing.T) {
		res := r.ResolveWithSource(" pe ", "", "")
		assert.Equal(t, "PE", res.Region.ID)
		assert.Equal(t, SourceExplicit, res.Source)
	})

	t.Run("unknown explicit id falls through to detection", func(t *testing.T) {
		res := r.ResolveWithSource("US", "es-AR", "")
		assert.Equal(t, "AR", res.Region.ID)
		assert.Equal(t, SourceAcceptLanguage, res.Source)
	})
}

func TestResolver_DefaultRegion(t *testing.T) {
	r := newTestResolver(t)

	for i := 0; i < 3; i++ {
		res := r.ResolveWithSource("", "", "")
		assert.Equal(t, "MX", res.Region.ID)
		assert.Equal(t, SourceDefault, res.Source)
	}
}

func TestResolver_Detect(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name           string
		acceptLanguage string
		userAgent      string
		wantRegion     string
		wantSource     Source
	}{
		{"explicit region subtag", "es-CO,es;q=0.9,en;q=0.8", "", "CO", SourceAcceptLanguage},
		{"q order respected", "en-US;q=0.5,es-CL;q=0.9", "", "CL", SourceAcceptLanguage},
		{"unsupported region skipped", "en-US,es-PE;q=0.7", "", "PE", SourceAcceptLanguage},
		{"region inferred from language", "pt", "", "BR", SourceAcceptLanguage},
		{"explicit subtag beats inference", "pt,es-AR;q=0.8", "", "AR", SourceAcceptLanguage},
		{"spanish alone is not a supported region", "es", "", "MX", SourceDefault},
		{"malformed header", "!!!;;q=abc", "", "MX", SourceDefault},
		{"one bad entry", "pt-BR,en-US-x-@@;q=0.5", "", "BR", SourceAcceptLanguage},
		{"bad entry with higher q skipped", "xx_yyyyyyyyyyy;q=0.9, es-CL;q=0.4", "", "CL", SourceAcceptLanguage},
		{"every entry bad", "pt-BR;q=abc", "", "MX", SourceDefault},
		{"user agent locale token", "en", "Mozilla/5.0 (Linux; U; Android 4.0.3; es-co; GT-I9100)", "CO", SourceUserAgent},
		{"user agent underscore token", "", "SomeApp/2.1 (iPhone; pt_BR)", "BR", SourceUserAgent},
		{"user agent without locale", "", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", "MX", SourceDefault},
		{"accept-language beats user agent", "es-PE", "Android; es-co", "PE", SourceAcceptLanguage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := r.Detect(tc.acceptLanguage, tc.userAgent)
			assert.Equal(t, tc.wantRegion, res.Region.ID)
			assert.Equal(t, tc.wantSource, res.Source)
		})
	}
}

func TestResolver_Lookup(t *testing.T) {
	r := newTestResolver(t)

	region, ok := r.Lookup("br")
	assert.True(t, ok)
	assert.Equal(t, "BRL", region.Currency)

	_, ok = r.Lookup("")
	assert.False(t, ok)
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "es"},
		{"en-US,en;q=0.9", "en"},
		{"pt-BR", "pt"},
		{"es-MX", "es"},
		{"fr-FR", "es"},
		{"fr-FR,en;q=0.5", "en"},
	}

	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchLocale(tc.header))
		})
	}
}
