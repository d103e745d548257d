package pricing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/anyulbade/aiclases-pricing/internal/model"
)

type Source string

const (
	SourceExplicit       Source = "explicit"
	SourceAcceptLanguage Source = "accept-language"
	SourceUserAgent      Source = "user-agent"
	SourceDefault        Source = "default"
)

type Resolution struct {
	Region model.Region `json:"region"`
	Source Source       `json:"source"`
}

// Resolver maps client signals to one of the supported regions. It never
// fails: anything it cannot decode resolves to the default region.
type Resolver struct {
	regions  map[string]model.Region
	fallback model.Region
}

func NewResolver(regions []model.Region, defaultID string) (*Resolver, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions configured")
	}

	byID := make(map[string]model.Region, len(regions))
	for _, r := range regions {
		byID[normalizeRegionID(r.ID)] = r
	}

	fallback, ok := byID[normalizeRegionID(defaultID)]
	if !ok {
		return nil, fmt.Errorf("default region %q is not a supported region", defaultID)
	}

	return &Resolver{regions: byID, fallback: fallback}, nil
}

func (r *Resolver) Default() model.Region {
	return r.fallback
}

func (r *Resolver) Lookup(id string) (model.Region, bool) {
	region, ok := r.regions[normalizeRegionID(id)]
	return region, ok
}

func (r *Resolver) Resolve(explicitID, acceptLanguage, userAgent string) model.Region {
	return r.ResolveWithSource(explicitID, acceptLanguage, userAgent).Region
}

func (r *Resolver) ResolveWithSource(explicitID, acceptLanguage, userAgent string) Resolution {
	if region, ok := r.Lookup(explicitID); ok {
		return Resolution{Region: region, Source: SourceExplicit}
	}
	return r.Detect(acceptLanguage, userAgent)
}

// Detect guesses the region from the locale signals only. Accept-Language tags
// with an explicit region subtag are tried first (in q order), then regions
// inferred from the language alone, then locale tokens found in the user agent.
func (r *Resolver) Detect(acceptLanguage, userAgent string) Resolution {
	tags := acceptLanguageTags(acceptLanguage)

	if region, ok := r.firstRegion(tags, true); ok {
		return Resolution{Region: region, Source: SourceAcceptLanguage}
	}
	if region, ok := r.firstRegion(tags, false); ok {
		return Resolution{Region: region, Source: SourceAcceptLanguage}
	}
	if region, ok := r.firstRegion(userAgentTags(userAgent), true); ok {
		return Resolution{Region: region, Source: SourceUserAgent}
	}

	return Resolution{Region: r.fallback, Source: SourceDefault}
}

func (r *Resolver) firstRegion(tags []language.Tag, exactOnly bool) (model.Region, bool) {
	for _, tag := range tags {
		reg, conf := tag.Region()
		if conf == language.No || (exactOnly && conf != language.Exact) {
			continue
		}
		if region, ok := r.regions[reg.String()]; ok {
			return region, true
		}
	}
	return model.Region{}, false
}

func acceptLanguageTags(header string) []language.Tag {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	tags, weights, err := language.ParseAcceptLanguage(header)
	if err != nil {
		tags, weights = parseAcceptLanguageLenient(header)
	}

	out := make([]language.Tag, 0, len(tags))
	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// parseAcceptLanguageLenient parses each entry of header on its own and
// drops the ones that fail, keeping the rest ordered by q-value.
func parseAcceptLanguageLenient(header string) ([]language.Tag, []float32) {
	type weighted struct {
		tag language.Tag
		q   float32
	}

	var entries []weighted
	for _, entry := range strings.Split(header, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		tags, weights, err := language.ParseAcceptLanguage(entry)
		if err != nil || len(tags) == 0 {
			continue
		}
		entries = append(entries, weighted{tag: tags[0], q: weights[0]})
	}

	slices.SortStableFunc(entries, func(a, b weighted) int {
		switch {
		case a.q > b.q:
			return -1
		case a.q < b.q:
			return 1
		}
		return 0
	})

	tags := make([]language.Tag, len(entries))
	weights := make([]float32, len(entries))
	for i, e := range entries {
		tags[i], weights[i] = e.tag, e.q
	}
	return tags, weights
}

// userAgentTags extracts locale tokens such as "es-MX" or "pt_BR" that some
// mobile browsers embed in their user agent.
func userAgentTags(ua string) []language.Tag {
	fields := strings.FieldsFunc(ua, func(r rune) bool {
		return !(unicode.IsLetter(r) || r == '-' || r == '_')
	})

	var tags []language.Tag
	for _, f := range fields {
		if len(f) != 5 || (f[2] != '-' && f[2] != '_') {
			continue
		}
		if !isASCIILetters(f[:2]) || !isASCIILetters(f[3:]) {
			continue
		}
		tag, err := language.Parse(strings.Replace(f, "_", "-", 1))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func isASCIILetters(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func normalizeRegionID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
