package pricing

import "golang.org/x/text/language"

const DefaultLocale = "es"

var (
	supportedLocales = []string{"es", "en", "pt"}
	localeMatcher    = language.NewMatcher([]language.Tag{
		language.Spanish,
		language.English,
		language.Portuguese,
	})
)

// MatchLocale picks the UI locale for an Accept-Language header.
func MatchLocale(acceptLanguage string) string {
	tags := acceptLanguageTags(acceptLanguage)
	if len(tags) == 0 {
		return DefaultLocale
	}

	_, index, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return supportedLocales[index]
}
