package i18n

import "golang.org/x/text/language"

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Japanese,
	language.Arabic,
})

// Resolve picks the best supported locale for an Accept-Language header,
// honouring q-values. Anything unmatched resolves to DefaultLocale.
func Resolve(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Locales) {
		return DefaultLocale
	}
	return Locales[idx]
}
