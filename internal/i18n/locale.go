package i18n

import "strings"

// Locale is one of the supported display languages.
type Locale string

const (
	English  Locale = "en"
	Japanese Locale = "ja"
	Arabic   Locale = "ar"

	DefaultLocale = English
)

// Locales lists the supported locales; the first entry is the default.
var Locales = []Locale{English, Japanese, Arabic}

var localeNames = map[Locale]string{
	English:  "English",
	Japanese: "日本語",
	Arabic:   "العربية",
}

// ParseLocale accepts a bare code or a tagged form such as "ja-JP".
func ParseLocale(s string) (Locale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i != -1 {
		s = s[:i]
	}
	for _, l := range Locales {
		if string(l) == s {
			return l, true
		}
	}
	return DefaultLocale, false
}

func (l Locale) Valid() bool {
	_, ok := localeNames[l]
	return ok
}

// RTL reports whether text in l is laid out right to left.
func (l Locale) RTL() bool { return l == Arabic }

func (l Locale) Dir() string {
	if l.RTL() {
		return "rtl"
	}
	return "ltr"
}

// Name is the locale's own name for itself.
func (l Locale) Name() string {
	if n, ok := localeNames[l]; ok {
		return n
	}
	return string(l)
}
