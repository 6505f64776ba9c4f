package catalog

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"AvisailYachts/internal/i18n"
)

// PriceOnRequest is returned by FormatPrice for yachts without a listed price.
// It is the same in every locale.
const PriceOnRequest = "Price on Request"

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	JPY: "¥",
}

// DisplayName returns the Japanese name for ja when the record has one.
func DisplayName(y Yacht, locale i18n.Locale) string {
	if locale == i18n.Japanese && y.NameJA != "" {
		return y.NameJA
	}
	return y.Name
}

func DisplayDescription(y Yacht, locale i18n.Locale) string {
	if locale == i18n.Japanese && y.DescriptionJA != "" {
		return y.DescriptionJA
	}
	return y.Description
}

// FormatPrice renders the price in its own currency with no decimals and
// en-US digit grouping, e.g. "$1,250,000".
func FormatPrice(y Yacht) string {
	if y.Price == nil {
		return PriceOnRequest
	}
	// Rounded as a float: listed prices have no upper bound.
	amount := number.Decimal(math.Round(*y.Price), number.MaxFractionDigits(0))
	p := message.NewPrinter(language.AmericanEnglish)
	sym, ok := currencySymbols[y.Currency]
	if !ok {
		return p.Sprintf("%s %v", string(y.Currency), amount)
	}
	return sym + p.Sprint(amount)
}

func CategoryLabel(b *i18n.Bundle, c Category, locale i18n.Locale) string {
	return b.T(locale, "yachtType."+string(c), nil)
}

func StatusLabel(b *i18n.Bundle, s Status, locale i18n.Locale) string {
	return b.T(locale, "status."+string(s), nil)
}
