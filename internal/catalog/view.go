package catalog

import "AvisailYachts/internal/i18n"

// View is a yacht record with its locale-specific display strings.
type View struct {
	Yacht

	DisplayName        string `json:"display_name"`
	DisplayDescription string `json:"display_description"`
	DescriptionHTML    string `json:"description_html"`
	PriceLabel         string `json:"price_label"`
	CategoryLabel      string `json:"category_label"`
	StatusLabel        string `json:"status_label"`
	Favorite           bool   `json:"favorite"`
}

func NewView(y Yacht, b *i18n.Bundle, locale i18n.Locale, favorite bool) View {
	return View{
		Yacht:              y,
		DisplayName:        DisplayName(y, locale),
		DisplayDescription: DisplayDescription(y, locale),
		DescriptionHTML:    DescriptionHTML(y, locale),
		PriceLabel:         FormatPrice(y),
		CategoryLabel:      CategoryLabel(b, y.Category, locale),
		StatusLabel:        StatusLabel(b, y.Status, locale),
		Favorite:           favorite,
	}
}

// NewViews marks every yacht whose id is in favorites.
func NewViews(ys []Yacht, b *i18n.Bundle, locale i18n.Locale, favorites []string) []View {
	fav := make(map[string]struct{}, len(favorites))
	for _, id := range favorites {
		fav[id] = struct{}{}
	}
	out := make([]View, 0, len(ys))
	for _, y := range ys {
		_, ok := fav[y.ID]
		out = append(out, NewView(y, b, locale, ok))
	}
	return out
}
