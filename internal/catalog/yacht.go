package catalog

import (
	"errors"
	"fmt"
)

type Category string

const (
	MotorYacht   Category = "motor_yacht"
	SailingYacht Category = "sailing_yacht"
	Catamaran    Category = "catamaran"
	Superyacht   Category = "superyacht"
	SportFishing Category = "sport_fishing"
	Cruiser      Category = "cruiser"
)

var Categories = []Category{MotorYacht, SailingYacht, Catamaran, Superyacht, SportFishing, Cruiser}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type Status string

const (
	Available  Status = "available"
	UnderOffer Status = "under_offer"
	Sold       Status = "sold"
)

func (s Status) Valid() bool {
	switch s {
	case Available, UnderOffer, Sold:
		return true
	}
	return false
}

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
)

func (c Currency) Valid() bool {
	switch c {
	case USD, EUR, JPY:
		return true
	}
	return false
}

// Yacht is one catalog record. Records are read-only once a store is built.
type Yacht struct {
	ID string `json:"id"`

	Name       string   `json:"name"`
	NameJA     string   `json:"name_ja,omitempty"`
	Category   Category `json:"yacht_type"`
	TypeDetail string   `json:"yacht_type_detail,omitempty"`

	// Price is nil when the price is on request.
	Price    *float64 `json:"price"`
	Currency Currency `json:"price_currency"`

	LengthM      float64 `json:"length_m"`
	LengthFt     float64 `json:"length_ft,omitempty"`
	BeamM        float64 `json:"beam_m,omitempty"`
	DraftM       float64 `json:"draft_m,omitempty"`
	YearBuilt    int     `json:"year_built"`
	Builder      string  `json:"builder,omitempty"`
	Model        string  `json:"model,omitempty"`
	HullMaterial string  `json:"hull_material,omitempty"`

	Cabins       int `json:"cabins,omitempty"`
	Berths       int `json:"berths,omitempty"`
	Heads        int `json:"heads,omitempty"`
	CrewQuarters int `json:"crew_quarters,omitempty"`

	EngineType       string  `json:"engine_type,omitempty"`
	EngineMake       string  `json:"engine_make,omitempty"`
	EngineModel      string  `json:"engine_model,omitempty"`
	EngineHours      int     `json:"engine_hours,omitempty"`
	FuelCapacityL    float64 `json:"fuel_capacity_l,omitempty"`
	WaterCapacityL   float64 `json:"water_capacity_l,omitempty"`
	MaxSpeedKnots    float64 `json:"max_speed_knots,omitempty"`
	CruiseSpeedKnots float64 `json:"cruise_speed_knots,omitempty"`
	RangeNM          float64 `json:"range_nm,omitempty"`

	Location        string `json:"location,omitempty"`
	LocationCountry string `json:"location_country,omitempty"`

	Images    []string `json:"images,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	VideoURL  string   `json:"video_url,omitempty"`

	Highlights []string `json:"highlights,omitempty"`
	Equipment  []string `json:"equipment,omitempty"`

	Description   string `json:"description,omitempty"`
	DescriptionJA string `json:"description_ja,omitempty"`

	Status   Status `json:"status"`
	Featured bool   `json:"featured"`

	// Feed timestamps are kept verbatim; the scraper does not emit a fixed layout.
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (y Yacht) HasPrice() bool { return y.Price != nil }

func (y Yacht) IsAvailable() bool { return y.Status == Available }

// clone copies the slice fields so a returned record never aliases store memory.
func (y Yacht) clone() Yacht {
	if y.Price != nil {
		p := *y.Price
		y.Price = &p
	}
	y.Images = cloneStrings(y.Images)
	y.Highlights = cloneStrings(y.Highlights)
	y.Equipment = cloneStrings(y.Equipment)
	return y
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

var (
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrInvalidYacht = errors.New("invalid yacht")
)

func validate(y Yacht) error {
	var errs []error
	if y.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if !y.Category.Valid() {
		errs = append(errs, fmt.Errorf("unknown yacht_type %q", y.Category))
	}
	if !y.Status.Valid() {
		errs = append(errs, fmt.Errorf("unknown status %q", y.Status))
	}
	if !y.Currency.Valid() {
		errs = append(errs, fmt.Errorf("unknown price_currency %q", y.Currency))
	}
	if y.Price != nil && *y.Price < 0 {
		errs = append(errs, fmt.Errorf("negative price %v", *y.Price))
	}
	if y.LengthM <= 0 {
		errs = append(errs, fmt.Errorf("length_m must be positive, got %v", y.LengthM))
	}
	if y.YearBuilt <= 0 {
		errs = append(errs, fmt.Errorf("year_built must be positive, got %d", y.YearBuilt))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidYacht, y.ID, errors.Join(errs...))
}
