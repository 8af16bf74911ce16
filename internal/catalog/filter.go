package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/dealer-finance/internal/domain"
)

// ErrInvalidFilter is returned for an unknown category or price band.
var ErrInvalidFilter = errors.New("invalid filter")

// Price bands offered by the catalog.
const (
	PriceUnder100K  = "0-100000"
	Price100KTo200K = "100000-200000"
	Price200KTo300K = "200000-300000"
	PriceFrom300K   = "300000+"
)

// PriceBands lists the price bands in display order.
var PriceBands = []string{PriceUnder100K, Price100KTo200K, Price200KTo300K, PriceFrom300K}

// Filter narrows a car listing. Zero fields do not filter.
type Filter struct {
	Category  domain.Category
	PriceBand string
	MinPrice  float64
	MaxPrice  float64
	MinYear   int
	MaxYear   int
	Query     string
}

// Validate rejects unknown categories and price bands and inverted ranges.
func (f Filter) Validate() error {
	if f.Category != "" && !f.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidFilter, f.Category)
	}
	if f.PriceBand != "" {
		if _, _, ok := bandBounds(f.PriceBand); !ok {
			return fmt.Errorf("%w: unknown price band %q", ErrInvalidFilter, f.PriceBand)
		}
	}
	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidFilter)
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: minPrice %.2f is above maxPrice %.2f", ErrInvalidFilter, f.MinPrice, f.MaxPrice)
	}
	if f.MaxYear > 0 && f.MinYear > f.MaxYear {
		return fmt.Errorf("%w: minYear %d is above maxYear %d", ErrInvalidFilter, f.MinYear, f.MaxYear)
	}
	return nil
}

// Matches reports whether car passes every set field of f.
func (f Filter) Matches(car domain.Car) bool {
	if f.Category != "" && car.Category != f.Category {
		return false
	}
	if f.PriceBand != "" && !inBand(f.PriceBand, car.Price) {
		return false
	}
	if f.MinPrice > 0 && car.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && car.Price > f.MaxPrice {
		return false
	}
	if f.MinYear > 0 && car.Year < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && car.Year > f.MaxYear {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		text := strings.ToLower(strings.Join([]string{car.Make, car.Model, car.Color, car.Description}, " "))
		if !strings.Contains(text, q) {
			return false
		}
	}
	return true
}

// bandBounds returns the inclusive bounds of a band; a zero max is open.
func bandBounds(band string) (min, max float64, ok bool) {
	switch band {
	case PriceUnder100K:
		return 0, 100000, true
	case Price100KTo200K:
		return 100000, 200000, true
	case Price200KTo300K:
		return 200000, 300000, true
	case PriceFrom300K:
		return 300000, 0, true
	}
	return 0, 0, false
}

// inBand applies a price band. The lowest band excludes its upper bound;
// the others include both ends.
func inBand(band string, price float64) bool {
	min, max, ok := bandBounds(band)
	if !ok {
		return false
	}
	if band == PriceUnder100K {
		return price < max
	}
	if price < min {
		return false
	}
	return max == 0 || price <= max
}
