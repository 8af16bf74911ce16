package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/pkg/constants"
)

// Category groups cars in the catalog and keys finance rules and deals.
type Category string

const (
	CategoryLuxury  Category = "luxury"
	CategoryClassic Category = "classic"
	CategorySport   Category = "sport"
	CategoryFamily  Category = "family"
	CategoryCustom  Category = "custom"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryLuxury, CategoryClassic, CategorySport, CategoryFamily, CategoryCustom}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Car is a vehicle listed in the catalog.
type Car struct {
	ID           uuid.UUID `json:"id"`
	Make         string    `json:"make" yaml:"make"`
	Model        string    `json:"model" yaml:"model"`
	Year         int       `json:"year" yaml:"year"`
	Price        float64   `json:"price" yaml:"price"`
	Color        string    `json:"color" yaml:"color"`
	Mileage      int       `json:"mileage" yaml:"mileage"`
	FuelType     string    `json:"fuelType" yaml:"fuelType"`
	Transmission string    `json:"transmission" yaml:"transmission"`
	Category     Category  `json:"category" yaml:"category"`
	EngineSize   string    `json:"engineSize,omitempty" yaml:"engineSize"`
	Description  string    `json:"description,omitempty" yaml:"description"`
	ImageURLs    []string  `json:"imageUrls,omitempty" yaml:"imageUrls"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// EntityID returns the car's identifier.
func (c Car) EntityID() uuid.UUID {
	return c.ID
}

// Validate checks the fields required to list a car. Model years run from
// 1990 up to the year of now.
func (c Car) Validate(now time.Time) error {
	p := problems{entity: "car"}
	p.required("make", c.Make)
	p.required("model", c.Model)
	p.required("color", c.Color)
	p.required("fuelType", c.FuelType)
	p.required("transmission", c.Transmission)
	if !c.Category.Valid() {
		p.addf("category %q is not one of %v", c.Category, Categories)
	}
	if c.Year < constants.MinCarYear || c.Year > now.Year() {
		p.addf("year must be between %d and %d", constants.MinCarYear, now.Year())
	}
	if c.Price <= 0 {
		p.addf("price must be greater than zero")
	}
	if c.Mileage < 0 {
		p.addf("mileage must not be negative")
	}
	return p.err()
}
