package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func validCar() Car {
	return Car{
		Make:         "Toyota",
		Model:        "Land Cruiser",
		Year:         2022,
		Price:        185000,
		Color:        "White",
		Mileage:      15000,
		FuelType:     "Petrol",
		Transmission: "Automatic",
		Category:     CategoryFamily,
	}
}

func TestCarValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Car)
		problems int
	}{
		{"Valid car", func(c *Car) {}, 0},
		{"Missing make", func(c *Car) { c.Make = " " }, 1},
		{"Unknown category", func(c *Car) { c.Category = "truck" }, 1},
		{"Year too old", func(c *Car) { c.Year = 1989 }, 1},
		{"Year in the future", func(c *Car) { c.Year = 2027 }, 1},
		{"Zero price", func(c *Car) { c.Price = 0 }, 1},
		{"Negative mileage", func(c *Car) { c.Mileage = -1 }, 1},
		{"Several problems", func(c *Car) { c.Color = ""; c.FuelType = ""; c.Price = -5 }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := validCar()
			tt.mutate(&car)
			err := car.Validate(now)
			if tt.problems == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, "car", validationErr.Entity)
			assert.Len(t, validationErr.Problems, tt.problems)
		})
	}
}

func TestFinanceRuleValidate(t *testing.T) {
	rule := FinanceRule{
		Name:                  "Luxury",
		CarType:               CategoryLuxury,
		InterestRate:          4.5,
		MaxPeriodYears:        5,
		MinDownPaymentPercent: 25,
		Status:                RuleActive,
	}
	assert.NoError(t, rule.Validate())

	terms := rule.Terms()
	assert.Equal(t, 4.5, terms.InterestRate)
	assert.Equal(t, 5, terms.MaxPeriodYears)
	assert.Equal(t, 25.0, terms.MinDownPaymentPercent)

	rule.MaxPeriodYears = 0
	rule.MinDownPaymentPercent = 120
	rule.Status = "paused"
	err := rule.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Problems, 3)
}

func TestTraderDealValidate(t *testing.T) {
	deal := TraderDeal{
		TraderName:      "Trader",
		CarType:         CategorySport,
		FinancingAmount: 220000,
		DownPayment:     44000,
		MonthlyPayment:  4200,
		Status:          DealCompleted,
	}
	assert.NoError(t, deal.Validate())

	deal.TraderName = ""
	deal.Status = "open"
	err := deal.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "traderName is required")
	assert.Contains(t, err.Error(), "status must be")
	assert.Contains(t, err.Error(), "defaulted")
}

func TestTraderDealValidateStatuses(t *testing.T) {
	for _, status := range []DealStatus{DealActive, DealCompleted, DealCancelled, DealDefaulted} {
		t.Run(string(status), func(t *testing.T) {
			deal := TraderDeal{TraderName: "Trader", CarType: CategoryLuxury, FinancingAmount: 1000, Status: status}
			assert.NoError(t, deal.Validate())
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, Category("").Valid())
}
