package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newSeededService(t *testing.T) *Service {
	t.Helper()
	s := NewService(storage.NewMemory[domain.Car](), nil)
	s.now = func() time.Time { return fixedNow }
	added, err := s.Seed(context.Background(), DefaultInventory())
	require.NoError(t, err)
	require.Equal(t, len(DefaultInventory()), added)
	return s
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := newSeededService(t)

	added, err := s.Seed(context.Background(), DefaultInventory())
	require.NoError(t, err)
	assert.Zero(t, added)

	cars, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, cars, 19)
	for _, car := range cars {
		assert.NotEqual(t, uuid.Nil, car.ID)
		assert.Equal(t, fixedNow, car.CreatedAt)
	}
}

func TestListSortedByPriceThenName(t *testing.T) {
	s := newSeededService(t)

	cars, err := s.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cars)

	assert.Equal(t, "Expedition", cars[0].Model)
	for i := 1; i < len(cars); i++ {
		assert.LessOrEqual(t, cars[i-1].Price, cars[i].Price)
	}

	last := cars[len(cars)-2:]
	assert.Equal(t, "Audi", last[0].Make)
	assert.Equal(t, "Chevrolet", last[1].Make)
}

func TestFilter(t *testing.T) {
	s := newSeededService(t)

	tests := []struct {
		name     string
		filter   Filter
		expected int
	}{
		{"No filter", Filter{}, 19},
		{"Category", Filter{Category: domain.CategorySport}, 5},
		{"Lowest band excludes its bound", Filter{PriceBand: PriceUnder100K}, 1},
		{"Empty band", Filter{PriceBand: Price100KTo200K}, 0},
		{"Upper band", Filter{PriceBand: Price200KTo300K}, 18},
		{"Open band", Filter{PriceBand: PriceFrom300K}, 0},
		{"Explicit price range", Filter{MinPrice: 260000, MaxPrice: 280000}, 7},
		{"Year range", Filter{MinYear: 2020, MaxYear: 2020}, 5},
		{"Search is case insensitive", Filter{Query: "WHITE"}, 4},
		{"Search covers description", Filter{Query: "classic"}, 6},
		{"Combined", Filter{Category: domain.CategoryFamily, MaxPrice: 255000}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cars, err := s.Filter(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, cars, tt.expected)
		})
	}
}

func TestFilterValidate(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{"Unknown category", Filter{Category: "truck"}},
		{"Unknown band", Filter{PriceBand: "cheap"}},
		{"Negative price", Filter{MinPrice: -1}},
		{"Inverted prices", Filter{MinPrice: 5, MaxPrice: 1}},
		{"Inverted years", Filter{MinYear: 2021, MaxYear: 2019}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			assert.True(t, errors.Is(err, ErrInvalidFilter), "got %v", err)
		})
	}
}

func TestInBandBoundaries(t *testing.T) {
	assert.False(t, inBand(PriceUnder100K, 100000))
	assert.True(t, inBand(Price100KTo200K, 100000))
	assert.True(t, inBand(Price100KTo200K, 200000))
	assert.True(t, inBand(Price200KTo300K, 200000))
	assert.True(t, inBand(PriceFrom300K, 300000))
	assert.False(t, inBand("nope", 1))
}

func TestAddUpdateRemove(t *testing.T) {
	ctx := context.Background()
	s := NewService(storage.NewMemory[domain.Car](), nil)
	s.now = func() time.Time { return fixedNow }

	car := domain.Car{
		Make:         " Toyota ",
		Model:        "Land Cruiser",
		Year:         2022,
		Price:        185000,
		Color:        "White",
		Mileage:      15000,
		FuelType:     "Petrol",
		Transmission: "Automatic",
		Category:     domain.CategoryCustom,
	}

	added, err := s.Add(ctx, car)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, added.ID)
	assert.Equal(t, "Toyota", added.Make)
	assert.Equal(t, fixedNow, added.CreatedAt)

	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }
	added.Price = 179000
	added.CreatedAt = time.Time{}
	updated, err := s.Update(ctx, added.ID, added)
	require.NoError(t, err)
	assert.Equal(t, 179000.0, updated.Price)
	assert.Equal(t, fixedNow, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)

	got, err := s.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, s.Remove(ctx, added.ID))
	_, err = s.Get(ctx, added.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Remove(ctx, added.ID), ErrNotFound))
}

func TestAddRejectsInvalidCar(t *testing.T) {
	s := NewService(storage.NewMemory[domain.Car](), nil)
	s.now = func() time.Time { return fixedNow }

	_, err := s.Add(context.Background(), domain.Car{Make: "Dodge", Year: 1970})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	cars, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestUpdateUnknownCar(t *testing.T) {
	s := NewService(storage.NewMemory[domain.Car](), nil)
	_, err := s.Update(context.Background(), uuid.New(), domain.Car{})
	assert.True(t, errors.Is(err, ErrNotFound))
}
