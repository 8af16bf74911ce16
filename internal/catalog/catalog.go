// Package catalog manages the dealership's car inventory.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no car has the requested ID.
var ErrNotFound = errors.New("car not found")

// Service lists, filters and edits cars held in a repository.
type Service struct {
	repo   storage.Repository[domain.Car]
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a catalog service over repo.
func NewService(repo storage.Repository[domain.Car], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// List returns every car sorted by price, then make and model.
func (s *Service) List(ctx context.Context) ([]domain.Car, error) {
	return s.Filter(ctx, Filter{})
}

// Filter returns the cars matching f sorted by price, then make and model.
func (s *Service) Filter(ctx context.Context, f Filter) ([]domain.Car, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	cars, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	matched := make([]domain.Car, 0, len(cars))
	for _, car := range cars {
		if f.Matches(car) {
			matched = append(matched, car)
		}
	}
	sortCars(matched)
	return matched, nil
}

// Get returns a single car.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Car, error) {
	car, err := s.repo.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Car{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return domain.Car{}, fmt.Errorf("failed to get car %s: %w", id, err)
	}
	return car, nil
}

// Add validates car, assigns it an ID and stores it.
func (s *Service) Add(ctx context.Context, car domain.Car) (domain.Car, error) {
	now := s.now()
	car.Make = strings.TrimSpace(car.Make)
	car.Model = strings.TrimSpace(car.Model)
	if err := car.Validate(now); err != nil {
		return domain.Car{}, err
	}

	car.ID = uuid.New()
	car.CreatedAt = now.UTC()
	car.UpdatedAt = time.Time{}
	if err := s.repo.Save(ctx, car); err != nil {
		return domain.Car{}, fmt.Errorf("failed to save car: %w", err)
	}

	s.logger.Info("car added",
		zap.String("op", "catalog.Add"),
		zap.String("id", car.ID.String()),
		zap.String("make", car.Make),
		zap.String("model", car.Model),
	)
	return car, nil
}

// Update replaces the editable fields of an existing car. The ID and
// creation time are preserved.
func (s *Service) Update(ctx context.Context, id uuid.UUID, car domain.Car) (domain.Car, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Car{}, err
	}

	now := s.now()
	if err := car.Validate(now); err != nil {
		return domain.Car{}, err
	}

	car.ID = existing.ID
	car.CreatedAt = existing.CreatedAt
	car.UpdatedAt = now.UTC()
	if err := s.repo.Save(ctx, car); err != nil {
		return domain.Car{}, fmt.Errorf("failed to save car %s: %w", id, err)
	}
	return car, nil
}

// Remove deletes a car.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete car %s: %w", id, err)
	}

	s.logger.Info("car removed",
		zap.String("op", "catalog.Remove"),
		zap.String("id", id.String()),
	)
	return nil
}

// Seed stores cars when the repository is empty and reports how many were
// added. Seeded cars are stored as given, without validation, so that
// vintage stock older than the listing cutoff can be carried.
func (s *Service) Seed(ctx context.Context, cars []domain.Car) (int, error) {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list cars: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	now := s.now().UTC()
	for _, car := range cars {
		if car.ID == uuid.Nil {
			car.ID = uuid.New()
		}
		car.CreatedAt = now
		if err := s.repo.Save(ctx, car); err != nil {
			return 0, fmt.Errorf("failed to seed car %s %s: %w", car.Make, car.Model, err)
		}
	}

	s.logger.Info("catalog seeded",
		zap.String("op", "catalog.Seed"),
		zap.Int("cars", len(cars)),
	)
	return len(cars), nil
}

func sortCars(cars []domain.Car) {
	sort.SliceStable(cars, func(i, j int) bool {
		if cars[i].Price != cars[j].Price {
			return cars[i].Price < cars[j].Price
		}
		if cars[i].Make != cars[j].Make {
			return cars[i].Make < cars[j].Make
		}
		return cars[i].Model < cars[j].Model
	})
}
