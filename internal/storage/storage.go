// Package storage persists dealership entities as JSON documents behind a
// generic repository. The back end (memory, redis or postgres) is chosen by
// configuration and injected into the services.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no entity exists for an ID.
var ErrNotFound = errors.New("not found")

// Entity is anything with a stable identifier.
type Entity interface {
	EntityID() uuid.UUID
}

// Repository stores one collection of entities.
type Repository[T Entity] interface {
	// List returns every entity in the collection.
	List(ctx context.Context) ([]T, error)

	// Get returns the entity with the given ID or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (T, error)

	// Save inserts the entity or replaces the stored one with the same ID.
	Save(ctx context.Context, entity T) error

	// Delete removes the entity with the given ID or returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
