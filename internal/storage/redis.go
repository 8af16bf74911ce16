package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis stores a collection as one hash; each field is an entity ID and each
// value its JSON document.
type Redis[T Entity] struct {
	client *redis.Client
	key    string
}

// NewRedis creates a repository for the named collection.
func NewRedis[T Entity](client *redis.Client, keyPrefix, collection string) *Redis[T] {
	return &Redis[T]{client: client, key: keyPrefix + collection}
}

// List returns every stored entity.
func (r *Redis[T]) List(ctx context.Context) ([]T, error) {
	values, err := r.client.HVals(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.key, err)
	}

	items := make([]T, 0, len(values))
	for _, value := range values {
		var item T
		if err := json.Unmarshal([]byte(value), &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s entry: %w", r.key, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns the entity stored under id.
func (r *Redis[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var item T
	value, err := r.client.HGet(ctx, r.key, id.String()).Result()
	if errors.Is(err, redis.Nil) {
		return item, ErrNotFound
	}
	if err != nil {
		return item, fmt.Errorf("failed to get %s/%s: %w", r.key, id, err)
	}
	if err := json.Unmarshal([]byte(value), &item); err != nil {
		return item, fmt.Errorf("failed to decode %s/%s: %w", r.key, id, err)
	}
	return item, nil
}

// Save inserts or replaces an entity.
func (r *Redis[T]) Save(ctx context.Context, entity T) error {
	body, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry: %w", r.key, err)
	}
	if err := r.client.HSet(ctx, r.key, entity.EntityID().String(), body).Err(); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", r.key, entity.EntityID(), err)
	}
	return nil
}

// Delete removes an entity.
func (r *Redis[T]) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := r.client.HDel(ctx, r.key, id.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", r.key, id, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
