package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         UUID        NOT NULL,
	body       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
)`

// ConnectPostgres initializes a connection pool and makes sure the documents
// table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is not set")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, documentsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to create documents table: %w", err)
	}
	return pool, nil
}

// Postgres stores a collection as rows of the shared documents table.
type Postgres[T Entity] struct {
	db         *pgxpool.Pool
	collection string
}

// NewPostgres creates a repository for the named collection.
func NewPostgres[T Entity](db *pgxpool.Pool, collection string) *Postgres[T] {
	return &Postgres[T]{db: db, collection: collection}
}

// List returns every stored entity, oldest first.
func (p *Postgres[T]) List(ctx context.Context) ([]T, error) {
	query := `SELECT body FROM documents WHERE collection = $1 ORDER BY created_at, id`
	rows, err := p.db.Query(ctx, query, p.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.collection, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", p.collection, err)
		}
		var item T
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", p.collection, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.collection, err)
	}
	return items, nil
}

// Get returns the entity stored under id.
func (p *Postgres[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var item T
	var body []byte
	query := `SELECT body FROM documents WHERE collection = $1 AND id = $2`
	err := p.db.QueryRow(ctx, query, p.collection, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return item, ErrNotFound
	}
	if err != nil {
		return item, fmt.Errorf("failed to get %s/%s: %w", p.collection, id, err)
	}
	if err := json.Unmarshal(body, &item); err != nil {
		return item, fmt.Errorf("failed to decode %s/%s: %w", p.collection, id, err)
	}
	return item, nil
}

// Save inserts or replaces an entity.
func (p *Postgres[T]) Save(ctx context.Context, entity T) error {
	body, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry: %w", p.collection, err)
	}
	query := `
		INSERT INTO documents (collection, id, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET body = EXCLUDED.body
	`
	if _, err := p.db.Exec(ctx, query, p.collection, entity.EntityID(), body); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", p.collection, entity.EntityID(), err)
	}
	return nil
}

// Delete removes an entity.
func (p *Postgres[T]) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, p.collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", p.collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
