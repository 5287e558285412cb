// Package sitesettings stores singleton content blocks (hero banner, homepage
// sections, contact details) as a key -> jsonb document table, mirroring the
// schemaless blobs the site editor produces.
package sitesettings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("sitesettings: not found")

type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, key string) (*Setting, error) {
	const q = `SELECT key, value, updated_at FROM site_settings WHERE key = $1`
	var s Setting
	if err := r.db.QueryRow(ctx, q, key).Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Upsert(ctx context.Context, key string, value json.RawMessage) (*Setting, error) {
	const q = `
INSERT INTO site_settings (key, value, updated_at)
VALUES ($1, CAST($2 AS jsonb), NOW())
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = NOW()
RETURNING key, value, updated_at
`
	var s Setting
	if err := r.db.QueryRow(ctx, q, key, string(value)).Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
