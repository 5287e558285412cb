package zone

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("zone: not found")

// Zone is a service area shown on the storefront ("Lyon", "Villeurbanne", ...).
type Zone struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Zone, error) {
	const q = `SELECT id, name, COALESCE(description,''), created_at FROM zones ORDER BY name`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Zone
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.Description, &z.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, name, description string) (*Zone, error) {
	const q = `
INSERT INTO zones (name, description)
VALUES ($1, $2)
RETURNING id, name, COALESCE(description,''), created_at
`
	var z Zone
	if err := r.db.QueryRow(ctx, q, name, nullable(description)).Scan(
		&z.ID, &z.Name, &z.Description, &z.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *Repository) Update(ctx context.Context, id int64, name, description string) error {
	const q = `UPDATE zones SET name = $1, description = $2 WHERE id = $3`
	tag, err := r.db.Exec(ctx, q, name, nullable(description), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
