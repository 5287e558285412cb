package plan

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("plan: not found")

// Plan is a pricing plan card on the storefront ("Essentiel", "Premium", ...).
type Plan struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PriceLabel string    `json:"priceLabel"`
	Points     []string  `json:"points"`
	Popular    bool      `json:"popular"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Plan, error) {
	const q = `
SELECT id, name, COALESCE(price_label,''), points, popular, created_at
FROM plans
ORDER BY created_at
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var p Plan
		var points []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceLabel, &points, &p.Popular, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(points, &p.Points); err != nil {
			p.Points = []string{}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, name, priceLabel string, points []string, popular bool) (*Plan, error) {
	b, err := json.Marshal(points)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO plans (name, price_label, points, popular)
VALUES ($1, $2, CAST($3 AS jsonb), $4)
RETURNING id, created_at
`
	p := Plan{Name: name, PriceLabel: priceLabel, Points: points, Popular: popular}
	if err := r.db.QueryRow(ctx, q, name, priceLabel, string(b), popular).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(ctx context.Context, id int64, name, priceLabel string, points []string, popular bool) error {
	b, err := json.Marshal(points)
	if err != nil {
		return err
	}
	const q = `
UPDATE plans SET name = $1, price_label = $2, points = CAST($3 AS jsonb), popular = $4
WHERE id = $5
`
	tag, err := r.db.Exec(ctx, q, name, priceLabel, string(b), popular, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
