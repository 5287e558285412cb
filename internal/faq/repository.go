package faq

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("faq: not found")

type FAQ struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]FAQ, error) {
	const q = `
SELECT id, question, answer, display_order, created_at
FROM faqs
ORDER BY display_order, id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, question, answer string) (*FAQ, error) {
	const q = `
INSERT INTO faqs (question, answer, display_order)
VALUES ($1, $2, COALESCE((SELECT MAX(display_order) + 1 FROM faqs), 0))
RETURNING id, question, answer, display_order, created_at
`
	var f FAQ
	if err := r.db.QueryRow(ctx, q, question, answer).Scan(
		&f.ID, &f.Question, &f.Answer, &f.DisplayOrder, &f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) Update(ctx context.Context, id int64, question, answer string, displayOrder int) error {
	const q = `UPDATE faqs SET question = $1, answer = $2, display_order = $3 WHERE id = $4`
	tag, err := r.db.Exec(ctx, q, question, answer, displayOrder, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
