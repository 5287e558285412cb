package testimonial

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("testimonial: not found")

type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

type Testimonial struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Role      string    `json:"role,omitempty"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `id, author, COALESCE(role,''), rating, text, status, created_at`

// ListApproved feeds the public testimonials section.
func (r *Repository) ListApproved(ctx context.Context) ([]Testimonial, error) {
	q := `SELECT ` + columns + ` FROM testimonials WHERE status = 'approved' ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *Repository) ListAll(ctx context.Context) ([]Testimonial, error) {
	q := `SELECT ` + columns + ` FROM testimonials ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *Repository) list(ctx context.Context, q string) ([]Testimonial, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Testimonial
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Role, &t.Rating, &t.Text, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, author, role string, rating int, text string, status Status) (*Testimonial, error) {
	q := `
INSERT INTO testimonials (author, role, rating, text, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns
	var t Testimonial
	if err := r.db.QueryRow(ctx, q, author, role, rating, text, string(status)).Scan(
		&t.ID, &t.Author, &t.Role, &t.Rating, &t.Text, &t.Status, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Update(ctx context.Context, id int64, author, role string, rating int, text string, status Status) error {
	const q = `
UPDATE testimonials SET author = $1, role = $2, rating = $3, text = $4, status = $5
WHERE id = $6
`
	tag, err := r.db.Exec(ctx, q, author, role, rating, text, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
