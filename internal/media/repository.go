package media

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("media: not found")

// Record references an uploaded asset. The bytes live in the hosted storage
// bucket; this table only tracks URLs and captions for the media library.
type Record struct {
	ID        int64     `json:"id"`
	FileURL   string    `json:"fileUrl"`
	Alt       string    `json:"alt,omitempty"`
	Kind      string    `json:"kind"` // gallery | before_after | other
	CreatedAt time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Record, error) {
	const q = `SELECT id, file_url, COALESCE(alt,''), kind, created_at FROM media ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.FileURL, &rec.Alt, &rec.Kind, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, fileURL, alt, kind string) (*Record, error) {
	if kind == "" {
		kind = "other"
	}
	const q = `
INSERT INTO media (file_url, alt, kind)
VALUES ($1, $2, $3)
RETURNING id, file_url, COALESCE(alt,''), kind, created_at
`
	var rec Record
	if err := r.db.QueryRow(ctx, q, fileURL, nullable(alt), kind).Scan(
		&rec.ID, &rec.FileURL, &rec.Alt, &rec.Kind, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
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
