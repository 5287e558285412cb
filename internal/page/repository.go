package page

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cleanbook/internal/catalog"
)

var ErrNotFound = errors.New("page: not found")

// Page is an editable content page; published pages can appear in the navbar.
type Page struct {
	ID              int64           `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	MetaDescription string          `json:"metaDescription,omitempty"`
	Category        string          `json:"category"`
	ShowInNavbar    bool            `json:"showInNavbar"`
	NavbarOrder     int             `json:"navbarOrder"`
	Images          json.RawMessage `json:"images"`
	IsPublished     bool            `json:"isPublished"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const columns = `
id, slug, title, content, COALESCE(meta_description,''), category,
show_in_navbar, navbar_order, COALESCE(images, '[]'::jsonb), is_published, created_at, updated_at`

func scanPage(row pgx.Row) (*Page, error) {
	var p Page
	if err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Content, &p.MetaDescription, &p.Category,
		&p.ShowInNavbar, &p.NavbarOrder, &p.Images, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPublished feeds the public navigation and page index.
func (r *Repository) ListPublished(ctx context.Context) ([]Page, error) {
	q := `SELECT ` + columns + ` FROM pages WHERE is_published ORDER BY navbar_order, id`
	return r.list(ctx, q)
}

func (r *Repository) ListAll(ctx context.Context) ([]Page, error) {
	q := `SELECT ` + columns + ` FROM pages ORDER BY navbar_order, id`
	return r.list(ctx, q)
}

func (r *Repository) list(ctx context.Context, q string) ([]Page, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetPublishedBySlug serves the public page view; drafts stay invisible.
func (r *Repository) GetPublishedBySlug(ctx context.Context, slug string) (*Page, error) {
	q := `SELECT ` + columns + ` FROM pages WHERE slug = $1 AND is_published`
	return scanPage(r.db.QueryRow(ctx, q, slug))
}

type Input struct {
	Title           string
	Content         string
	MetaDescription string
	Category        string
	ShowInNavbar    bool
	NavbarOrder     int
	Images          json.RawMessage
	IsPublished     bool
}

func (r *Repository) Create(ctx context.Context, in Input) (*Page, error) {
	slug := catalog.Slugify(in.Title)
	if slug == "" {
		return nil, errors.New("page: empty slug")
	}
	category := in.Category
	if category == "" {
		category = "page"
	}
	images := in.Images
	if len(images) == 0 {
		images = json.RawMessage("[]")
	}
	q := `
INSERT INTO pages (slug, title, content, meta_description, category, show_in_navbar, navbar_order, images, is_published)
VALUES ($1, $2, $3, $4, $5, $6, $7, CAST($8 AS jsonb), $9)
RETURNING ` + columns
	return scanPage(r.db.QueryRow(ctx, q,
		slug, in.Title, in.Content, nullable(in.MetaDescription), category,
		in.ShowInNavbar, in.NavbarOrder, string(images), in.IsPublished,
	))
}

func (r *Repository) Update(ctx context.Context, id int64, in Input) (*Page, error) {
	category := in.Category
	if category == "" {
		category = "page"
	}
	images := in.Images
	if len(images) == 0 {
		images = json.RawMessage("[]")
	}
	q := `
UPDATE pages
SET title = $1, content = $2, meta_description = $3, category = $4,
    show_in_navbar = $5, navbar_order = $6, images = CAST($7 AS jsonb), is_published = $8,
    updated_at = NOW()
WHERE id = $9
RETURNING ` + columns
	return scanPage(r.db.QueryRow(ctx, q,
		in.Title, in.Content, nullable(in.MetaDescription), category,
		in.ShowInNavbar, in.NavbarOrder, string(images), in.IsPublished, id,
	))
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pages WHERE id = $1`, id)
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
