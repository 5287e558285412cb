package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"cleanbook/pkg/db"
)

var (
	ErrNotFound = errors.New("catalog: not found")

	// ErrSlugTaken marks a create whose generated slug collides with an
	// existing service, which means the name is effectively a duplicate.
	ErrSlugTaken = errors.New("catalog: slug already taken")
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const serviceColumns = `
id, name, slug, COALESCE(page_title,''), COALESCE(description,''), COALESCE(price,''),
COALESCE(base_price, 0)::text, has_options, COALESCE(image_url,''), display_order,
created_at, updated_at`

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	var basePrice string
	if err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.PageTitle, &s.Description, &s.Price,
		&basePrice, &s.HasOptions, &s.ImageURL, &s.DisplayOrder,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	bp, err := decimal.NewFromString(basePrice)
	if err != nil {
		// Treat an unparseable base price as zero rather than failing the view.
		bp = decimal.Zero
	}
	s.BasePrice = bp
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services ORDER BY display_order, id`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`
	return scanService(r.db.QueryRow(ctx, q, slug))
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.db.QueryRow(ctx, q, id))
}

// ListOptions returns a service's options with their choices, both ordered by
// display_order ascending with id as the stable tie-break.
func (r *Repository) ListOptions(ctx context.Context, serviceID int64) ([]Option, error) {
	const qOpts = `
SELECT id, service_id, name, type, is_required, display_order
FROM service_options
WHERE service_id = $1
ORDER BY display_order, id
`
	rows, err := r.db.Query(ctx, qOpts, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opts []Option
	byID := map[int64]int{}
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.ServiceID, &o.Name, &o.Type, &o.IsRequired, &o.DisplayOrder); err != nil {
			return nil, err
		}
		o.Choices = []Choice{}
		byID[o.ID] = len(opts)
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return opts, nil
	}

	const qChoices = `
SELECT c.id, c.option_id, c.label, COALESCE(c.price_modifier, 0)::text, c.display_order
FROM service_option_choices c
JOIN service_options o ON o.id = c.option_id
WHERE o.service_id = $1
ORDER BY c.display_order, c.id
`
	crows, err := r.db.Query(ctx, qChoices, serviceID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var c Choice
		var modifier string
		if err := crows.Scan(&c.ID, &c.OptionID, &c.Label, &modifier, &c.DisplayOrder); err != nil {
			return nil, err
		}
		m, err := decimal.NewFromString(modifier)
		if err != nil {
			m = decimal.Zero
		}
		c.PriceModifier = m
		if i, ok := byID[c.OptionID]; ok {
			opts[i].Choices = append(opts[i].Choices, c)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, err
	}

	SortOptions(opts)
	return opts, nil
}

type ServiceInput struct {
	Name        string
	PageTitle   string
	Description string
	Price       string
	BasePrice   decimal.Decimal
	ImageURL    string
}

// CreateService inserts the service and seeds its default detail-page layout
// sections, in one transaction.
func (r *Repository) CreateService(ctx context.Context, in ServiceInput) (*Service, error) {
	slug := Slugify(in.Name)
	if slug == "" {
		return nil, fmt.Errorf("catalog: empty slug for name %q", in.Name)
	}
	var svc *Service
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		q := `
INSERT INTO services (name, slug, page_title, description, price, base_price, image_url, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7,
        COALESCE((SELECT MAX(display_order) + 1 FROM services), 0))
RETURNING ` + serviceColumns
		s, err := scanService(tx.QueryRow(ctx, q,
			in.Name, slug, nullable(in.PageTitle), nullable(in.Description),
			nullable(in.Price), in.BasePrice, nullable(in.ImageURL),
		))
		if err != nil {
			return mapUniqueViolation(err)
		}
		svc = s
		return seedSections(ctx, tx, s.ID)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// mapUniqueViolation turns a Postgres unique violation into ErrSlugTaken so
// handlers can answer with a conflict instead of a bare 500.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlugTaken
	}
	return err
}

func (r *Repository) UpdateService(ctx context.Context, id int64, in ServiceInput) (*Service, error) {
	q := `
UPDATE services
SET name = $1, page_title = $2, description = $3, price = $4, base_price = $5,
    image_url = $6, updated_at = NOW()
WHERE id = $7
RETURNING ` + serviceColumns
	return scanService(r.db.QueryRow(ctx, q,
		in.Name, nullable(in.PageTitle), nullable(in.Description),
		nullable(in.Price), in.BasePrice, nullable(in.ImageURL), id,
	))
}

// DeleteService removes a service; options and choices go with it via FK cascade.
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type OptionInput struct {
	Name       string
	Type       OptionType
	IsRequired bool
}

// CreateOption appends an option for a service and flips the service's
// has_options flag, in one transaction.
func (r *Repository) CreateOption(ctx context.Context, serviceID int64, in OptionInput) (*Option, error) {
	var o Option
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
INSERT INTO service_options (service_id, name, type, is_required, display_order)
VALUES ($1, $2, $3, $4,
        COALESCE((SELECT MAX(display_order) + 1 FROM service_options WHERE service_id = $1), 0))
RETURNING id, service_id, name, type, is_required, display_order
`
		if err := tx.QueryRow(ctx, q, serviceID, in.Name, in.Type, in.IsRequired).Scan(
			&o.ID, &o.ServiceID, &o.Name, &o.Type, &o.IsRequired, &o.DisplayOrder,
		); err != nil {
			return err
		}
		o.Choices = []Choice{}

		_, err := tx.Exec(ctx, `UPDATE services SET has_options = TRUE, updated_at = NOW() WHERE id = $1`, serviceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) UpdateOption(ctx context.Context, optionID int64, in OptionInput, displayOrder int) error {
	const q = `
UPDATE service_options
SET name = $1, type = $2, is_required = $3, display_order = $4
WHERE id = $5
`
	tag, err := r.db.Exec(ctx, q, in.Name, in.Type, in.IsRequired, displayOrder, optionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOption removes an option (choices cascade) and clears the service's
// has_options flag when it was the last one.
func (r *Repository) DeleteOption(ctx context.Context, optionID int64) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var serviceID int64
		if err := tx.QueryRow(ctx, `DELETE FROM service_options WHERE id = $1 RETURNING service_id`, optionID).Scan(&serviceID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		const qRemaining = `SELECT EXISTS (SELECT 1 FROM service_options WHERE service_id = $1)`
		var remaining bool
		if err := tx.QueryRow(ctx, qRemaining, serviceID).Scan(&remaining); err != nil {
			return err
		}
		if !remaining {
			if _, err := tx.Exec(ctx, `UPDATE services SET has_options = FALSE, updated_at = NOW() WHERE id = $1`, serviceID); err != nil {
				return err
			}
		}
		return nil
	})
}

type ChoiceInput struct {
	Label         string
	PriceModifier decimal.Decimal
}

func (r *Repository) CreateChoice(ctx context.Context, optionID int64, in ChoiceInput) (*Choice, error) {
	const q = `
INSERT INTO service_option_choices (option_id, label, price_modifier, display_order)
VALUES ($1, $2, $3,
        COALESCE((SELECT MAX(display_order) + 1 FROM service_option_choices WHERE option_id = $1), 0))
RETURNING id, option_id, label, price_modifier::text, display_order
`
	var c Choice
	var modifier string
	if err := r.db.QueryRow(ctx, q, optionID, in.Label, in.PriceModifier).Scan(
		&c.ID, &c.OptionID, &c.Label, &modifier, &c.DisplayOrder,
	); err != nil {
		return nil, err
	}
	c.PriceModifier, _ = decimal.NewFromString(modifier)
	return &c, nil
}

func (r *Repository) UpdateChoice(ctx context.Context, choiceID int64, in ChoiceInput, displayOrder int) error {
	const q = `
UPDATE service_option_choices
SET label = $1, price_modifier = $2, display_order = $3
WHERE id = $4
`
	tag, err := r.db.Exec(ctx, q, in.Label, in.PriceModifier, displayOrder, choiceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteChoice(ctx context.Context, choiceID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM service_option_choices WHERE id = $1`, choiceID)
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
