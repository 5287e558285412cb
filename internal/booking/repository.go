package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("booking: not found")

type Booking struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	ServiceID   *int64          `json:"serviceId,omitempty"`
	ServiceName string          `json:"serviceName,omitempty"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	City        string          `json:"city,omitempty"`
	Address     string          `json:"address,omitempty"`
	Date        string          `json:"date,omitempty"`
	Time        string          `json:"time,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	// SelectedOptions is the immutable snapshot of resolved option lines,
	// written once at submission.
	SelectedOptions json.RawMessage `json:"selectedOptions"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type NewBooking struct {
	Reference       string
	Name            string
	Email           string
	Phone           string
	ServiceID       *int64
	ServiceName     string
	BasePrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	City            string
	Address         string
	Date            string
	Time            string
	Notes           string
	SelectedOptions any
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `
id, reference, name, email, COALESCE(phone,''), service_id, COALESCE(service_name,''),
COALESCE(base_price, 0)::text, COALESCE(total_price, 0)::text,
COALESCE(city,''), COALESCE(address,''), COALESCE(date::text,''), COALESCE(time::text,''),
COALESCE(notes,''), COALESCE(selected_options, '[]'::jsonb), status, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var basePrice, totalPrice string
	if err := row.Scan(
		&b.ID, &b.Reference, &b.Name, &b.Email, &b.Phone, &b.ServiceID, &b.ServiceName,
		&basePrice, &totalPrice,
		&b.City, &b.Address, &b.Date, &b.Time,
		&b.Notes, &b.SelectedOptions, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.BasePrice, _ = decimal.NewFromString(basePrice)
	b.TotalPrice, _ = decimal.NewFromString(totalPrice)
	return &b, nil
}

// Insert writes the assembled payload as one row. The selected option lines,
// base price and total go in together; the record is never recomputed after.
func (r *Repository) Insert(ctx context.Context, nb NewBooking) (*Booking, error) {
	lines, err := json.Marshal(nb.SelectedOptions)
	if err != nil {
		return nil, err
	}
	q := `
INSERT INTO bookings
  (reference, name, email, phone, service_id, service_name, base_price, total_price,
   city, address, date, time, notes, selected_options)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11,'')::date, NULLIF($12,'')::time, $13, CAST($14 AS jsonb))
RETURNING ` + bookingColumns
	return scanBooking(r.db.QueryRow(ctx, q,
		nb.Reference, nb.Name, nb.Email, nullable(nb.Phone), nb.ServiceID, nullable(nb.ServiceName),
		nb.BasePrice, nb.TotalPrice,
		nullable(nb.City), nullable(nb.Address), nb.Date, nb.Time,
		nullable(nb.Notes), string(lines),
	))
}

func (r *Repository) List(ctx context.Context, status Status) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, string(status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, next Status) error {
	const q = `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, q, string(next), id)
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
