package catalog

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"cleanbook/pkg/db"
)

// SectionType names one block of a service detail page.
type SectionType string

const (
	SectionTitle       SectionType = "title"
	SectionImage       SectionType = "image"
	SectionDescription SectionType = "description"
	SectionOptions     SectionType = "options"
	SectionPrice       SectionType = "price"
	SectionActions     SectionType = "actions"
)

// DefaultSectionTypes is the layout every new service starts with, in page order.
var DefaultSectionTypes = []SectionType{
	SectionTitle, SectionImage, SectionDescription,
	SectionOptions, SectionPrice, SectionActions,
}

// Section is one configurable block of a service detail page. The back-office
// reorders sections, hides them, and assigns them to a column.
type Section struct {
	ID             int64       `json:"id"`
	ServiceID      int64       `json:"serviceId"`
	Type           SectionType `json:"type"`
	DisplayOrder   int         `json:"displayOrder"`
	IsVisible      bool        `json:"isVisible"`
	ColumnPosition string      `json:"columnPosition"` // full | left | right
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func ValidColumnPosition(s string) bool {
	switch s {
	case "full", "left", "right":
		return true
	}
	return false
}

const sectionColumns = `id, service_id, section_type, display_order, is_visible, column_position, updated_at`

func (r *Repository) ListSections(ctx context.Context, serviceID int64) ([]Section, error) {
	q := `SELECT ` + sectionColumns + ` FROM service_sections WHERE service_id = $1 ORDER BY display_order, id`
	rows, err := r.db.Query(ctx, q, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Type, &s.DisplayOrder, &s.IsVisible, &s.ColumnPosition, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SectionLayoutInput is one row of a bulk layout save.
type SectionLayoutInput struct {
	ID             int64
	DisplayOrder   int
	IsVisible      bool
	ColumnPosition string
}

// SaveLayout applies a bulk reorder/visibility update to a service's sections.
// Rows are matched by id scoped to the service; an unknown id fails the whole
// save so a half-applied layout never lands.
func (r *Repository) SaveLayout(ctx context.Context, serviceID int64, updates []SectionLayoutInput) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
UPDATE service_sections
SET display_order = $1, is_visible = $2, column_position = $3, updated_at = NOW()
WHERE id = $4 AND service_id = $5
`
		for _, u := range updates {
			tag, err := tx.Exec(ctx, q, u.DisplayOrder, u.IsVisible, u.ColumnPosition, u.ID, serviceID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

func seedSections(ctx context.Context, tx pgx.Tx, serviceID int64) error {
	const q = `
INSERT INTO service_sections (service_id, section_type, display_order)
VALUES ($1, $2, $3)
`
	for i, st := range DefaultSectionTypes {
		if _, err := tx.Exec(ctx, q, serviceID, string(st), i+1); err != nil {
			return err
		}
	}
	return nil
}
