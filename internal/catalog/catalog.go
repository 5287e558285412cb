package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OptionType string

const (
	OptionTypeSelect OptionType = "select"
	OptionTypeRadio  OptionType = "radio"
)

func ParseOptionType(s string) (OptionType, bool) {
	switch OptionType(s) {
	case OptionTypeSelect, OptionTypeRadio:
		return OptionType(s), true
	default:
		return "", false
	}
}

type Service struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	PageTitle       string          `json:"pageTitle,omitempty"`
	Description     string          `json:"description,omitempty"`
	// Price is the flat display label for services without options ("Sur devis", "49€", ...).
	Price           string          `json:"price,omitempty"`
	BasePrice       decimal.Decimal `json:"basePrice"`
	HasOptions      bool            `json:"hasOptions"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	DisplayOrder    int             `json:"displayOrder"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Option struct {
	ID           int64      `json:"id"`
	ServiceID    int64      `json:"serviceId"`
	Name         string     `json:"name"`
	Type         OptionType `json:"type"`
	IsRequired   bool       `json:"isRequired"`
	DisplayOrder int        `json:"displayOrder"`
	Choices      []Choice   `json:"choices"`
}

type Choice struct {
	ID            int64           `json:"id"`
	OptionID      int64           `json:"optionId"`
	Label         string          `json:"label"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
	DisplayOrder  int             `json:"displayOrder"`
}

// SortOptions orders options and their choices by display_order ascending.
// The sort must be stable: equal display_order values keep insertion order,
// which the DB queries provide as ascending id.
func SortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].DisplayOrder < opts[j].DisplayOrder
	})
	for i := range opts {
		choices := opts[i].Choices
		sort.SliceStable(choices, func(a, b int) bool {
			return choices[a].DisplayOrder < choices[b].DisplayOrder
		})
	}
}

var slugReplacer = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// Slugify derives a URL-safe slug from a service name.
func Slugify(name string) string {
	s := slugReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
