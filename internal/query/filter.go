package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/RaikyD/velocity-express/internal/domain"
)

// Criteria narrows a shipment list. Zero value matches everything.
type Criteria struct {
	Query  string
	Status *domain.ShipmentStatus // nil means "all"
	From   *time.Time
	To     *time.Time
}

const StatusAll = "all"

// ParseStatusFilter turns the UI select value into a criteria status.
func ParseStatusFilter(v string) (*domain.ShipmentStatus, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == StatusAll {
		return nil, nil
	}
	s, err := domain.ParseShipmentStatus(v)
	if err != nil {
		return nil, fmt.Errorf("status filter: %w", err)
	}
	return &s, nil
}

// Filter returns the records matching every criterion, in input order.
// The input slice is not modified.
func Filter(records []domain.Shipment, c Criteria) []domain.Shipment {
	out := make([]domain.Shipment, 0, len(records))

	var from, to time.Time
	if c.From != nil {
		from = day(*c.From)
	}
	if c.To != nil {
		to = day(*c.To)
	}
	if c.From != nil && c.To != nil && from.After(to) {
		return out
	}

	q := c.Query
	lq := strings.ToLower(q)

	for _, r := range records {
		if q != "" && !matchesQuery(r, q, lq) {
			continue
		}
		if c.Status != nil && r.Status != *c.Status {
			continue
		}
		created := day(r.CreatedAt)
		if c.From != nil && created.Before(from) {
			continue
		}
		if c.To != nil && created.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// phone is matched raw, the rest lower-cased
func matchesQuery(r domain.Shipment, raw, lower string) bool {
	return strings.Contains(strings.ToLower(r.TrackingNumber), lower) ||
		strings.Contains(strings.ToLower(r.RecipientName), lower) ||
		strings.Contains(r.RecipientPhone, raw) ||
		strings.Contains(strings.ToLower(r.Destination), lower)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
