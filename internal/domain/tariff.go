package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tariff struct {
	ID         uuid.UUID   `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Service    ServiceType `json:"service" yaml:"service"`
	BasePrice  int64       `json:"base_price" yaml:"base_price"`
	PricePerKg int64       `json:"price_per_kg" yaml:"price_per_kg"`
	UpdatedAt  time.Time   `json:"updated_at" yaml:"updated_at"`
	UpdatedBy  string      `json:"updated_by" yaml:"updated_by"`
}

// RateChange is one audit entry written whenever a tariff price moves.
type RateChange struct {
	ID         uuid.UUID `json:"id"`
	TariffID   uuid.UUID `json:"tariff_id"`
	TariffName string    `json:"tariff_name"`
	Field      string    `json:"field"`
	OldPrice   int64     `json:"old_price"`
	NewPrice   int64     `json:"new_price"`
	ChangedAt  time.Time `json:"changed_at"`
	ChangedBy  string    `json:"changed_by"`
}

const (
	FieldBasePrice  = "base_price"
	FieldPricePerKg = "price_per_kg"
)
