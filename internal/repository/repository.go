package repository

import (
	"context"
	"errors"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrShipmentExists = errors.New("shipment already exists")
	ErrNotFound       = errors.New("not found")
)

type ShipmentRepo interface {
	AddShipment(ctx context.Context, s *domain.Shipment) error
	GetByTracking(ctx context.Context, tracking string) (*domain.Shipment, error)
	ListShipments(ctx context.Context) ([]domain.Shipment, error)
	UpdateStatus(ctx context.Context, tracking string, status domain.ShipmentStatus) error
}

type TariffRepo interface {
	ListTariffs(ctx context.Context) ([]domain.Tariff, error)
	GetTariff(ctx context.Context, id uuid.UUID) (*domain.Tariff, error)
	// SaveTariff upserts the tariff and appends changes in one unit.
	SaveTariff(ctx context.Context, t *domain.Tariff, changes []domain.RateChange) error
	DeleteTariff(ctx context.Context, id uuid.UUID) error
	ListRateChanges(ctx context.Context) ([]domain.RateChange, error)
}
