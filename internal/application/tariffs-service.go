package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/query"
	"github.com/RaikyD/velocity-express/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidTariff  = errors.New("invalid tariff")
	ErrTariffNotFound = errors.New("tariff not found")
)

type TariffsService struct {
	repo   repository.TariffRepo
	sorter *query.Sorter
	now    func() time.Time
}

func NewTariffsService(r repository.TariffRepo, sorter *query.Sorter) *TariffsService {
	if sorter == nil {
		sorter = query.DefaultSorter
	}
	return &TariffsService{repo: r, sorter: sorter, now: time.Now}
}

// TariffInput is what the admin form submits.
type TariffInput struct {
	Name       string             `json:"name"`
	Service    domain.ServiceType `json:"service"`
	BasePrice  int64              `json:"base_price"`
	PricePerKg int64              `json:"price_per_kg"`
}

func (in TariffInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidTariff)
	case !in.Service.Valid():
		return fmt.Errorf("%w: unknown service", ErrInvalidTariff)
	case in.BasePrice < 0 || in.PricePerKg < 0:
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidTariff)
	}
	return nil
}

func (s *TariffsService) List(ctx context.Context, key query.SortKey) ([]domain.Tariff, error) {
	rows, err := s.repo.ListTariffs(ctx)
	if err != nil {
		return nil, err
	}
	if key.Field == "" {
		key = query.SortKey{Field: "name"}
	}
	return query.SortWith(s.sorter, rows, key, query.TariffFields)
}

func (s *TariffsService) Create(ctx context.Context, in TariffInput, actor string) (*domain.Tariff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	t := &domain.Tariff{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(in.Name),
		Service:    in.Service,
		BasePrice:  in.BasePrice,
		PricePerKg: in.PricePerKg,
		UpdatedAt:  s.now().UTC(),
		UpdatedBy:  actor,
	}
	if err := s.repo.SaveTariff(ctx, t, nil); err != nil {
		return nil, err
	}
	logger.Info("tariff created", "id", t.ID, "name", t.Name, "by", actor)
	return t, nil
}

// Update overwrites a tariff and writes one rate change per price field
// that moved.
func (s *TariffsService) Update(ctx context.Context, id uuid.UUID, in TariffInput, actor string) (*domain.Tariff, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	old, err := s.repo.GetTariff(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	t := &domain.Tariff{
		ID:         id,
		Name:       strings.TrimSpace(in.Name),
		Service:    in.Service,
		BasePrice:  in.BasePrice,
		PricePerKg: in.PricePerKg,
		UpdatedAt:  now,
		UpdatedBy:  actor,
	}

	var changes []domain.RateChange
	record := func(field string, from, to int64) {
		if from == to {
			return
		}
		changes = append(changes, domain.RateChange{
			ID:         uuid.New(),
			TariffID:   id,
			TariffName: t.Name,
			Field:      field,
			OldPrice:   from,
			NewPrice:   to,
			ChangedAt:  now,
			ChangedBy:  actor,
		})
	}
	record(domain.FieldBasePrice, old.BasePrice, t.BasePrice)
	record(domain.FieldPricePerKg, old.PricePerKg, t.PricePerKg)

	if err := s.repo.SaveTariff(ctx, t, changes); err != nil {
		return nil, err
	}
	logger.Info("tariff updated", "id", id, "changes", len(changes), "by", actor)
	return t, nil
}

func (s *TariffsService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteTariff(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTariffNotFound
	}
	return err
}

// History lists rate changes, newest first unless key says otherwise.
// A nil tariffID lists every tariff.
func (s *TariffsService) History(ctx context.Context, tariffID uuid.UUID, key query.SortKey) ([]domain.RateChange, error) {
	rows, err := s.repo.ListRateChanges(ctx)
	if err != nil {
		return nil, err
	}
	if tariffID != uuid.Nil {
		kept := rows[:0]
		for _, r := range rows {
			if r.TariffID == tariffID {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	if key.Field == "" {
		key = query.SortKey{Field: "changed_at", Dir: query.Desc}
	}
	return query.SortWith(s.sorter, rows, key, query.RateChangeFields)
}
