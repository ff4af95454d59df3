package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(p *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: p}
}

const shipmentColumns = `id, tracking_number, status, service, sender_name, sender_phone,
	recipient_name, recipient_phone, destination, weight_kg, cost, created_at, estimated_delivery`

func (p *PostgresStore) AddShipment(ctx context.Context, s *domain.Shipment) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO velocity.shipments (`+shipmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		s.ID,
		s.TrackingNumber,
		s.Status.String(),
		s.Service.String(),
		s.SenderName,
		s.SenderPhone,
		s.RecipientName,
		s.RecipientPhone,
		s.Destination,
		s.WeightKg,
		s.Cost,
		s.CreatedAt,
		s.EstimatedDelivery,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrShipmentExists
		}
		logger.Warn("insert shipment failed", "tracking", s.TrackingNumber, "err", err)
		return err
	}
	return nil
}

func (p *PostgresStore) GetByTracking(ctx context.Context, tracking string) (*domain.Shipment, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+shipmentColumns+` FROM velocity.shipments WHERE tracking_number = $1`, tracking)
	s, err := scanShipment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+shipmentColumns+` FROM velocity.shipments ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Shipment
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) UpdateStatus(ctx context.Context, tracking string, status domain.ShipmentStatus) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE velocity.shipments SET status = $2 WHERE tracking_number = $1`,
		tracking, status.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShipment(row pgx.Row) (*domain.Shipment, error) {
	var (
		s               domain.Shipment
		status, service string
	)
	err := row.Scan(
		&s.ID,
		&s.TrackingNumber,
		&status,
		&service,
		&s.SenderName,
		&s.SenderPhone,
		&s.RecipientName,
		&s.RecipientPhone,
		&s.Destination,
		&s.WeightKg,
		&s.Cost,
		&s.CreatedAt,
		&s.EstimatedDelivery,
	)
	if err != nil {
		return nil, err
	}
	if s.Status, err = domain.ParseShipmentStatus(status); err != nil {
		return nil, err
	}
	if s.Service, err = domain.ParseServiceType(service); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) ListTariffs(ctx context.Context) ([]domain.Tariff, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, service, base_price, price_per_kg, updated_at, updated_by
		FROM velocity.tariffs ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tariff
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetTariff(ctx context.Context, id uuid.UUID) (*domain.Tariff, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, name, service, base_price, price_per_kg, updated_at, updated_by
		FROM velocity.tariffs WHERE id = $1`, id)
	t, err := scanTariff(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func scanTariff(row pgx.Row) (*domain.Tariff, error) {
	var (
		t       domain.Tariff
		service string
	)
	if err := row.Scan(&t.ID, &t.Name, &service, &t.BasePrice, &t.PricePerKg, &t.UpdatedAt, &t.UpdatedBy); err != nil {
		return nil, err
	}
	var err error
	if t.Service, err = domain.ParseServiceType(service); err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStore) SaveTariff(ctx context.Context, t *domain.Tariff, changes []domain.RateChange) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO velocity.tariffs (id, name, service, base_price, price_per_kg, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			service = EXCLUDED.service,
			base_price = EXCLUDED.base_price,
			price_per_kg = EXCLUDED.price_per_kg,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`, t.ID, t.Name, t.Service.String(), t.BasePrice, t.PricePerKg, t.UpdatedAt, t.UpdatedBy)
	if err != nil {
		return fmt.Errorf("upsert tariff: %w", err)
	}

	if len(changes) > 0 {
		batch := &pgx.Batch{}
		for _, c := range changes {
			batch.Queue(`
				INSERT INTO velocity.rate_changes
					(id, tariff_id, tariff_name, field, old_price, new_price, changed_at, changed_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, c.ID, c.TariffID, c.TariffName, c.Field, c.OldPrice, c.NewPrice, c.ChangedAt, c.ChangedBy)
		}
		br := tx.SendBatch(ctx, batch)
		if err = br.Close(); err != nil {
			return fmt.Errorf("insert rate changes: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	tx = nil
	return nil
}

func (p *PostgresStore) DeleteTariff(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM velocity.tariffs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) ListRateChanges(ctx context.Context) ([]domain.RateChange, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, tariff_id, tariff_name, field, old_price, new_price, changed_at, changed_by
		FROM velocity.rate_changes ORDER BY changed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.RateChange, error) {
		var c domain.RateChange
		err := r.Scan(&c.ID, &c.TariffID, &c.TariffName, &c.Field, &c.OldPrice, &c.NewPrice, &c.ChangedAt, &c.ChangedBy)
		return c, err
	})
}
