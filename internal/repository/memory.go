package repository

import (
	"context"
	"sync"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps fixture data in process. Insertion order is kept so
// listings are stable between calls.
type MemoryStore struct {
	mu        sync.RWMutex
	shipments map[string]*domain.Shipment
	order     []string
	tariffs   map[uuid.UUID]domain.Tariff
	tOrder    []uuid.UUID
	changes   []domain.RateChange
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shipments: make(map[string]*domain.Shipment),
		tariffs:   make(map[uuid.UUID]domain.Tariff),
	}
}

func (m *MemoryStore) AddShipment(ctx context.Context, s *domain.Shipment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shipments[s.TrackingNumber]; ok {
		return ErrShipmentExists
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	m.shipments[s.TrackingNumber] = &cp
	m.order = append(m.order, s.TrackingNumber)
	return nil
}

func (m *MemoryStore) GetByTracking(ctx context.Context, tracking string) (*domain.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.shipments[tracking]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Shipment, 0, len(m.order))
	for _, tn := range m.order {
		out = append(out, *m.shipments[tn])
	}
	return out, nil
}

func (m *MemoryStore) UpdateStatus(ctx context.Context, tracking string, status domain.ShipmentStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.shipments[tracking]
	if !ok {
		return ErrNotFound
	}
	s.Status = status
	return nil
}

func (m *MemoryStore) ListTariffs(ctx context.Context) ([]domain.Tariff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Tariff, 0, len(m.tOrder))
	for _, id := range m.tOrder {
		out = append(out, m.tariffs[id])
	}
	return out, nil
}

func (m *MemoryStore) GetTariff(ctx context.Context, id uuid.UUID) (*domain.Tariff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tariffs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) SaveTariff(ctx context.Context, t *domain.Tariff, changes []domain.RateChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tariffs[t.ID]; !ok {
		m.tOrder = append(m.tOrder, t.ID)
	}
	m.tariffs[t.ID] = *t
	m.changes = append(m.changes, changes...)
	return nil
}

func (m *MemoryStore) DeleteTariff(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tariffs[id]; !ok {
		return ErrNotFound
	}
	delete(m.tariffs, id)
	for i, v := range m.tOrder {
		if v == id {
			m.tOrder = append(m.tOrder[:i], m.tOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) ListRateChanges(ctx context.Context) ([]domain.RateChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.RateChange, len(m.changes))
	copy(out, m.changes)
	return out, nil
}
