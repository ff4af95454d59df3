package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/query"
	"github.com/RaikyD/velocity-express/internal/repository"
)

var (
	ErrShipmentAlreadyExists = errors.New("shipment already exists")
	ErrShipmentNotFound      = errors.New("shipment not found")
)

type ShipmentsService struct {
	repo   repository.ShipmentRepo
	pub    EventPublisher
	sorter *query.Sorter
	now    func() time.Time

	mu         sync.RWMutex
	byTracking map[string]*domain.Shipment
}

func NewShipmentsService(r repository.ShipmentRepo, pub EventPublisher, sorter *query.Sorter) *ShipmentsService {
	if pub == nil {
		pub = nopPublisher{}
	}
	if sorter == nil {
		sorter = query.DefaultSorter
	}
	return &ShipmentsService{
		repo:       r,
		pub:        pub,
		sorter:     sorter,
		now:        time.Now,
		byTracking: make(map[string]*domain.Shipment),
	}
}

// AddShipment validates and stores a new shipment and announces it.
func (s *ShipmentsService) AddShipment(ctx context.Context, sh *domain.Shipment) error {
	if err := sh.Validate(); err != nil {
		return err
	}
	if sh.CreatedAt.IsZero() {
		sh.CreatedAt = s.now().UTC()
	}

	if err := s.repo.AddShipment(ctx, sh); err != nil {
		if errors.Is(err, repository.ErrShipmentExists) {
			return ErrShipmentAlreadyExists
		}
		logger.Warn("add shipment failed", "tracking", sh.TrackingNumber, "err", err)
		return err
	}

	s.cache(sh)
	s.publish(ctx, domain.EventShipmentCreated, *sh)
	return nil
}

// Ingest stores a shipment coming from the event stream. Duplicates are
// not an error so redelivered messages can be committed.
func (s *ShipmentsService) Ingest(ctx context.Context, sh *domain.Shipment) error {
	if err := sh.Validate(); err != nil {
		return err
	}
	err := s.repo.AddShipment(ctx, sh)
	if errors.Is(err, repository.ErrShipmentExists) {
		logger.Debug("ingest: duplicate shipment", "tracking", sh.TrackingNumber)
		return nil
	}
	if err != nil {
		return err
	}
	s.cache(sh)
	return nil
}

func (s *ShipmentsService) Get(ctx context.Context, tracking string) (*domain.Shipment, error) {
	s.mu.RLock()
	if sh, ok := s.byTracking[tracking]; ok {
		cp := *sh
		s.mu.RUnlock()
		return &cp, nil
	}
	s.mu.RUnlock()

	sh, err := s.repo.GetByTracking(ctx, tracking)
	if err != nil {
		logger.Warn("get shipment failed", "tracking", tracking, "err", err)
		return nil, err
	}
	if sh == nil {
		return nil, ErrShipmentNotFound
	}
	return s.fill(sh), nil
}

// ListParams is one table view request.
type ListParams struct {
	Criteria query.Criteria
	Sort     query.SortKey
	Limit    int
	Offset   int
}

type ListResult struct {
	Items []domain.Shipment `json:"items"`
	Total int               `json:"total"`
}

// List filters, then sorts, then pages the shipment list. Total counts the
// filtered rows before paging. An empty sort field keeps store order.
func (s *ShipmentsService) List(ctx context.Context, p ListParams) (ListResult, error) {
	all, err := s.repo.ListShipments(ctx)
	if err != nil {
		return ListResult{}, err
	}

	rows := query.Filter(all, p.Criteria)
	if p.Sort.Field != "" {
		rows, err = query.SortWith(s.sorter, rows, p.Sort, query.ShipmentFields)
		if err != nil {
			return ListResult{}, err
		}
	}

	return ListResult{
		Items: query.Paginate(rows, p.Limit, p.Offset),
		Total: len(rows),
	}, nil
}

func (s *ShipmentsService) UpdateStatus(ctx context.Context, tracking string, status domain.ShipmentStatus) (*domain.Shipment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrInvalidShipment, uint8(status))
	}

	// held across the write and re-read so a concurrent Get cannot fill
	// the entry with the row as it was before the update
	s.mu.Lock()
	sh, err := s.updateStatusLocked(ctx, tracking, status)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventStatusChanged, *sh)
	return sh, nil
}

func (s *ShipmentsService) updateStatusLocked(ctx context.Context, tracking string, status domain.ShipmentStatus) (*domain.Shipment, error) {
	err := s.repo.UpdateStatus(ctx, tracking, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrShipmentNotFound
	}
	if err != nil {
		return nil, err
	}

	sh, err := s.repo.GetByTracking(ctx, tracking)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, ErrShipmentNotFound
	}
	cp := *sh
	s.byTracking[tracking] = &cp
	return sh, nil
}

func (s *ShipmentsService) RestoreCache(ctx context.Context, limit int) error {
	rows, err := s.repo.ListShipments(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	tmp := make(map[string]*domain.Shipment, len(rows))
	for i := range rows {
		tmp[rows[i].TrackingNumber] = &rows[i]
	}

	s.mu.Lock()
	s.byTracking = tmp
	s.mu.Unlock()
	return nil
}

// fill caches a row read on a cache miss. An entry written meanwhile wins,
// it is at least as fresh as sh.
func (s *ShipmentsService) fill(sh *domain.Shipment) *domain.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.byTracking[sh.TrackingNumber]; ok {
		cp := *cur
		return &cp
	}
	cp := *sh
	s.byTracking[sh.TrackingNumber] = &cp
	return sh
}

func (s *ShipmentsService) cache(sh *domain.Shipment) {
	cp := *sh
	s.mu.Lock()
	s.byTracking[sh.TrackingNumber] = &cp
	s.mu.Unlock()
}

// publishing is best effort; the write already happened
func (s *ShipmentsService) publish(ctx context.Context, typ string, sh domain.Shipment) {
	ev := domain.ShipmentEvent{Type: typ, Shipment: sh, OccurredAt: s.now().UTC()}
	if err := s.pub.PublishShipmentEvent(ctx, ev); err != nil {
		logger.Warn("publish shipment event failed", "type", typ, "tracking", sh.TrackingNumber, "err", err)
	}
}
