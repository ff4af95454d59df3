package fixtures

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/repository"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var raw []byte

type Set struct {
	Shipments []domain.Shipment `yaml:"shipments"`
	Tariffs   []domain.Tariff   `yaml:"tariffs"`
}

// Load parses the embedded fixture file.
func Load() (*Set, error) {
	return Parse(raw)
}

func Parse(b []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i := range s.Shipments {
		if err := s.Shipments[i].Validate(); err != nil {
			return nil, fmt.Errorf("fixture shipment %d: %w", i, err)
		}
	}
	return &s, nil
}

// Seed writes the set into the stores. Shipments that already exist are
// skipped so seeding a database twice is harmless.
func Seed(ctx context.Context, s *Set, shipments repository.ShipmentRepo, tariffs repository.TariffRepo) error {
	added := 0
	for i := range s.Shipments {
		sh := s.Shipments[i]
		err := shipments.AddShipment(ctx, &sh)
		if errors.Is(err, repository.ErrShipmentExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed shipment %s: %w", sh.TrackingNumber, err)
		}
		added++
	}

	existing, err := tariffs.ListTariffs(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for i := range s.Tariffs {
			if err := tariffs.SaveTariff(ctx, &s.Tariffs[i], nil); err != nil {
				return fmt.Errorf("seed tariff %s: %w", s.Tariffs[i].Name, err)
			}
		}
	}

	logger.Info("fixtures seeded", "shipments", added, "tariffs", len(s.Tariffs))
	return nil
}
