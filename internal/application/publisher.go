package application

import (
	"context"

	"github.com/RaikyD/velocity-express/internal/domain"
)

// EventPublisher is what the kafka producer offers to the services.
type EventPublisher interface {
	PublishShipmentEvent(ctx context.Context, ev domain.ShipmentEvent) error
}

type nopPublisher struct{}

func (nopPublisher) PublishShipmentEvent(context.Context, domain.ShipmentEvent) error { return nil }
