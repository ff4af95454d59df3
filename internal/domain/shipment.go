package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidShipment = errors.New("invalid shipment")

type Shipment struct {
	ID                uuid.UUID      `json:"id" yaml:"id"`
	TrackingNumber    string         `json:"tracking_number" yaml:"tracking_number"`
	Status            ShipmentStatus `json:"status" yaml:"status"`
	Service           ServiceType    `json:"service" yaml:"service"`
	SenderName        string         `json:"sender_name" yaml:"sender_name"`
	SenderPhone       string         `json:"sender_phone" yaml:"sender_phone"`
	RecipientName     string         `json:"recipient_name" yaml:"recipient_name"`
	RecipientPhone    string         `json:"recipient_phone" yaml:"recipient_phone"`
	Destination       string         `json:"destination" yaml:"destination"`
	WeightKg          float64        `json:"weight_kg" yaml:"weight_kg"`
	Cost              int64          `json:"cost" yaml:"cost"`
	CreatedAt         time.Time      `json:"created_at" yaml:"created_at"`
	EstimatedDelivery time.Time      `json:"estimated_delivery" yaml:"estimated_delivery"`
}

func (s *Shipment) Validate() error {
	switch {
	case strings.TrimSpace(s.TrackingNumber) == "":
		return fmt.Errorf("%w: tracking_number is required", ErrInvalidShipment)
	case !s.Status.Valid():
		return fmt.Errorf("%w: status %d", ErrInvalidShipment, uint8(s.Status))
	case !s.Service.Valid():
		return fmt.Errorf("%w: service %d", ErrInvalidShipment, uint8(s.Service))
	case s.WeightKg <= 0:
		return fmt.Errorf("%w: weight_kg must be positive", ErrInvalidShipment)
	case s.Cost < 0:
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidShipment)
	}
	return nil
}

// ShipmentEvent is what goes over the wire to kafka.
type ShipmentEvent struct {
	Type       string    `json:"type"`
	Shipment   Shipment  `json:"shipment"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventShipmentCreated = "shipment.created"
	EventStatusChanged   = "shipment.status_changed"
)
