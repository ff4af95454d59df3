package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownEnum = errors.New("unknown enum value")

type ShipmentStatus uint8

const (
	StatusPending ShipmentStatus = iota + 1
	StatusPickedUp
	StatusInTransit
	StatusOutForDelivery
	StatusDelivered
	StatusFailed
	StatusCancelled
)

var statusNames = map[ShipmentStatus]string{
	StatusPending:        "pending",
	StatusPickedUp:       "picked_up",
	StatusInTransit:      "in_transit",
	StatusOutForDelivery: "out_for_delivery",
	StatusDelivered:      "delivered",
	StatusFailed:         "failed",
	StatusCancelled:      "cancelled",
}

// Statuses lists every status in lifecycle order.
func Statuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusFailed, StatusCancelled,
	}
}

func (s ShipmentStatus) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ShipmentStatus(%d)", uint8(s))
}

func (s ShipmentStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func ParseShipmentStatus(v string) (ShipmentStatus, error) {
	for s, n := range statusNames {
		if n == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("shipment status %q: %w", v, ErrUnknownEnum)
}

func (s ShipmentStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("shipment status %d: %w", uint8(s), ErrUnknownEnum)
	}
	return []byte(s.String()), nil
}

func (s *ShipmentStatus) UnmarshalText(b []byte) error {
	v, err := ParseShipmentStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type ServiceType uint8

const (
	ServiceRegular ServiceType = iota + 1
	ServiceExpress
	ServiceDrone
)

var serviceNames = map[ServiceType]string{
	ServiceRegular: "regular",
	ServiceExpress: "express",
	ServiceDrone:   "drone",
}

func (s ServiceType) String() string {
	if n, ok := serviceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("ServiceType(%d)", uint8(s))
}

func (s ServiceType) Valid() bool {
	_, ok := serviceNames[s]
	return ok
}

func ParseServiceType(v string) (ServiceType, error) {
	for s, n := range serviceNames {
		if n == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("service type %q: %w", v, ErrUnknownEnum)
}

func (s ServiceType) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("service type %d: %w", uint8(s), ErrUnknownEnum)
	}
	return []byte(s.String()), nil
}

func (s *ServiceType) UnmarshalText(b []byte) error {
	v, err := ParseServiceType(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type PackageType uint8

const (
	PackageDocument PackageType = iota + 1
	PackageParcel
	PackageElectronics
	PackageClothing
	PackageFood
	PackageOther
)

var packageNames = map[PackageType]string{
	PackageDocument:    "document",
	PackageParcel:      "parcel",
	PackageElectronics: "electronics",
	PackageClothing:    "clothing",
	PackageFood:        "food",
	PackageOther:       "other",
}

func (p PackageType) String() string {
	if n, ok := packageNames[p]; ok {
		return n
	}
	return fmt.Sprintf("PackageType(%d)", uint8(p))
}

func (p PackageType) Valid() bool {
	_, ok := packageNames[p]
	return ok
}

func ParsePackageType(v string) (PackageType, error) {
	for p, n := range packageNames {
		if n == v {
			return p, nil
		}
	}
	return 0, fmt.Errorf("package type %q: %w", v, ErrUnknownEnum)
}

func (p PackageType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("package type %d: %w", uint8(p), ErrUnknownEnum)
	}
	return []byte(p.String()), nil
}

func (p *PackageType) UnmarshalText(b []byte) error {
	v, err := ParsePackageType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
