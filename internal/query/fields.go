package query

import (
	"time"

	"github.com/RaikyD/velocity-express/internal/domain"
)

// ShipmentFields are the sortable columns of the shipment table.
var ShipmentFields = Fields[domain.Shipment]{
	"tracking_number":    StringField(func(s domain.Shipment) string { return s.TrackingNumber }),
	"recipient_name":     StringField(func(s domain.Shipment) string { return s.RecipientName }),
	"sender_name":        StringField(func(s domain.Shipment) string { return s.SenderName }),
	"destination":        StringField(func(s domain.Shipment) string { return s.Destination }),
	"status":             StringField(func(s domain.Shipment) string { return s.Status.String() }),
	"service":            StringField(func(s domain.Shipment) string { return s.Service.String() }),
	"weight_kg":          NumberField(func(s domain.Shipment) float64 { return s.WeightKg }),
	"cost":               NumberField(func(s domain.Shipment) int64 { return s.Cost }),
	"created_at":         TimeField(func(s domain.Shipment) time.Time { return s.CreatedAt }),
	"estimated_delivery": TimeField(func(s domain.Shipment) time.Time { return s.EstimatedDelivery }),
}

var TariffFields = Fields[domain.Tariff]{
	"name":         StringField(func(t domain.Tariff) string { return t.Name }),
	"service":      StringField(func(t domain.Tariff) string { return t.Service.String() }),
	"base_price":   NumberField(func(t domain.Tariff) int64 { return t.BasePrice }),
	"price_per_kg": NumberField(func(t domain.Tariff) int64 { return t.PricePerKg }),
	"updated_at":   TimeField(func(t domain.Tariff) time.Time { return t.UpdatedAt }),
}

var RateChangeFields = Fields[domain.RateChange]{
	"tariff_name": StringField(func(r domain.RateChange) string { return r.TariffName }),
	"changed_by":  StringField(func(r domain.RateChange) string { return r.ChangedBy }),
	"old_price":   NumberField(func(r domain.RateChange) int64 { return r.OldPrice }),
	"new_price":   NumberField(func(r domain.RateChange) int64 { return r.NewPrice }),
	"changed_at":  TimeField(func(r domain.RateChange) time.Time { return r.ChangedAt }),
}
