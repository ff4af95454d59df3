package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/RaikyD/velocity-express/internal/domain"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/segmentio/kafka-go"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// Ingester is the part of the shipments service the consumer feeds.
type Ingester interface {
	Ingest(ctx context.Context, sh *domain.Shipment) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewReader(cfg ConsumerConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:         strings.Split(cfg.Brokers, ","),
		GroupID:         cfg.GroupID,
		Topic:           cfg.Topic,
		MinBytes:        1,
		MaxBytes:        10e6,
		CommitInterval:  0,
		StartOffset:     kafka.FirstOffset,
		ReadLagInterval: -1,
	})
}

// Consume blocks until ctx is done. Created events and bare shipments are
// ingested, other event types are committed without action. A failed
// ingest is retried with a backoff before the offset is committed.
func Consume(ctx context.Context, r messageReader, svc Ingester) error {
	defer r.Close()

	backoff := time.Millisecond * 300
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("kafka fetch error", "err", err)
			if !sleep(ctx, backoff) {
				return nil
			}
			continue
		}
		logger.Debug("shipment event fetched", "partition", m.Partition, "offset", m.Offset)

		sh, err := decode(m.Value)
		if err != nil {
			logger.Warn("kafka invalid message. skip and commit", "err", err)
			_ = r.CommitMessages(ctx, m)
			continue
		}

		if sh != nil {
			stored := ingest(ctx, svc, sh, backoff)
			if !stored && ctx.Err() != nil {
				return nil
			}
			if stored {
				logger.Info("shipment ingested", "tracking", sh.TrackingNumber)
			}
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			logger.Warn("[kafka] commit failed", "err", err)
		} else {
			logger.Debug("[kafka] committed", "topic", m.Topic, "partition", m.Partition, "offset", m.Offset)
		}
	}
}

// ingest retries the same shipment until it is stored, rejected as
// invalid, or ctx ends. It reports whether the shipment was stored.
func ingest(ctx context.Context, svc Ingester, sh *domain.Shipment, backoff time.Duration) bool {
	for {
		err := svc.Ingest(ctx, sh)
		if err == nil {
			return true
		}
		if errors.Is(err, domain.ErrInvalidShipment) {
			logger.Warn("kafka invalid shipment. skip and commit", "err", err)
			return false
		}
		logger.Warn("kafka ingest fail, will retry", "tracking", sh.TrackingNumber, "err", err)
		if !sleep(ctx, backoff) {
			return false
		}
	}
}

// decode accepts a ShipmentEvent envelope or a bare shipment. A nil
// shipment means there is nothing to ingest.
func decode(b []byte) (*domain.Shipment, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	if probe.Type == "" {
		var sh domain.Shipment
		if err := json.Unmarshal(b, &sh); err != nil {
			return nil, err
		}
		return &sh, nil
	}

	var ev domain.ShipmentEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, err
	}
	if ev.Type != domain.EventShipmentCreated {
		return nil, nil
	}
	return &ev.Shipment, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
