package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/RaikyD/velocity-express/internal/application"
	"github.com/RaikyD/velocity-express/internal/config"
	"github.com/RaikyD/velocity-express/internal/fixtures"
	"github.com/RaikyD/velocity-express/internal/kafka"
	"github.com/RaikyD/velocity-express/internal/logger"
	"github.com/RaikyD/velocity-express/internal/migrate"
	"github.com/RaikyD/velocity-express/internal/presentation"
	"github.com/RaikyD/velocity-express/internal/pricing"
	"github.com/RaikyD/velocity-express/internal/query"
	"github.com/RaikyD/velocity-express/internal/repository"
)

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		shipRepo   repository.ShipmentRepo
		tariffRepo repository.TariffRepo
	)
	if cfg.MemoryMode() {
		mem := repository.NewMemoryStore()
		shipRepo, tariffRepo = mem, mem
		logger.Info("using in-memory store")
	} else {
		if err := migrate.Up(cfg.DB_STRING); err != nil {
			return err
		}
		// DB pool
		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			return err
		}
		logger.Info("db connected")
		pg := repository.NewPostgresStore(pool)
		shipRepo, tariffRepo = pg, pg
	}

	if cfg.SEED_FIXTURES {
		set, err := fixtures.Load()
		if err != nil {
			return err
		}
		if err := fixtures.Seed(ctx, set, shipRepo, tariffRepo); err != nil {
			return err
		}
	}

	sorter, err := query.NewSorter(cfg.COLLATION_LOCALE)
	if err != nil {
		return err
	}

	var pub application.EventPublisher
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		pub = prod
	}

	// Wiring
	shipments := application.NewShipmentsService(shipRepo, pub, sorter)
	tariffs := application.NewTariffsService(tariffRepo, sorter)
	est := pricing.NewEstimator(pricing.DefaultRates)

	if err := shipments.RestoreCache(ctx, 1000); err != nil {
		logger.Warn("restore cache failed", "err", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           presentation.NewRouter(shipments, tariffs, est),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.KafkaEnabled() {
		r := kafka.NewReader(kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
		logger.Info("kafka consumer starting", "brokers", cfg.KAFKA_BROKERS, "topic", cfg.KAFKA_TOPIC, "group", cfg.KAFKA_GROUP_ID)
		g.Go(func() error {
			return kafka.Consume(gctx, r, shipments)
		})
	}
	g.Go(func() error {
		logger.Info("starting http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("stopped", "err", err)
	return err
}
