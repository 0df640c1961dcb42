package cmd

import (
	"context"
	"fmt"

	"fleet-tracker/core/broker"
	"fleet-tracker/core/config"
	"fleet-tracker/core/database"
	"fleet-tracker/core/logger"
	"fleet-tracker/core/metrics"
	"fleet-tracker/core/reconcile"
	"fleet-tracker/core/storage"
	"fleet-tracker/core/store"
	"fleet-tracker/feature/tier"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pipeline is the wired reconciliation pipeline shared by start and reconcile.
type pipeline struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
	store      *store.Store
	client     *tier.Client
	reconciler *reconcile.Reconciler
	recorder   *metrics.Recorder

	meterProvider *sdkmetric.MeterProvider
	publisher     *broker.Publisher
}

// loadBase loads the configuration and builds the logger.
func loadBase() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newPipeline connects every dependency. Optional sinks (archive, broker, metrics) are only
// built when configured; a database or vendor problem is fatal.
func newPipeline(ctx context.Context, cfg *config.Config, l *zap.Logger) (*pipeline, error) {
	a := &pipeline{cfg: cfg, logger: l}

	// 1. Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.VerifySchema(db); err != nil {
		return nil, fmt.Errorf("%w (run the migrate command first)", err)
	}
	a.db = db
	a.store = store.New(db, store.DefaultBatchSize)
	l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	// 2. Vendor client (+ raw payload archive)
	a.client = tier.NewClient(cfg.Tier, l)
	if cfg.Storage.ArchiveEnabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive := storage.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.ArchivePrefix)
		if err := archive.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
			return nil, err
		}
		a.client.SetArchiver(archive)
		l.Info("Archiving raw payloads", zap.String("bucket", cfg.Storage.Bucket))
	}

	// 3. Reconciler
	a.reconciler = reconcile.NewReconciler(
		a.client,
		reconcile.NewResolver(a.client),
		a.store,
		reconcile.NewZoneCache(),
		l,
	)

	// 4. Log feed
	if cfg.Broker.URL != "" {
		p, err := broker.Dial(cfg.Broker, l)
		if err != nil {
			return nil, err
		}
		a.publisher = p
		a.reconciler.SetPublisher(p)
	}

	// 5. Metrics
	mp, err := metrics.NewProvider(ctx, cfg.Metrics)
	if err != nil {
		return nil, err
	}
	a.meterProvider = mp
	if a.recorder, err = metrics.NewRecorder(mp); err != nil {
		return nil, fmt.Errorf("failed to create metric instruments: %w", err)
	}

	return a, nil
}

// Close flushes metrics and releases connections.
func (a *pipeline) Close(ctx context.Context) {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			a.logger.Warn("Failed to flush metrics", zap.Error(err))
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}
