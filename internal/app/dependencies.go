package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/messaging/kafka"
	"github.com/tolyara/webshop/internal/metrics"
	"github.com/tolyara/webshop/internal/storage/instrumented"
	"github.com/tolyara/webshop/internal/storage/memory"
	"github.com/tolyara/webshop/internal/storage/postgres"
)

// Dependencies содержит собранные зависимости магазина.
type Dependencies struct {
	Storage domain.Storage
	// Store не nil только для драйвера postgres: даёт ping для health-проверки.
	Store    *postgres.Store
	Producer *kafka.Producer
	Logger   *log.Entry
}

// NewDependencies собирает хранилище по конфигурации, оборачивает его
// метриками и, если настроены брокеры, поднимает Kafka producer.
// Недоступный Kafka не мешает старту: магазин работает без публикации событий.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		deps.Storage = memory.NewStorage()
		logger.Info("using in-memory storage")
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoSchema {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
			logger.Info("database schema ensured")
		}
		deps.Store = store
		deps.Storage = postgres.NewStorage(store)
		logger.Info("using postgres storage")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	deps.Storage = instrumented.Wrap(deps.Storage, metrics.NewStorageMetrics())

	if cfg.KafkaBrokers != "" {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		producer, err := kafka.NewProducer(brokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.Producer = producer
			logger.WithField("brokers", brokers).Info("kafka producer initialized")
		}
	}

	return deps, nil
}

// Close освобождает собранные зависимости в обратном порядке.
func (d *Dependencies) Close() {
	if d.Producer != nil {
		if err := d.Producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.Storage != nil {
		if err := d.Storage.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close storage")
		}
	}
}
