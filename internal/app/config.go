package app

import (
	"fmt"
	"os"
	"strconv"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска магазина.
type Config struct {
	// HTTPAddr — адрес HTTP API магазина.
	HTTPAddr string
	// MetricsAddr — адрес служебного сервера: /metrics, /healthz, /livez, /readyz.
	MetricsAddr string
	// StorageDriver — memory или postgres.
	StorageDriver string
	// PostgresDSN — строка подключения для драйвера postgres.
	PostgresDSN string
	// AutoSchema — накатывать DDL при старте (удобно для локальной разработки).
	AutoSchema bool
	// KafkaBrokers — список брокеров через запятую; пусто — события не публикуются.
	KafkaBrokers string
}

// DefaultConfig возвращает конфигурацию для локального запуска без внешних
// зависимостей: хранилище в памяти, Kafka выключен.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:      ":8080",
		MetricsAddr:   ":9090",
		StorageDriver: StorageDriverMemory,
	}
}

// ConfigFromEnv читает конфигурацию из переменных окружения WEBSHOP_*,
// отсутствующие переменные оставляют значения по умолчанию.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("WEBSHOP_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("WEBSHOP_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("WEBSHOP_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = v
	}
	if v := os.Getenv("WEBSHOP_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("WEBSHOP_AUTO_SCHEMA"); v != "" {
		autoSchema, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse WEBSHOP_AUTO_SCHEMA: %w", err)
		}
		cfg.AutoSchema = autoSchema
	}
	if v := os.Getenv("WEBSHOP_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}

	return cfg, cfg.Validate()
}

// Validate проверяет согласованность конфигурации.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("storage driver %q requires WEBSHOP_POSTGRES_DSN", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return nil
}
