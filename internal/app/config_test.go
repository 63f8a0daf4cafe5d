package app

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WEBSHOP_HTTP_ADDR",
		"WEBSHOP_METRICS_ADDR",
		"WEBSHOP_STORAGE_DRIVER",
		"WEBSHOP_POSTGRES_DSN",
		"WEBSHOP_AUTO_SCHEMA",
		"WEBSHOP_KAFKA_BROKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected http addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("expected metrics addr :9090, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverMemory {
		t.Errorf("expected memory driver by default, got %s", cfg.StorageDriver)
	}
	if cfg.KafkaBrokers != "" {
		t.Errorf("expected kafka disabled by default, got %s", cfg.KafkaBrokers)
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBSHOP_HTTP_ADDR", ":8888")
	t.Setenv("WEBSHOP_METRICS_ADDR", ":9999")
	t.Setenv("WEBSHOP_STORAGE_DRIVER", StorageDriverPostgres)
	t.Setenv("WEBSHOP_POSTGRES_DSN", "postgres://shop:shop@db:5432/shop")
	t.Setenv("WEBSHOP_AUTO_SCHEMA", "true")
	t.Setenv("WEBSHOP_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}

	if cfg.HTTPAddr != ":8888" {
		t.Errorf("expected http addr :8888, got %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9999" {
		t.Errorf("expected metrics addr :9999, got %s", cfg.MetricsAddr)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.StorageDriver)
	}
	if cfg.PostgresDSN != "postgres://shop:shop@db:5432/shop" {
		t.Errorf("unexpected dsn %s", cfg.PostgresDSN)
	}
	if !cfg.AutoSchema {
		t.Error("expected auto schema enabled")
	}
	if cfg.KafkaBrokers != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("unexpected kafka brokers %s", cfg.KafkaBrokers)
	}
}

func TestConfigFromEnv_BadAutoSchema(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBSHOP_AUTO_SCHEMA", "maybe")

	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for non-boolean WEBSHOP_AUTO_SCHEMA")
	}
}

func TestConfigValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for postgres driver without dsn")
	}
}

func TestConfigValidate_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "cassandra"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}
