package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/tolyara/webshop/internal/domain"
)

func TestNewDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := NewDependencies(context.Background(), cfg, log.WithField("component", "test"))
	if err != nil {
		t.Fatalf("NewDependencies: %v", err)
	}
	defer deps.Close()

	if deps.Storage == nil {
		t.Fatal("expected storage to be built")
	}
	if deps.Store != nil {
		t.Error("memory driver should not open a postgres store")
	}
	if deps.Producer != nil {
		t.Error("kafka producer should stay nil without brokers")
	}

	// Хранилище за обёрткой метрик работает как обычно.
	id, err := deps.Storage.AddProduct(domain.Product{
		Name:             "chair",
		ManufacturerName: "Acme",
		Price:            15,
	})
	if err != nil {
		t.Fatalf("AddProduct through instrumented storage: %v", err)
	}
	if id == 0 {
		t.Error("expected generated product id")
	}
}

func TestNewDependencies_UnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "cassandra"

	if _, err := NewDependencies(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}
