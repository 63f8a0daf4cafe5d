package instrumented_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/metrics"
	"github.com/tolyara/webshop/internal/storage/instrumented"
	"github.com/tolyara/webshop/internal/storage/memory"
)

func counterValue(t *testing.T, registry *prometheus.Registry, operation, outcome string) float64 {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "webshop_storage_operations_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, label := range metric.GetLabel() {
				labels[label.GetName()] = label.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestWrap_CountsOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	storage := instrumented.Wrap(memory.NewStorage(), metrics.NewStorageMetricsWithRegisterer(registry))

	if _, err := storage.AddProduct(domain.Product{Name: "chair", ManufacturerName: "Acme", Size: "M", Amount: 1}); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := storage.ProductByID(999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := storage.FindProducts(domain.ProductFilter{MinPrice: "bad"}); err == nil {
		t.Fatal("expected filter error")
	}

	if got := counterValue(t, registry, "AddProduct", "ok"); got != 1 {
		t.Fatalf("expected 1 ok AddProduct, got %f", got)
	}
	if got := counterValue(t, registry, "ProductByID", "not_found"); got != 1 {
		t.Fatalf("expected 1 not_found ProductByID, got %f", got)
	}
	if got := counterValue(t, registry, "FindProducts", "error"); got != 1 {
		t.Fatalf("expected 1 error FindProducts, got %f", got)
	}
}

func TestWrap_PassesValuesThrough(t *testing.T) {
	registry := prometheus.NewRegistry()
	storage := instrumented.Wrap(memory.NewStorage("Acme"), metrics.NewStorageMetricsWithRegisterer(registry))

	id, err := storage.AddProduct(domain.Product{Name: "chair", ManufacturerName: "Acme", Size: "M", Amount: 1})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	stored, err := storage.ProductByID(id)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if stored.Name != "chair" {
		t.Fatalf("unexpected product: %+v", stored)
	}

	manufacturers, err := storage.Manufacturers()
	if err != nil {
		t.Fatalf("manufacturers: %v", err)
	}
	if len(manufacturers) != 1 {
		t.Fatalf("expected seeded manufacturer, got %d", len(manufacturers))
	}
}
