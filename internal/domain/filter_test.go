package domain

import (
	"errors"
	"testing"
)

func TestProductFilter_NormalizeDefaults(t *testing.T) {
	normalized, err := ProductFilter{}.Normalize()
	if err != nil {
		t.Fatalf("normalize empty filter: %v", err)
	}

	if normalized.ManufacturerPattern != "%" {
		t.Fatalf("expected manufacturer wildcard, got %q", normalized.ManufacturerPattern)
	}
	if normalized.MinPrice != 0 {
		t.Fatalf("expected min price 0, got %f", normalized.MinPrice)
	}
	if normalized.MaxPrice != 100_000_000.0 {
		t.Fatalf("expected max price ceiling, got %f", normalized.MaxPrice)
	}
	if normalized.ColourPattern != "%" {
		t.Fatalf("expected colour wildcard, got %q", normalized.ColourPattern)
	}
}

func TestProductFilter_NormalizeExplicitValues(t *testing.T) {
	filter := ProductFilter{
		ManufacturerName: "Acme%",
		MinPrice:         "10",
		MaxPrice:         "20.5",
		Colour:           "re_",
	}

	normalized, err := filter.Normalize()
	if err != nil {
		t.Fatalf("normalize filter: %v", err)
	}

	if normalized.ManufacturerPattern != "Acme%" {
		t.Fatalf("unexpected manufacturer pattern: %q", normalized.ManufacturerPattern)
	}
	if normalized.MinPrice != 10 || normalized.MaxPrice != 20.5 {
		t.Fatalf("unexpected price bounds: %f..%f", normalized.MinPrice, normalized.MaxPrice)
	}
	if normalized.ColourPattern != "re_" {
		t.Fatalf("unexpected colour pattern: %q", normalized.ColourPattern)
	}
}

func TestProductFilter_NormalizeBadBounds(t *testing.T) {
	if _, err := (ProductFilter{MinPrice: "cheap"}).Normalize(); !errors.Is(err, ErrPriceBoundInvalid) {
		t.Fatalf("expected ErrPriceBoundInvalid for min price, got %v", err)
	}
	if _, err := (ProductFilter{MaxPrice: "10,5"}).Normalize(); !errors.Is(err, ErrPriceBoundInvalid) {
		t.Fatalf("expected ErrPriceBoundInvalid for max price, got %v", err)
	}
}
