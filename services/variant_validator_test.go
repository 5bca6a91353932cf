package services

import (
	"errors"
	"reflect"
	"testing"

	"catalog-service/apperrors"
	"catalog-service/models"
)

func TestValidateVariantsNormalizes(t *testing.T) {
	variants := []models.Variant{
		{
			Attribute: "Color",
			Options:   []string{"red", "RED", "blue"},
			Quantity:  map[string]int{"red": 3, "Blue": 0},
		},
	}

	if err := ValidateVariants(variants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(variants[0].Options, []string{"RED", "BLUE"}) {
		t.Errorf("options not deduplicated and upper-cased: %v", variants[0].Options)
	}
	want := map[string]int{"RED": 3, "BLUE": 0}
	if !reflect.DeepEqual(variants[0].Quantity, want) {
		t.Errorf("quantity keys not normalized: %v", variants[0].Quantity)
	}
}

func TestValidateVariantsDuplicateAttribute(t *testing.T) {
	variants := []models.Variant{
		{Attribute: "Size", Options: []string{"M"}, Quantity: map[string]int{"M": 1}},
		{Attribute: " size ", Options: []string{"L"}, Quantity: map[string]int{"L": 1}},
	}

	err := ValidateVariants(variants)
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Name != "Duplicate attribute" {
		t.Fatalf("expected duplicate attribute error, got %v", err)
	}
}

func TestValidateVariantsQuantityMismatch(t *testing.T) {
	cases := []struct {
		name    string
		variant models.Variant
	}{
		{
			"missing option count",
			models.Variant{Attribute: "Size", Options: []string{"M", "L"}, Quantity: map[string]int{"M": 1}},
		},
		{
			"extra quantity key",
			models.Variant{Attribute: "Size", Options: []string{"M"}, Quantity: map[string]int{"M": 1, "XL": 2}},
		},
		{
			"no options",
			models.Variant{Attribute: "Size", Quantity: map[string]int{"M": 1}},
		},
		{
			"nil quantity",
			models.Variant{Attribute: "Size", Options: []string{"M"}},
		},
	}

	for _, c := range cases {
		if err := ValidateVariants([]models.Variant{c.variant}); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestValidateVariantsNegativeCount(t *testing.T) {
	variants := []models.Variant{
		{Attribute: "Size", Options: []string{"M"}, Quantity: map[string]int{"M": -1}},
	}

	err := ValidateVariants(variants)
	var apiErr *apperrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Name != "Invalid quantity value" {
		t.Fatalf("expected invalid quantity error, got %v", err)
	}
}
