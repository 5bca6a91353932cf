package services

import (
	"testing"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAssignVariantIDs(t *testing.T) {
	existing := primitive.NewObjectID()
	variants := assignVariantIDs([]models.Variant{
		{Attribute: "Color"},
		{ID: existing, Attribute: "Size"},
	})

	if variants[0].ID.IsZero() {
		t.Error("new variant should receive an id")
	}
	if variants[1].ID != existing {
		t.Error("existing variant id should be preserved")
	}
}

func TestMergeSortProducts(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	products := make([]models.Product, PageSize+5)
	for i := range products {
		// Reverse creation order so the merge has to re-sort.
		products[i] = models.Product{
			Name:      "P",
			CreatedAt: base.Add(time.Duration(len(products)-i) * time.Minute),
		}
	}

	sorted := mergeSortProducts(products)

	if len(sorted) != PageSize {
		t.Fatalf("expected page cut to %d, got %d", PageSize, len(sorted))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].CreatedAt.Before(sorted[i-1].CreatedAt) {
			t.Fatalf("products not sorted by creation time at index %d", i)
		}
	}
	// Input order must be untouched.
	if !products[0].CreatedAt.After(products[1].CreatedAt) {
		t.Error("input slice was mutated")
	}
}

func TestRefValue(t *testing.T) {
	if got := refValue(primitive.NilObjectID); got != nil {
		t.Errorf("zero id should clear the reference, got %v", got)
	}

	id := primitive.NewObjectID()
	if got := refValue(id); got != interface{}(id) {
		t.Errorf("non-zero id should be stored as-is, got %v", got)
	}
}

func TestProductFacetTotal(t *testing.T) {
	var empty productFacet
	if empty.total() != 0 {
		t.Errorf("empty facet total = %d", empty.total())
	}

	facet := productFacet{
		Metadata: []struct {
			TotalProducts int64 `bson:"totalProducts"`
		}{{TotalProducts: 42}},
	}
	if facet.total() != 42 {
		t.Errorf("facet total = %d, want 42", facet.total())
	}
}
