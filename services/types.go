package services

import (
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListFilters carries the raw optional query parameters for product
// listings. Values that fail to parse are ignored by the pipeline builder.
type ListFilters struct {
	ExactPrice string
	LTEPrice   string
	GTEPrice   string
	Name       string
	Options    string
}

// ProductListResult is one page of products plus derived pagination metadata.
type ProductListResult struct {
	Metadata ListMetadata
	Products []models.Product
}

type ProductCreateRequest struct {
	Name        string
	Description string
	Variants    []models.Variant
	CategoryID  *primitive.ObjectID
	BrandID     *primitive.ObjectID
}

// ProductUpdateRequest uses pointers so absent fields are left untouched.
// A reference pointing at the zero ObjectID clears the stored reference.
type ProductUpdateRequest struct {
	Name        *string
	Description *string
	Variants    []models.Variant
	CategoryID  *primitive.ObjectID
	BrandID     *primitive.ObjectID
}

// VariantUpdateRequest is a partial update of a single variant. Options and
// Quantity are validated together when either is supplied.
type VariantUpdateRequest struct {
	Image     *string
	Attribute *string
	Price     *float64
	Options   []string
	Quantity  map[string]int
}

type CategoryCreateRequest struct {
	Name             string
	ParentCategoryID string
}

// CategoryUpdateRequest leaves absent fields untouched; a non-empty
// ParentCategoryID triggers a path recompute.
type CategoryUpdateRequest struct {
	Name             string
	ParentCategoryID string
}

type SignUpRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUpdateRequest uses pointers so absent fields are left untouched.
type UserUpdateRequest struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}
