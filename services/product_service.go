package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productFacet mirrors the output of the pipeline's $facet stage.
type productFacet struct {
	Metadata []struct {
		TotalProducts int64 `bson:"totalProducts"`
	} `bson:"metadata"`
	Products []models.Product `bson:"products"`
}

func (f productFacet) total() int64 {
	if len(f.Metadata) == 0 {
		return 0
	}
	return f.Metadata[0].TotalProducts
}

type ProductService struct {
	products *repository.ProductRepository
}

func NewProductService(products *repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if err := ValidateVariants(req.Variants); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        TitleCase(req.Name),
		Description: req.Description,
		Variants:    assignVariantIDs(req.Variants),
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Insert(ctx, product); err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

func (s *ProductService) GetVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindVariant(ctx, id, variantID)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

// List executes the filter pipeline and derives pagination metadata from the
// facet's exact count.
func (s *ProductService) List(ctx context.Context, page int, filters ListFilters) (*ProductListResult, error) {
	pipeline := NewProductPipeline(page).
		WithPriceFilter(filters.ExactPrice, filters.LTEPrice, filters.GTEPrice).
		WithOptions(filters.Options).
		WithName(filters.Name)

	var facets []productFacet
	if err := s.products.Aggregate(ctx, pipeline.Build(), &facets); err != nil {
		return nil, err
	}
	if len(facets) == 0 {
		return &ProductListResult{Metadata: NewListMetadata(0, page, 0), Products: []models.Product{}}, nil
	}

	facet := facets[0]
	if facet.Products == nil {
		facet.Products = []models.Product{}
	}
	return &ProductListResult{
		Metadata: NewListMetadata(facet.total(), page, len(facet.Products)),
		Products: facet.Products,
	}, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req ProductUpdateRequest) (*models.Product, error) {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = TitleCase(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Variants != nil {
		if err := ValidateVariants(req.Variants); err != nil {
			return nil, err
		}
		updates["variants"] = assignVariantIDs(req.Variants)
	}
	if req.CategoryID != nil {
		updates["categoryId"] = refValue(*req.CategoryID)
	}
	if req.BrandID != nil {
		updates["brandId"] = refValue(*req.BrandID)
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("Validation Error", "No update fields provided")
	}

	product, err := s.products.UpdateByID(ctx, id, updates)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

func (s *ProductService) UpdateVariant(ctx context.Context, id, variantID primitive.ObjectID, req VariantUpdateRequest) (*models.Product, error) {
	updates := bson.M{}
	if req.Image != nil {
		updates["variants.$.image"] = *req.Image
	}
	if req.Attribute != nil {
		updates["variants.$.attribute"] = *req.Attribute
	}
	if req.Price != nil {
		updates["variants.$.price"] = *req.Price
	}

	if req.Options != nil || req.Quantity != nil {
		normalized, err := s.normalizedVariantStock(ctx, id, variantID, req)
		if err != nil {
			return nil, err
		}
		updates["variants.$.options"] = normalized.Options
		updates["variants.$.quantity"] = normalized.Quantity
	}

	if len(updates) == 0 {
		return nil, apperrors.BadRequest("Validation Error", "No update fields provided")
	}

	product, err := s.products.UpdateVariant(ctx, id, variantID, updates)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

// normalizedVariantStock merges the requested options/quantity with the
// stored variant so a partial update still satisfies the option/quantity
// key-set invariant.
func (s *ProductService) normalizedVariantStock(ctx context.Context, id, variantID primitive.ObjectID, req VariantUpdateRequest) (*models.Variant, error) {
	current, err := s.products.FindVariant(ctx, id, variantID)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	if len(current.Variants) == 0 {
		return nil, errors.New("variant projection returned no variants")
	}

	variant := current.Variants[0]
	if req.Options != nil {
		variant.Options = req.Options
	}
	if req.Quantity != nil {
		variant.Quantity = req.Quantity
	}

	candidate := []models.Variant{variant}
	if err := ValidateVariants(candidate); err != nil {
		return nil, err
	}
	return &candidate[0], nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.DeleteByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

func (s *ProductService) DeleteVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.PullVariant(ctx, id, variantID)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return product, nil
}

// refValue maps a requested reference onto its stored form: the zero id
// clears the reference.
func refValue(id primitive.ObjectID) interface{} {
	if id.IsZero() {
		return nil
	}
	return id
}

func assignVariantIDs(variants []models.Variant) []models.Variant {
	for i := range variants {
		if variants[i].ID.IsZero() {
			variants[i].ID = primitive.NewObjectID()
		}
	}
	return variants
}

// mergeSortProducts re-sorts products merged from a subtree fan-out by
// creation time and cuts the result to one page. The store cannot paginate
// across a $lookup fan-out in a single pass, so the merged set is re-paged
// here before the page-size cutoff.
func mergeSortProducts(products []models.Product) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	if len(sorted) > PageSize {
		sorted = sorted[:PageSize]
	}
	return sorted
}
