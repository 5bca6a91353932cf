package services

import (
	"context"
	"time"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BrandWithProducts is a brand joined with a preview of its earliest
// products.
type BrandWithProducts struct {
	models.Brand `bson:",inline"`
	Products     []models.Product `bson:"brand_products" json:"products"`
}

// BrandListResult is one page of brands plus pagination metadata.
type BrandListResult struct {
	Metadata ListMetadata
	Brands   []models.Brand
}

type brandFacet struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Brands []models.Brand `bson:"brands"`
}

type brandListing struct {
	Name          string         `bson:"name"`
	BrandProducts []productFacet `bson:"brand_products"`
}

type BrandService struct {
	client   *mongo.Client
	brands   *repository.BrandRepository
	products *repository.ProductRepository
}

func NewBrandService(client *mongo.Client, brands *repository.BrandRepository, products *repository.ProductRepository) *BrandService {
	return &BrandService{
		client:   client,
		brands:   brands,
		products: products,
	}
}

func (s *BrandService) Create(ctx context.Context, name string) (*models.Brand, error) {
	now := time.Now().UTC()
	brand := &models.Brand{
		ID:        primitive.NewObjectID(),
		Name:      UpperName(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.brands.Insert(ctx, brand); err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return brand, nil
}

func (s *BrandService) Get(ctx context.Context, id primitive.ObjectID) (*models.Brand, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return brand, nil
}

// GetWithProducts fetches the brand along with up to five of its earliest
// products.
func (s *BrandService) GetWithProducts(ctx context.Context, id primitive.ObjectID) (*BrandWithProducts, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "brandId",
			"as":           "brand_products",
			"pipeline": bson.A{
				bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
				bson.D{{Key: "$limit", Value: previewLimit}},
			},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}

	var brands []BrandWithProducts
	if err := s.brands.Aggregate(ctx, pipeline, &brands); err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, apperrors.NotFound("Resource not found")
	}

	brand := brands[0]
	if brand.Products == nil {
		brand.Products = []models.Product{}
	}
	return &brand, nil
}

// List returns one alphabetical page of brands and an exact total.
func (s *BrandService) List(ctx context.Context, page int) (*BrandListResult, error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * PageSize

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"metadata": bson.A{bson.D{{Key: "$count", Value: "total"}}},
			"brands": bson.A{
				bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
				bson.D{{Key: "$skip", Value: skip}},
				bson.D{{Key: "$limit", Value: PageSize}},
			},
		}}},
	}

	var facets []brandFacet
	if err := s.brands.Aggregate(ctx, pipeline, &facets); err != nil {
		return nil, err
	}

	result := &BrandListResult{Metadata: NewListMetadata(0, page, 0), Brands: []models.Brand{}}
	if len(facets) == 0 {
		return result, nil
	}

	facet := facets[0]
	if facet.Brands != nil {
		result.Brands = facet.Brands
	}
	total := int64(0)
	if len(facet.Metadata) > 0 {
		total = facet.Metadata[0].Total
	}
	result.Metadata = NewListMetadata(total, page, len(result.Brands))
	return result, nil
}

// ListProducts pages the brand's products through the filter pipeline run
// inside a $lookup.
func (s *BrandService) ListProducts(ctx context.Context, id primitive.ObjectID, page int, filters ListFilters) (*ProductListResult, error) {
	if page < 1 {
		page = 1
	}

	productPipeline := NewProductPipeline(page).
		WithPriceFilter(filters.ExactPrice, filters.LTEPrice, filters.GTEPrice).
		WithOptions(filters.Options).
		WithName(filters.Name)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "brandId",
			"as":           "brand_products",
			"pipeline":     productPipeline.Build(),
		}}},
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}

	var listings []brandListing
	if err := s.brands.Aggregate(ctx, pipeline, &listings); err != nil {
		return nil, err
	}
	if len(listings) == 0 || len(listings[0].BrandProducts) == 0 {
		return nil, apperrors.NotFound("Resource not found")
	}

	facet := listings[0].BrandProducts[0]
	products := facet.Products
	if products == nil {
		products = []models.Product{}
	}

	metadata := NewListMetadata(facet.total(), page, len(products))
	metadata.BrandName = listings[0].Name

	return &ProductListResult{Metadata: metadata, Products: products}, nil
}

func (s *BrandService) Update(ctx context.Context, id primitive.ObjectID, name string) (*models.Brand, error) {
	brand, err := s.brands.UpdateByID(ctx, id, bson.M{"name": UpperName(name)})
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return brand, nil
}

// Delete removes the brand and, inside one transaction, either deletes
// every product referencing it or clears their brand reference.
func (s *BrandService) Delete(ctx context.Context, id primitive.ObjectID, cascade bool) (*models.Brand, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		brand, err := s.brands.DeleteByID(sc, id)
		if err != nil {
			return nil, apperrors.FromMongo(err)
		}

		if cascade {
			err = s.products.DeleteByRef(sc, "brandId", id)
		} else {
			err = s.products.DetachRef(sc, "brandId", id)
		}
		if err != nil {
			return nil, err
		}
		return brand, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Brand), nil
}
