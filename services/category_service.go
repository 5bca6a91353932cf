package services

import (
	"context"
	"errors"
	"time"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// previewLimit caps the products embedded in a single-category fetch with
// include=products.
const previewLimit = 5

// ChildPath extends a parent's materialized path with the child's own id.
// A root category's path is just "<ownId>/". Each id occupies its own
// slash-delimited segment, so a subtree is every category whose path
// contains the ancestor's id.
func ChildPath(parentPath string, id primitive.ObjectID) string {
	return parentPath + id.Hex() + "/"
}

// CategoryWithProducts is a category joined with a preview of the earliest
// products filed under it or any descendant.
type CategoryWithProducts struct {
	models.Category `bson:",inline"`
	Products        []models.Product `bson:"category_products" json:"products"`
}

// CategoryListResult is one page of categories plus pagination metadata.
type CategoryListResult struct {
	Metadata   ListMetadata
	Categories []models.Category
}

type categoryFacet struct {
	Metadata []struct {
		Total int64 `bson:"total"`
	} `bson:"metadata"`
	Categories []models.Category `bson:"categories"`
}

// subtreeListing is one subtree category with its pipeline facet from the
// products $lookup.
type subtreeListing struct {
	Name             string         `bson:"name"`
	CategoryProducts []productFacet `bson:"category_products"`
}

type CategoryService struct {
	client     *mongo.Client
	categories *repository.CategoryRepository
	products   *repository.ProductRepository
}

func NewCategoryService(client *mongo.Client, categories *repository.CategoryRepository, products *repository.ProductRepository) *CategoryService {
	return &CategoryService{
		client:     client,
		categories: categories,
		products:   products,
	}
}

// Create resolves the optional parent, computes the materialized path, and
// persists the category. A parent id that resolves to nothing is rejected
// before anything is written.
func (s *CategoryService) Create(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	id := primitive.NewObjectID()

	parentPath := ""
	if req.ParentCategoryID != "" {
		parent, err := s.resolveParent(ctx, req.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		parentPath = parent.ParentPath
	}

	now := time.Now().UTC()
	category := &models.Category{
		ID:         id,
		Name:       TitleCase(req.Name),
		ParentPath: ChildPath(parentPath, id),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return category, nil
}

func (s *CategoryService) resolveParent(ctx context.Context, parentID string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, apperrors.BadRequest("Validation Error", "Invalid Id: "+parentID)
	}

	parent, err := s.categories.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.BadRequest("Invalid Parent Category Id",
			parentID+" does not belong to any category")
	}
	if err != nil {
		return nil, err
	}
	return parent, nil
}

func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return category, nil
}

// GetWithProducts fetches the category along with up to five of the
// earliest products filed under it or any descendant. The subtree match is
// a substring match of the id against every stored path; results from all
// matching categories are merged up to the preview limit.
func (s *CategoryService) GetWithProducts(ctx context.Context, id primitive.ObjectID) (*CategoryWithProducts, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "categoryId",
			"as":           "category_products",
			"pipeline": bson.A{
				bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
				bson.D{{Key: "$limit", Value: previewLimit}},
			},
		}}},
		bson.D{{Key: "$match", Value: bson.M{"parentPath": primitive.Regex{Pattern: id.Hex()}}}},
	}

	var subtree []CategoryWithProducts
	if err := s.categories.Aggregate(ctx, pipeline, &subtree); err != nil {
		return nil, err
	}
	if len(subtree) == 0 {
		return nil, apperrors.NotFound("Resource not found")
	}

	category := subtree[0]
	for _, descendant := range subtree[1:] {
		if len(category.Products) >= previewLimit {
			break
		}
		category.Products = append(category.Products, descendant.Products...)
	}
	if len(category.Products) > previewLimit {
		category.Products = category.Products[:previewLimit]
	}
	if category.Products == nil {
		category.Products = []models.Product{}
	}
	return &category, nil
}

// List returns one alphabetical page of categories and an exact total.
func (s *CategoryService) List(ctx context.Context, page int) (*CategoryListResult, error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * PageSize

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{}}},
		bson.D{{Key: "$facet", Value: bson.M{
			"metadata": bson.A{bson.D{{Key: "$count", Value: "total"}}},
			"categories": bson.A{
				bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
				bson.D{{Key: "$skip", Value: skip}},
				bson.D{{Key: "$limit", Value: PageSize}},
			},
		}}},
	}

	var facets []categoryFacet
	if err := s.categories.Aggregate(ctx, pipeline, &facets); err != nil {
		return nil, err
	}

	result := &CategoryListResult{Metadata: NewListMetadata(0, page, 0), Categories: []models.Category{}}
	if len(facets) == 0 {
		return result, nil
	}

	facet := facets[0]
	if facet.Categories != nil {
		result.Categories = facet.Categories
	}
	total := int64(0)
	if len(facet.Metadata) > 0 {
		total = facet.Metadata[0].Total
	}
	result.Metadata = NewListMetadata(total, page, len(result.Categories))
	return result, nil
}

// ListProducts pages the products of the category's whole subtree. The
// filter pipeline runs inside a $lookup against every matching subtree
// category, then the per-category pages are merged, re-sorted by creation
// time, and cut to the page size; totals are summed across the fan-out.
func (s *CategoryService) ListProducts(ctx context.Context, id primitive.ObjectID, page int, filters ListFilters) (*ProductListResult, error) {
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
			"foreignField": "categoryId",
			"as":           "category_products",
			"pipeline":     productPipeline.Build(),
		}}},
		bson.D{{Key: "$match", Value: bson.M{"parentPath": primitive.Regex{Pattern: id.Hex()}}}},
	}

	var subtree []subtreeListing
	if err := s.categories.Aggregate(ctx, pipeline, &subtree); err != nil {
		return nil, err
	}
	if len(subtree) == 0 {
		return nil, apperrors.NotFound("Resource not found")
	}

	var total int64
	var merged []models.Product
	for _, listing := range subtree {
		for _, facet := range listing.CategoryProducts {
			total += facet.total()
			merged = append(merged, facet.Products...)
		}
	}
	merged = mergeSortProducts(merged)
	if merged == nil {
		merged = []models.Product{}
	}

	metadata := NewListMetadata(total, page, len(merged))
	metadata.CategoryName = subtree[0].Name

	return &ProductListResult{Metadata: metadata, Products: merged}, nil
}

func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, req CategoryUpdateRequest) (*models.Category, error) {
	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = TitleCase(req.Name)
	}
	if req.ParentCategoryID != "" {
		parent, err := s.resolveParent(ctx, req.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		// Only the moved category's own path is rewritten; descendant paths
		// are not cascaded.
		updates["parentPath"] = ChildPath(parent.ParentPath, id)
	}
	if len(updates) == 0 {
		return nil, apperrors.BadRequest("Validation Error", "No update fields provided")
	}

	category, err := s.categories.UpdateByID(ctx, id, updates)
	if err != nil {
		return nil, apperrors.FromMongo(err)
	}
	return category, nil
}

// Delete removes the category and, inside one transaction, either deletes
// every product referencing it or clears their category reference.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID, cascade bool) (*models.Category, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		category, err := s.categories.DeleteByID(sc, id)
		if err != nil {
			return nil, apperrors.FromMongo(err)
		}

		if cascade {
			err = s.products.DeleteByRef(sc, "categoryId", id)
		} else {
			err = s.products.DetachRef(sc, "categoryId", id)
		}
		if err != nil {
			return nil, err
		}
		return category, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.Category), nil
}
