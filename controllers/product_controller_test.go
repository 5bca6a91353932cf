package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductService struct {
	lastPage    int
	lastFilters services.ListFilters
	lastCreate  services.ProductCreateRequest
	lastUpdate  services.ProductUpdateRequest
	listCalled  int

	createFn func(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error)
	getFn    func(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

func (f *fakeProductService) Create(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error) {
	f.lastCreate = req
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return &models.Product{Name: req.Name}, nil
}

func (f *fakeProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &models.Product{ID: id}, nil
}

func (f *fakeProductService) GetVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func (f *fakeProductService) List(ctx context.Context, page int, filters services.ListFilters) (*services.ProductListResult, error) {
	f.listCalled++
	f.lastPage = page
	f.lastFilters = filters
	return &services.ProductListResult{
		Metadata: services.NewListMetadata(0, page, 0),
		Products: []models.Product{},
	}, nil
}

func (f *fakeProductService) Update(ctx context.Context, id primitive.ObjectID, req services.ProductUpdateRequest) (*models.Product, error) {
	f.lastUpdate = req
	return &models.Product{ID: id}, nil
}

func (f *fakeProductService) UpdateVariant(ctx context.Context, id, variantID primitive.ObjectID, req services.VariantUpdateRequest) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func (f *fakeProductService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return &models.Product{ID: id, Name: "Iphone 13"}, nil
}

func (f *fakeProductService) DeleteVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error) {
	return &models.Product{ID: id}, nil
}

func newProductRouter(service ProductServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewProductController(service)
	router := gin.New()
	router.POST("/products", controller.CreateProduct)
	router.GET("/products", controller.GetProducts)
	router.GET("/products/:id", controller.GetProduct)
	router.PATCH("/products/:id", controller.UpdateProduct)
	router.DELETE("/products/:id", controller.DeleteProduct)
	return router
}

func TestGetProductsPassesFilters(t *testing.T) {
	fake := &fakeProductService{}
	router := newProductRouter(fake)

	req := httptest.NewRequest(http.MethodGet,
		"/products?page=3&exactPrice=25&name=shirt&options=RED,BLUE", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if fake.listCalled != 1 {
		t.Fatalf("expected list to be called once, got %d", fake.listCalled)
	}
	if fake.lastPage != 3 {
		t.Errorf("expected page 3, got %d", fake.lastPage)
	}
	if fake.lastFilters.ExactPrice != "25" || fake.lastFilters.Name != "shirt" || fake.lastFilters.Options != "RED,BLUE" {
		t.Errorf("unexpected filters: %+v", fake.lastFilters)
	}
}

func TestGetProductsBadPageDefaultsToOne(t *testing.T) {
	fake := &fakeProductService{}
	router := newProductRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/products?page=abc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if fake.lastPage != 1 {
		t.Errorf("expected page 1, got %d", fake.lastPage)
	}
}

func TestCreateProduct(t *testing.T) {
	fake := &fakeProductService{}
	router := newProductRouter(fake)

	body := `{
		"name": "iphone 13",
		"description": "A phone",
		"variants": [{
			"image": "https://cdn.example.com/a.png",
			"attribute": "Color",
			"price": 999.99,
			"options": ["red"],
			"quantity": {"red": 5}
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if len(fake.lastCreate.Variants) != 1 || fake.lastCreate.Variants[0].Attribute != "Color" {
		t.Errorf("variants not passed through: %+v", fake.lastCreate.Variants)
	}
	if fake.lastCreate.CategoryID != nil || fake.lastCreate.BrandID != nil {
		t.Error("absent references should stay nil")
	}
}

func TestCreateProductMalformedJSON(t *testing.T) {
	router := newProductRouter(&fakeProductService{})

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestCreateProductMissingVariants(t *testing.T) {
	router := newProductRouter(&fakeProductService{})

	req := httptest.NewRequest(http.MethodPost, "/products",
		strings.NewReader(`{"name": "iphone", "description": "A phone"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestCreateProductBadReferenceID(t *testing.T) {
	router := newProductRouter(&fakeProductService{})

	body := `{
		"name": "iphone",
		"description": "A phone",
		"categoryId": "not-an-id",
		"variants": [{
			"image": "x",
			"attribute": "Color",
			"price": 1,
			"options": ["red"],
			"quantity": {"red": 1}
		}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid Id: not-an-id") {
		t.Errorf("unexpected body %s", recorder.Body.String())
	}
}

func TestUpdateProductClearsReference(t *testing.T) {
	fake := &fakeProductService{}
	router := newProductRouter(fake)

	brand := primitive.NewObjectID()
	body := `{"categoryId": "", "brandId": "` + brand.Hex() + `"}`
	req := httptest.NewRequest(http.MethodPatch,
		"/products/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if fake.lastUpdate.CategoryID == nil || !fake.lastUpdate.CategoryID.IsZero() {
		t.Errorf("empty categoryId should clear the reference, got %v", fake.lastUpdate.CategoryID)
	}
	if fake.lastUpdate.BrandID == nil || *fake.lastUpdate.BrandID != brand {
		t.Errorf("brandId not passed through, got %v", fake.lastUpdate.BrandID)
	}
}

func TestUpdateProductAbsentReferencesUntouched(t *testing.T) {
	fake := &fakeProductService{}
	router := newProductRouter(fake)

	req := httptest.NewRequest(http.MethodPatch,
		"/products/"+primitive.NewObjectID().Hex(), strings.NewReader(`{"name": "shirt"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	if fake.lastUpdate.CategoryID != nil || fake.lastUpdate.BrandID != nil {
		t.Errorf("absent references should stay nil: %+v", fake.lastUpdate)
	}
}

func TestGetProductNotFound(t *testing.T) {
	fake := &fakeProductService{
		getFn: func(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
			return nil, apperrors.NotFound("Resource not found")
		},
	}
	router := newProductRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/products/"+primitive.NewObjectID().Hex(), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Resource not found") {
		t.Errorf("unexpected body %s", recorder.Body.String())
	}
}

func TestDeleteProductMessageNamesProduct(t *testing.T) {
	router := newProductRouter(&fakeProductService{})

	req := httptest.NewRequest(http.MethodDelete, "/products/"+primitive.NewObjectID().Hex(), nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Iphone 13 successfully deleted") {
		t.Errorf("unexpected body %s", recorder.Body.String())
	}
}
