package controllers

import (
	"context"
	"net/http"

	"catalog-service/apperrors"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductServiceAPI defines the product operations the controller depends on.
type ProductServiceAPI interface {
	Create(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, page int, filters services.ListFilters) (*services.ProductListResult, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.ProductUpdateRequest) (*models.Product, error)
	UpdateVariant(ctx context.Context, id, variantID primitive.ObjectID, req services.VariantUpdateRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DeleteVariant(ctx context.Context, id, variantID primitive.ObjectID) (*models.Product, error)
}

type ProductController struct {
	service ProductServiceAPI
}

func NewProductController(service ProductServiceAPI) *ProductController {
	return &ProductController{service: service}
}

type variantRequest struct {
	Image     string         `json:"image" validate:"required"`
	Attribute string         `json:"attribute" validate:"required,max=50"`
	Price     float64        `json:"price" validate:"required"`
	Options   []string       `json:"options" validate:"required,min=1"`
	Quantity  map[string]int `json:"quantity" validate:"required"`
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description" validate:"required,max=500"`
	Variants    []variantRequest `json:"variants" validate:"required,min=1,dive"`
	CategoryID  string           `json:"categoryId"`
	BrandID     string           `json:"brandId"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Variants    []variantRequest `json:"variants"`
	CategoryID  *string          `json:"categoryId"`
	BrandID     *string          `json:"brandId"`
}

type updateVariantRequest struct {
	Image     *string        `json:"image"`
	Attribute *string        `json:"attribute"`
	Price     *float64       `json:"price"`
	Options   []string       `json:"options"`
	Quantity  map[string]int `json:"quantity"`
}

func toVariants(reqs []variantRequest) []models.Variant {
	variants := make([]models.Variant, len(reqs))
	for i, r := range reqs {
		variants[i] = models.Variant{
			Image:     r.Image,
			Attribute: r.Attribute,
			Price:     r.Price,
			Options:   r.Options,
			Quantity:  r.Quantity,
		}
	}
	return variants
}

// parseRef converts an optional reference id; empty means no reference.
func parseRef(value string) (*primitive.ObjectID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, apperrors.BadRequest("Validation Error", "Invalid Id: "+value)
	}
	return &id, nil
}

// parseRefUpdate converts a reference id supplied on an update. An empty
// string is an explicit clear, carried as the zero ObjectID.
func parseRefUpdate(value string) (*primitive.ObjectID, error) {
	if value == "" {
		cleared := primitive.NilObjectID
		return &cleared, nil
	}
	return parseRef(value)
}

func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categoryID, err := parseRef(req.CategoryID)
	if err != nil {
		renderError(c, err)
		return
	}
	brandID, err := parseRef(req.BrandID)
	if err != nil {
		renderError(c, err)
		return
	}

	product, err := ctrl.service.Create(c.Request.Context(), services.ProductCreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Variants:    toVariants(req.Variants),
		CategoryID:  categoryID,
		BrandID:     brandID,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product successfully added",
		"data":    product,
	})
}

func (ctrl *ProductController) GetProducts(c *gin.Context) {
	result, err := ctrl.service.List(c.Request.Context(), parsePage(c), parseFilters(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": result.Metadata,
		"data":     result.Products,
	})
}

func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.service.Get(c.Request.Context(), objectIDParam(c, "id"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (ctrl *ProductController) GetProductVariant(c *gin.Context) {
	product, err := ctrl.service.GetVariant(c.Request.Context(),
		objectIDParam(c, "id"), objectIDParam(c, "variantId"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}

	serviceReq := services.ProductUpdateRequest{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Variants != nil {
		serviceReq.Variants = toVariants(req.Variants)
	}
	if req.CategoryID != nil {
		id, err := parseRefUpdate(*req.CategoryID)
		if err != nil {
			renderError(c, err)
			return
		}
		serviceReq.CategoryID = id
	}
	if req.BrandID != nil {
		id, err := parseRefUpdate(*req.BrandID)
		if err != nil {
			renderError(c, err)
			return
		}
		serviceReq.BrandID = id
	}

	product, err := ctrl.service.Update(c.Request.Context(), objectIDParam(c, "id"), serviceReq)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product successfully updated",
		"data":    product,
	})
}

func (ctrl *ProductController) UpdateProductVariant(c *gin.Context) {
	var req updateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}

	product, err := ctrl.service.UpdateVariant(c.Request.Context(),
		objectIDParam(c, "id"), objectIDParam(c, "variantId"),
		services.VariantUpdateRequest{
			Image:     req.Image,
			Attribute: req.Attribute,
			Price:     req.Price,
			Options:   req.Options,
			Quantity:  req.Quantity,
		})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product variant successfully updated",
		"data":    product,
	})
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	product, err := ctrl.service.Delete(c.Request.Context(), objectIDParam(c, "id"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": product.Name + " successfully deleted"})
}

func (ctrl *ProductController) DeleteProductVariant(c *gin.Context) {
	product, err := ctrl.service.DeleteVariant(c.Request.Context(),
		objectIDParam(c, "id"), objectIDParam(c, "variantId"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product variant successfully deleted",
		"data":    product,
	})
}
