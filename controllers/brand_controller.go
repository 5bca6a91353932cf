package controllers

import (
	"context"
	"net/http"

	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BrandServiceAPI defines the brand operations the controller depends on.
type BrandServiceAPI interface {
	Create(ctx context.Context, name string) (*models.Brand, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Brand, error)
	GetWithProducts(ctx context.Context, id primitive.ObjectID) (*services.BrandWithProducts, error)
	List(ctx context.Context, page int) (*services.BrandListResult, error)
	ListProducts(ctx context.Context, id primitive.ObjectID, page int, filters services.ListFilters) (*services.ProductListResult, error)
	Update(ctx context.Context, id primitive.ObjectID, name string) (*models.Brand, error)
	Delete(ctx context.Context, id primitive.ObjectID, cascade bool) (*models.Brand, error)
}

type BrandController struct {
	service BrandServiceAPI
}

func NewBrandController(service BrandServiceAPI) *BrandController {
	return &BrandController{service: service}
}

type brandRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (ctrl *BrandController) CreateBrand(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := ctrl.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand successfully added",
		"data":    brand,
	})
}

func (ctrl *BrandController) GetBrands(c *gin.Context) {
	result, err := ctrl.service.List(c.Request.Context(), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": result.Metadata,
		"data":     result.Brands,
	})
}

func (ctrl *BrandController) GetBrand(c *gin.Context) {
	id := objectIDParam(c, "id")

	if c.Query("include") == "products" {
		brand, err := ctrl.service.GetWithProducts(c.Request.Context(), id)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": brand})
		return
	}

	brand, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}

func (ctrl *BrandController) GetBrandProducts(c *gin.Context) {
	result, err := ctrl.service.ListProducts(c.Request.Context(),
		objectIDParam(c, "id"), parsePage(c), parseFilters(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": result.Metadata,
		"data":     result.Products,
	})
}

func (ctrl *BrandController) UpdateBrand(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := ctrl.service.Update(c.Request.Context(), objectIDParam(c, "id"), req.Name)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand successfully updated",
		"data":    brand,
	})
}

func (ctrl *BrandController) DeleteBrand(c *gin.Context) {
	cascade := c.Query("include") == "products"

	brand, err := ctrl.service.Delete(c.Request.Context(), objectIDParam(c, "id"), cascade)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": brand.Name + " successfully deleted"})
}
