package controllers

import (
	"context"
	"net/http"

	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryServiceAPI defines the category operations the controller depends on.
type CategoryServiceAPI interface {
	Create(ctx context.Context, req services.CategoryCreateRequest) (*models.Category, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	GetWithProducts(ctx context.Context, id primitive.ObjectID) (*services.CategoryWithProducts, error)
	List(ctx context.Context, page int) (*services.CategoryListResult, error)
	ListProducts(ctx context.Context, id primitive.ObjectID, page int, filters services.ListFilters) (*services.ProductListResult, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.CategoryUpdateRequest) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID, cascade bool) (*models.Category, error)
}

type CategoryController struct {
	service CategoryServiceAPI
}

func NewCategoryController(service CategoryServiceAPI) *CategoryController {
	return &CategoryController{service: service}
}

type createCategoryRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	ParentCategoryID string `json:"parentCategoryId"`
}

type updateCategoryRequest struct {
	Name             string `json:"name"`
	ParentCategoryID string `json:"parentCategoryId"`
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := ctrl.service.Create(c.Request.Context(), services.CategoryCreateRequest{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category successfully added",
		"data":    category,
	})
}

func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	result, err := ctrl.service.List(c.Request.Context(), parsePage(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": result.Metadata,
		"data":     result.Categories,
	})
}

func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id := objectIDParam(c, "id")

	if c.Query("include") == "products" {
		category, err := ctrl.service.GetWithProducts(c.Request.Context(), id)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": category})
		return
	}

	category, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}

func (ctrl *CategoryController) GetCategoryProducts(c *gin.Context) {
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

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON syntax"})
		return
	}

	category, err := ctrl.service.Update(c.Request.Context(), objectIDParam(c, "id"),
		services.CategoryUpdateRequest{
			Name:             req.Name,
			ParentCategoryID: req.ParentCategoryID,
		})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category successfully updated",
		"data":    category,
	})
}

func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	cascade := c.Query("include") == "products"

	category, err := ctrl.service.Delete(c.Request.Context(), objectIDParam(c, "id"), cascade)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": category.Name + " successfully deleted"})
}
