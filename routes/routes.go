package routes

import (
	"catalog-service/controllers"
	"catalog-service/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint under /api/v1. Signup and login are
// public; everything else requires a valid bearer token.
func RegisterRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	users *controllers.UserController,
	products *controllers.ProductController,
	categories *controllers.CategoryController,
	brands *controllers.BrandController,
) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", users.SignUp)
		auth.POST("/login", users.Login)

		user := auth.Group("/user", middleware.RequireAuth(jwtSecret))
		{
			user.GET("", users.Profile)
			user.PATCH("", users.UpdateProfile)
			user.DELETE("", users.DeleteProfile)
		}
	}

	productRoutes := v1.Group("/products", middleware.RequireAuth(jwtSecret))
	{
		productRoutes.POST("", products.CreateProduct)
		productRoutes.GET("", products.GetProducts)
		productRoutes.GET("/:id", middleware.CheckID("id"), products.GetProduct)
		productRoutes.PATCH("/:id", middleware.CheckID("id"), products.UpdateProduct)
		productRoutes.DELETE("/:id", middleware.CheckID("id"), products.DeleteProduct)
		productRoutes.GET("/:id/variants/:variantId",
			middleware.CheckID("id", "variantId"), products.GetProductVariant)
		productRoutes.PATCH("/:id/variants/:variantId",
			middleware.CheckID("id", "variantId"), products.UpdateProductVariant)
		productRoutes.DELETE("/:id/variants/:variantId",
			middleware.CheckID("id", "variantId"), products.DeleteProductVariant)
	}

	categoryRoutes := v1.Group("/categories", middleware.RequireAuth(jwtSecret))
	{
		categoryRoutes.POST("", categories.CreateCategory)
		categoryRoutes.GET("", categories.GetCategories)
		categoryRoutes.GET("/:id", middleware.CheckID("id"), categories.GetCategory)
		categoryRoutes.GET("/:id/products", middleware.CheckID("id"), categories.GetCategoryProducts)
		categoryRoutes.PUT("/:id", middleware.CheckID("id"), categories.UpdateCategory)
		categoryRoutes.DELETE("/:id", middleware.CheckID("id"), categories.DeleteCategory)
	}

	brandRoutes := v1.Group("/brands", middleware.RequireAuth(jwtSecret))
	{
		brandRoutes.POST("", brands.CreateBrand)
		brandRoutes.GET("", brands.GetBrands)
		brandRoutes.GET("/:id", middleware.CheckID("id"), brands.GetBrand)
		brandRoutes.GET("/:id/products", middleware.CheckID("id"), brands.GetBrandProducts)
		brandRoutes.PUT("/:id", middleware.CheckID("id"), brands.UpdateBrand)
		brandRoutes.DELETE("/:id", middleware.CheckID("id"), brands.DeleteBrand)
	}
}
