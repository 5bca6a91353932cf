package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/controllers"
	"catalog-service/database"
	"catalog-service/middleware"
	"catalog-service/repository"
	"catalog-service/routes"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, database.DB); err != nil {
		zap.L().Warn("Failed to ensure indexes", zap.Error(err))
	}
	indexCancel()

	jwtSecret := []byte(cfg.JWTSecret)

	// Wire the layers together.
	productRepo := repository.NewProductRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	brandRepo := repository.NewBrandRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(database.MongoClient, categoryRepo, productRepo)
	brandService := services.NewBrandService(database.MongoClient, brandRepo, productRepo)
	userService := services.NewUserService(userRepo, jwtSecret)

	productController := controllers.NewProductController(productService)
	categoryController := controllers.NewCategoryController(categoryService)
	brandController := controllers.NewBrandController(brandService)
	userController := controllers.NewUserController(userService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, jwtSecret, userController, productController, categoryController, brandController)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Catalog Service"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Catalog Service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down Catalog Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		zap.L().Error("Failed to close MongoDB", zap.Error(err))
	}

	zap.L().Info("Catalog Service stopped gracefully")
}
