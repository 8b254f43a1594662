package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-service/internal/cache"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/presenters"
	"catalog-service/internal/repository"
)

// @title Catalog Service API
// @version 1.0.0
// @description Product catalog backend: categories, subcategories, products, blogs and hero banners

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Cache backend: Redis when reachable, in-process memory otherwise
	var store cache.Store
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (falling back to in-memory cache)", err)
		} else {
			redisClient := redis.NewClient(redisOpts)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (falling back to in-memory cache)", err)
			} else {
				store = cache.NewRedisStore(redisClient)
				log.Println("✓ Redis connected successfully")
			}
			cancel()
		}
	}
	if store == nil {
		store = cache.NewMemoryStore()
		log.Println("✓ In-memory cache initialized")
	}
	catalogCache := cache.NewCatalog(store, logger)

	// NATS events publisher; nil when NATS_URL is unset
	eventsPublisher, err := events.NewPublisher(cfg.NATSURL, logger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
	}

	// Repositories
	categoryRepo := repository.NewCategoryRepository(db, catalogCache)
	subcategoryRepo := repository.NewSubcategoryRepository(db, catalogCache)
	productRepo := repository.NewProductRepository(db, catalogCache)
	blogRepo := repository.NewBlogRepository(db, catalogCache)
	bannerRepo := repository.NewHeroBannerRepository(db, catalogCache)

	urls := presenters.URLResolver{MediaBaseURL: cfg.MediaBaseURL}

	// Handlers
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, subcategoryRepo, eventsPublisher)
	subcategoryHandler := handlers.NewSubcategoryHandler(subcategoryRepo, categoryRepo, eventsPublisher)
	productHandler := handlers.NewProductHandler(productRepo, subcategoryRepo, eventsPublisher, urls)
	blogHandler := handlers.NewBlogHandler(blogRepo, urls)
	bannerHandler := handlers.NewHeroBannerHandler(bannerRepo, urls)
	importHandler := handlers.NewImportHandler(productRepo, subcategoryRepo)
	diagnosticsHandler := handlers.NewDiagnosticsHandler(db, catalogCache)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", diagnosticsHandler.ReadinessCheck)
	router.GET("/health/cache", diagnosticsHandler.CacheCheck)

	// Public catalog reads. OptionalAuth feeds price gating: authenticated
	// viewers see login-gated prices, anonymous viewers do not.
	public := router.Group("/api/v1")
	public.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		public.GET("/categories", categoryHandler.GetCategories)
		public.GET("/categories/:slug", categoryHandler.GetCategory)
		public.GET("/categories/:slug/subcategories", categoryHandler.GetCategorySubcategories)

		public.GET("/subcategories", subcategoryHandler.GetSubcategories)
		public.GET("/subcategories/:slug", subcategoryHandler.GetSubcategory)
		public.GET("/subcategories/:slug/products", productHandler.GetProductsBySubcategory)

		public.GET("/products/popular", productHandler.GetPopularProducts)
		public.GET("/products/:slug", productHandler.GetProduct)
		public.GET("/products/:slug/related", productHandler.GetRelatedProducts)

		public.GET("/blogs", blogHandler.GetBlogs)
		public.GET("/blogs/:slug", blogHandler.GetBlog)

		public.GET("/banners/active", bannerHandler.GetActiveBanners)
	}

	// Admin writes require a staff token
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	admin.Use(middleware.RequireStaff())
	{
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		admin.POST("/categories/:id/subcategories", subcategoryHandler.CreateSubcategory)

		admin.PUT("/subcategories/:id", subcategoryHandler.UpdateSubcategory)
		admin.DELETE("/subcategories/:id", subcategoryHandler.DeleteSubcategory)
		admin.POST("/subcategories/:id/products", productHandler.CreateProductInSubcategory)

		admin.GET("/products", productHandler.ListProducts)
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.PATCH("/products/:id/stock", productHandler.UpdateProductStock)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.GET("/products/import/template", importHandler.GetImportTemplate)
		admin.POST("/products/import", importHandler.ImportProducts)
		admin.POST("/products/export", importHandler.ExportProducts)

		admin.GET("/blogs", blogHandler.ListBlogs)
		admin.POST("/blogs", blogHandler.CreateBlog)
		admin.PUT("/blogs/:id", blogHandler.UpdateBlog)
		admin.DELETE("/blogs/:id", blogHandler.DeleteBlog)

		admin.GET("/banners", bannerHandler.ListBanners)
		admin.POST("/banners", bannerHandler.CreateBanner)
		admin.PUT("/banners/:id", bannerHandler.UpdateBanner)
		admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-service...")

	eventsPublisher.Close()
	log.Println("Catalog service stopped")
}
