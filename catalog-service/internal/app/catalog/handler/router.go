package handler

import (
	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/pkg/logger"
	"catalogapi/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает все маршруты Catalog Service с использованием Gin
// Чтение публичное, изменения товаров защищены JWT (если задан секрет)
func SetupRoutes(catalogHandler *CatalogHandler, authMiddleware *AuthMiddleware, healthHandler *HealthCheckHandler) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))

	// CORS настройки; заголовки пагинации должны быть видны браузеру
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"https://*", "http://*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders: []string{
			entity.HeaderTotalCount, entity.HeaderTotalPages,
			entity.HeaderPageNumber, entity.HeaderPageSize,
			logger.RequestIDHeader,
		},
		AllowWildcard:    true,
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	products := api.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)

		// POST, PUT, DELETE только для manager и admin
		write := products.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole("manager", "admin"))
		write.POST("", catalogHandler.CreateProduct)
		write.PUT("/:id", catalogHandler.UpdateProduct)
		write.DELETE("/:id", catalogHandler.DeleteProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories) // Список категорий (кеш Redis)
		categories.GET("/:id", catalogHandler.GetCategory)
	}

	return router
}
