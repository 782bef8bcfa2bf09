package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/store"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

func main() {
	appConfig, err := config.Load("inventory-service")
	if err != nil {
		// Structured logger is not up yet
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	jwtutil.Initialize(&appConfig.JWT)

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.Tenant{},
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.InventoryRecord{},
		&model.Sale{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Stores
	tenants := store.NewTenantStore(db)
	catalog := store.NewCatalogStore(db)
	ledger := store.NewInventoryStore(db)
	stats := store.NewStatsStore(db, appConfig.Inventory.LowStockThreshold)
	sales := store.NewSaleStore(db)
	users := store.NewUserStore(db)

	// Handlers
	categoryHandler := handler.NewCategoryHandler(catalog)
	supplierHandler := handler.NewSupplierHandler(catalog)
	productHandler := handler.NewProductHandler(catalog)
	inventoryHandler := handler.NewInventoryHandler(ledger, appConfig.Inventory.LowStockThreshold)
	dashboardHandler := handler.NewDashboardHandler(stats)
	saleHandler := handler.NewSaleHandler(sales)
	userHandler := handler.NewUserHandler(users)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// All tenant-scoped routes sit behind auth + tenant resolution; handlers
	// only ever see a validated tenant id.
	api := e.Group("/api/tenants/:tenantId", mid.AuthMiddleware, mid.TenantMiddleware(tenants))

	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)

	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)
	api.GET("/categories/:id/stats", dashboardHandler.CategoryStats)
	api.POST("/categories", categoryHandler.Create)
	api.PUT("/categories/:id", categoryHandler.Update)
	api.DELETE("/categories/:id", categoryHandler.Delete)

	api.GET("/suppliers", supplierHandler.List)
	api.GET("/suppliers/:id", supplierHandler.Get)
	api.POST("/suppliers", supplierHandler.Create)
	api.PUT("/suppliers/:id", supplierHandler.Update)
	api.DELETE("/suppliers/:id", supplierHandler.Delete)

	api.GET("/inventory", inventoryHandler.List)
	api.GET("/inventory/product/:productId", inventoryHandler.ListByProduct)
	api.GET("/inventory/alerts/low-stock", inventoryHandler.LowStock)
	api.POST("/inventory", inventoryHandler.Create)
	api.PUT("/inventory/:productId/:location", inventoryHandler.Mutate)
	api.DELETE("/inventory/:productId/:location", inventoryHandler.Delete)

	api.GET("/dashboard/stats", dashboardHandler.Stats)
	api.GET("/dashboard/top-products", dashboardHandler.TopProducts)

	api.GET("/sales", saleHandler.List)
	api.POST("/sales", saleHandler.Create)

	api.GET("/users", userHandler.List)

	log.Info("Starting server", zap.String("port", appConfig.Server.Port))
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
