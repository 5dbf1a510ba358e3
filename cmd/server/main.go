package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cashapp "github.com/almacen/backend/internal/application/cashbox"
	catalogapp "github.com/almacen/backend/internal/application/catalog"
	inventoryapp "github.com/almacen/backend/internal/application/inventory"
	partnerapp "github.com/almacen/backend/internal/application/partner"
	tradeapp "github.com/almacen/backend/internal/application/trade"
	"github.com/almacen/backend/internal/infrastructure/config"
	"github.com/almacen/backend/internal/infrastructure/event"
	"github.com/almacen/backend/internal/infrastructure/logger"
	"github.com/almacen/backend/internal/infrastructure/persistence"
	"github.com/almacen/backend/internal/interfaces/http/handler"
	"github.com/almacen/backend/internal/interfaces/http/middleware"
	"github.com/almacen/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewForEnvironment(cfg.App.Env, logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Almacen Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	stockRecordRepo := persistence.NewGormStockRecordRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	cashMovementRepo := persistence.NewGormCashMovementRepository(db.DB)

	// Transaction scopes bind the order and stock writes to single
	// database transactions
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	stockService := inventoryapp.NewStockService(inventoryScope, stockRecordRepo, stockMovementRepo, productRepo)
	orderService := tradeapp.NewOrderService(tradeScope, orderRepo, productRepo, customerRepo, supplierRepo)
	cashService := cashapp.NewCashService(cashMovementRepo)

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log, cfg.Event.BufferSize, cfg.Event.WorkerCount)

	lowStockHandler := inventoryapp.NewLowStockHandler(log)
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	stockService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	customerHandler := handler.NewCustomerHandler(customerService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	stockHandler := handler.NewStockHandler(stockService)
	purchaseHandler := handler.NewPurchaseHandler(orderService)
	saleHandler := handler.NewSaleHandler(orderService)
	cashHandler := handler.NewCashHandler(cashService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health endpoint lives outside API versioning
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, "v1")
	r.Register(
		catalogRoutes(productHandler, categoryHandler),
		partnerRoutes(customerHandler, supplierHandler),
		stockRoutes(stockHandler),
		orderRoutes("/purchases", purchaseHandler),
		orderRoutes("/sales", saleHandler),
		cashRoutes(cashHandler),
		systemRoutes(systemHandler),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func catalogRoutes(products *handler.ProductHandler, categories *handler.CategoryHandler) *router.Group {
	g := router.NewGroup("")

	g.POST("/products", products.Create)
	g.GET("/products", products.List)
	g.GET("/products/:id", products.GetByID)
	g.GET("/products/code/:code", products.GetByCode)
	g.PUT("/products/:id", products.Update)
	g.PUT("/products/:id/prices", products.UpdatePrices)
	g.PUT("/products/:id/min-stock", products.UpdateMinStock)
	g.POST("/products/:id/activate", products.Activate)
	g.POST("/products/:id/deactivate", products.Deactivate)

	g.POST("/categories", categories.Create)
	g.GET("/categories", categories.List)
	g.GET("/categories/:id", categories.GetByID)
	g.PUT("/categories/:id", categories.Update)
	g.DELETE("/categories/:id", categories.Delete)

	return g
}

func partnerRoutes(customers *handler.CustomerHandler, suppliers *handler.SupplierHandler) *router.Group {
	g := router.NewGroup("")

	g.POST("/customers", customers.Create)
	g.GET("/customers", customers.List)
	g.GET("/customers/:id", customers.GetByID)
	g.GET("/customers/document/:document", customers.GetByDocument)
	g.PUT("/customers/:id", customers.Update)
	g.POST("/customers/:id/activate", customers.Activate)
	g.POST("/customers/:id/deactivate", customers.Deactivate)

	g.POST("/suppliers", suppliers.Create)
	g.GET("/suppliers", suppliers.List)
	g.GET("/suppliers/:id", suppliers.GetByID)
	g.GET("/suppliers/document/:document", suppliers.GetByDocument)
	g.PUT("/suppliers/:id", suppliers.Update)
	g.POST("/suppliers/:id/activate", suppliers.Activate)
	g.POST("/suppliers/:id/deactivate", suppliers.Deactivate)

	return g
}

func stockRoutes(stock *handler.StockHandler) *router.Group {
	g := router.NewGroup("/stock")

	g.GET("", stock.ListStock)
	g.GET("/below-minimum", stock.ListBelowMinimum)
	g.GET("/movements", stock.ListMovements)
	g.GET("/:id", stock.GetStock)
	g.GET("/:id/availability", stock.CheckAvailability)
	g.POST("/:id/adjust", stock.AdjustStock)
	g.POST("/:id/rebuild", stock.Rebuild)

	return g
}

func orderRoutes(prefix string, orders *handler.OrderHandler) *router.Group {
	g := router.NewGroup(prefix)

	g.POST("", orders.Create)
	g.GET("", orders.List)
	g.GET("/summary", orders.StatusSummary)
	g.GET("/number/:number", orders.GetByNumber)
	g.GET("/:id", orders.GetByID)
	g.POST("/:id/confirm", orders.Confirm)
	g.POST("/:id/cancel", orders.Cancel)
	g.POST("/:id/lines", orders.AddLine)
	g.PUT("/:id/lines/:lineId", orders.UpdateLine)
	g.DELETE("/:id/lines/:lineId", orders.RemoveLine)

	return g
}

func cashRoutes(cash *handler.CashHandler) *router.Group {
	g := router.NewGroup("/cash")

	g.POST("/movements", cash.RecordMovement)
	g.GET("/movements", cash.List)
	g.GET("/movements/:id", cash.GetByID)
	g.GET("/movements/reference/:reference", cash.ListByReference)
	g.GET("/balance", cash.Balance)

	return g
}

func systemRoutes(system *handler.SystemHandler) *router.Group {
	g := router.NewGroup("/system")

	g.GET("/ping", system.Ping)
	g.GET("/info", system.Info)

	return g
}
