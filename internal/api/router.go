package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gotaagota/collections-api/docs"
	"github.com/gotaagota/collections-api/internal/api/handler"
	"github.com/gotaagota/collections-api/internal/api/middleware"
	"github.com/gotaagota/collections-api/internal/core/domain"
	"github.com/gotaagota/collections-api/internal/core/service"
	"github.com/gotaagota/collections-api/internal/infrastructure/config"
	mongodb "github.com/gotaagota/collections-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gotaagota/collections-api/internal/infrastructure/db/redis"
	"github.com/gotaagota/collections-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("collections"))

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	collectorRepo := mongodb.NewCollectorRepository(db)
	loanRepo := mongodb.NewLoanRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	visitRepo := mongodb.NewVisitRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	idemStore := redisdb.NewIdempotencyStore(rdb)
	summaryCache := redisdb.NewSummaryCache(rdb)

	// --- Services ---
	authService := service.NewAuthService(authRepo, collectorRepo, cfg.JWTSecret, cfg.JWTTTL, logger.Component("auth"))
	clientService := service.NewClientService(clientRepo, logger.Component("clients"))
	collectorService := service.NewCollectorService(collectorRepo, clientRepo, logger.Component("collectors"))
	loanService := service.NewLoanService(loanRepo, paymentRepo, clientRepo, idemStore, logger.Component("loans"))
	visitService := service.NewVisitService(visitRepo, logger.Component("visits"))
	inventoryService := service.NewInventoryService(inventoryRepo, logger.Component("inventory"))
	portfolioService := service.NewPortfolioService(loanRepo, clientRepo, collectorRepo, summaryCache, logger.Component("portfolio"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	collectorHandler := handler.NewCollectorHandler(collectorService)
	loanHandler := handler.NewLoanHandler(loanService)
	paymentHandler := handler.NewPaymentHandler(loanService)
	visitHandler := handler.NewVisitHandler(visitService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Public routes ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/clients", clientHandler.List)
	v1.GET("/clients/:id", clientHandler.Get)
	v1.POST("/clients", clientHandler.Create)
	v1.PUT("/clients/:id", clientHandler.Update)
	v1.DELETE("/clients/:id", clientHandler.Delete)

	v1.GET("/loans", loanHandler.List)
	v1.GET("/loans/:id", loanHandler.Get)
	v1.POST("/loans", loanHandler.Create)

	v1.POST("/payments", paymentHandler.Apply)
	v1.GET("/payments", paymentHandler.List)

	v1.GET("/visits", visitHandler.List)
	v1.GET("/visits/:id", visitHandler.Get)
	v1.POST("/visits", visitHandler.Create)
	v1.PUT("/visits/:id", visitHandler.Update)
	v1.DELETE("/visits/:id", visitHandler.Delete)

	v1.GET("/inventory", inventoryHandler.List)
	v1.GET("/inventory/:id", inventoryHandler.Get)

	v1.GET("/portfolio/summary", portfolioHandler.Summary)

	// --- Admin-only routes ---
	admin := v1.Group("", middleware.RBAC(domain.RoleAdmin))

	admin.GET("/collectors", collectorHandler.List)
	admin.GET("/collectors/:id", collectorHandler.Get)
	admin.POST("/collectors", collectorHandler.Create)
	admin.PUT("/collectors/:id", collectorHandler.Update)
	admin.DELETE("/collectors/:id", collectorHandler.Delete)

	admin.PUT("/loans/:id/status", loanHandler.OverrideStatus)

	admin.POST("/inventory", inventoryHandler.Create)
	admin.PUT("/inventory/:id", inventoryHandler.Update)
	admin.DELETE("/inventory/:id", inventoryHandler.Delete)

	return e
}
