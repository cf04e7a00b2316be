package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"homelink_backend/database"
	"homelink_backend/internal/config"
	"homelink_backend/internal/handlers"
	"homelink_backend/internal/logger"
	"homelink_backend/internal/middleware"
	"homelink_backend/internal/repositories"
	"homelink_backend/internal/routes"
	"homelink_backend/internal/services"
	"homelink_backend/internal/validator"
	"homelink_backend/internal/workers"
)

// Run boots the whole service: config, logging, database, migrations, seed
// data, background workers and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if err := database.SeedTierCatalog(gormDB); err != nil {
		logger.Fatal("tier catalog seed failed", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	startWorkers(workerCtx, cfg, serviceContainer)

	ginRouter := SetupRouter(cfg, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with middleware and all routes. Split out
// from Run so integration tests can stand up the full HTTP surface against a
// test database.
func SetupRouter(cfg *config.Config, serviceContainer *services.ServiceContainer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	tierRepo := repositories.NewTierRepository(gormDB)
	entitlementRepo := repositories.NewEntitlementRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	ledgerRepo := repositories.NewLedgerRepository(gormDB)

	authService := services.NewAuthService(userRepo, tierRepo)
	entitlementService := services.NewEntitlementService(entitlementRepo, userRepo, tierRepo)
	walletService := services.NewWalletService(ledgerRepo, userRepo, tierRepo, cfg)
	bookingService := services.NewBookingService(bookingRepo, userRepo, walletService)

	return &services.ServiceContainer{
		AuthService:        authService,
		EntitlementService: entitlementService,
		BookingService:     bookingService,
		WalletService:      walletService,
	}
}

func startWorkers(ctx context.Context, cfg *config.Config, serviceContainer *services.ServiceContainer) {
	interval := time.Duration(cfg.Worker.ExpirySweepMinutes) * time.Minute
	subscriptionWorker := workers.NewSubscriptionWorker(serviceContainer.EntitlementService, interval)
	subscriptionWorker.Start(ctx)
	logger.Info("subscription worker started", "interval", interval.String())
}
