package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contractapp "github.com/contractmgmt/backend/internal/application/contract"
	identityapp "github.com/contractmgmt/backend/internal/application/identity"
	"github.com/contractmgmt/backend/internal/domain/contract"
	"github.com/contractmgmt/backend/internal/infrastructure/auth"
	"github.com/contractmgmt/backend/internal/infrastructure/config"
	"github.com/contractmgmt/backend/internal/infrastructure/logger"
	"github.com/contractmgmt/backend/internal/infrastructure/persistence"
	"github.com/contractmgmt/backend/internal/interfaces/http/handler"
	"github.com/contractmgmt/backend/internal/interfaces/http/middleware"
	"github.com/contractmgmt/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting contract management backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logging
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if cfg.App.Env != "production" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		log.Info("Database schema migrated", zap.String("env", cfg.App.Env))
	}
	log.Info("Database connected successfully")

	// Clause codec shared by persistence and application layers
	registry := contract.NewClauseRegistry()

	// Repositories
	contractRepo := persistence.NewGormContractRepository(db.DB)
	amendmentRepo := persistence.NewGormAmendmentRepository(db.DB, registry, log)
	scopeRepo := persistence.NewGormScopeRepository(db.DB)
	entityRepo := persistence.NewGormEntityRepository(db.DB)
	incentiveRepo := persistence.NewGormIncentiveRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Read-side ledger used by the resolution engine
	ledger := persistence.NewGormLedger(contractRepo, amendmentRepo, scopeRepo)

	// Domain resolvers
	membership := contract.NewMembershipReconstructor(ledger, log)
	graph := contract.NewScopeGraphResolver(ledger, membership, log)
	expiry := contract.NewExpiryResolver(ledger, log)

	// Application services
	contractService := contractapp.NewContractService(contractRepo, amendmentRepo, registry, membership, expiry)
	scopeService := contractapp.NewScopeService(scopeRepo, contractRepo, graph)
	entityService := contractapp.NewEntityService(entityRepo)
	incentiveService := contractapp.NewIncentiveService(incentiveRepo, contractRepo)
	dashboardService := contractapp.NewDashboardService(
		contractRepo, scopeRepo, entityRepo, incentiveRepo, ledger, membership, expiry,
	)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo)

	// HTTP handlers
	contractHandler := handler.NewContractHandler(contractService)
	scopeHandler := handler.NewScopeHandler(scopeService)
	entityHandler := handler.NewEntityHandler(entityService)
	incentiveHandler := handler.NewIncentiveHandler(incentiveService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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

	// Liveness and readiness outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	// Authentication (login and refresh are skipped by the JWT middleware)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)

	// Contracts, amendments and derived state
	contractRoutes := router.NewDomainGroup("contracts", "/contracts")
	contractRoutes.GET("", contractHandler.List)
	contractRoutes.GET("/:id", contractHandler.GetByID)
	contractRoutes.GET("/:id/children", contractHandler.Children)
	contractRoutes.GET("/:id/entities", contractHandler.CurrentEntities)
	contractRoutes.GET("/:id/scopes", contractHandler.CurrentScopes)
	contractRoutes.GET("/:id/expiry-date", contractHandler.ExpiryDate)
	contractRoutes.GET("/:id/amendments", contractHandler.ListAmendments)
	contractRoutes.GET("/:id/incentives", incentiveHandler.ListByContract)
	contractRoutes.GET("/:id/dashboard", dashboardHandler.Dashboard)
	contractRoutes.GET("/:id/gantt", dashboardHandler.Gantt)
	contractRoutes.POST("", middleware.RequireEditor(), contractHandler.Create)
	contractRoutes.PUT("/:id", middleware.RequireEditor(), contractHandler.Update)
	contractRoutes.DELETE("/:id", middleware.RequireEditor(), contractHandler.Delete)
	contractRoutes.POST("/:id/children", middleware.RequireEditor(), contractHandler.Link)
	contractRoutes.DELETE("/:id/children/:child_id", middleware.RequireEditor(), contractHandler.Unlink)
	contractRoutes.POST("/:id/amendments", middleware.RequireEditor(), contractHandler.AddAmendment)
	contractRoutes.POST("/:id/incentives", middleware.RequireEditor(), incentiveHandler.Create)

	amendmentRoutes := router.NewDomainGroup("amendments", "/amendments")
	amendmentRoutes.DELETE("/:id", middleware.RequireEditor(), contractHandler.DeleteAmendment)

	incentiveRoutes := router.NewDomainGroup("incentives", "/incentives")
	incentiveRoutes.DELETE("/:id", middleware.RequireEditor(), incentiveHandler.Delete)

	// Scope hierarchy
	scopeRoutes := router.NewDomainGroup("scopes", "/scopes")
	scopeRoutes.GET("", scopeHandler.List)
	scopeRoutes.GET("/:id", scopeHandler.GetByID)
	scopeRoutes.GET("/:id/ancestors", scopeHandler.Ancestors)
	scopeRoutes.GET("/:id/descendants", scopeHandler.Descendants)
	scopeRoutes.GET("/:id/contracts", scopeHandler.Contracts)
	scopeRoutes.POST("", middleware.RequireEditor(), scopeHandler.Create)
	scopeRoutes.DELETE("/:id", middleware.RequireEditor(), scopeHandler.Delete)
	scopeRoutes.POST("/:id/children", middleware.RequireEditor(), scopeHandler.AddEdge)
	scopeRoutes.DELETE("/:id/children/:child_id", middleware.RequireEditor(), scopeHandler.RemoveEdge)

	// Legal entities and entity groups
	entityRoutes := router.NewDomainGroup("entities", "/entities")
	entityRoutes.GET("", entityHandler.List)
	entityRoutes.GET("/:id", entityHandler.GetByID)
	entityRoutes.POST("", middleware.RequireEditor(), entityHandler.Create)
	entityRoutes.DELETE("/:id", middleware.RequireEditor(), entityHandler.Delete)

	entityGroupRoutes := router.NewDomainGroup("entity-groups", "/entity-groups")
	entityGroupRoutes.GET("", entityHandler.ListGroups)
	entityGroupRoutes.POST("", middleware.RequireEditor(), entityHandler.CreateGroup)

	// User administration, admin only
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(middleware.RequireAdmin())
	userRoutes.POST("", userHandler.Create)
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.GetByID)
	userRoutes.PUT("/:id/role", userHandler.SetRole)
	userRoutes.POST("/:id/deactivate", userHandler.Deactivate)
	userRoutes.DELETE("/:id", userHandler.Delete)

	r.Register(authRoutes).
		Register(contractRoutes).
		Register(amendmentRoutes).
		Register(incentiveRoutes).
		Register(scopeRoutes).
		Register(entityRoutes).
		Register(entityGroupRoutes).
		Register(userRoutes)

	r.Setup()

	engine.GET("/api/v1/health", systemHandler.Health)

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

	// Graceful shutdown
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
