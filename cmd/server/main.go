package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	accountingapp "github.com/rentdesk/backend/internal/application/accounting"
	communicationapp "github.com/rentdesk/backend/internal/application/communication"
	identityapp "github.com/rentdesk/backend/internal/application/identity"
	leasingapp "github.com/rentdesk/backend/internal/application/leasing"
	propertyapp "github.com/rentdesk/backend/internal/application/property"
	"github.com/rentdesk/backend/internal/domain/communication"
	"github.com/rentdesk/backend/internal/infrastructure/auth"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/scheduler"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"github.com/rentdesk/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
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

	log.Info("Starting RentDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:       gormLog,
		TraceEnabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token revocation store
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	announcementRepo := persistence.NewGormAnnouncementRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist)
	propertyService := propertyapp.NewPropertyService(propertyRepo)
	leaseService := leasingapp.NewLeaseService(leaseRepo)
	invoiceService := accountingapp.NewInvoiceService(invoiceRepo, propertyRepo)
	announcementService := communicationapp.NewAnnouncementService(announcementRepo,
		func(ctx context.Context, subscriptionID uuid.UUID) communication.AudienceSource {
			return persistence.NewAudienceSource(ctx, subscriptionID, propertyRepo)
		})
	generationService := accountingapp.NewInvoiceGenerationService(leaseRepo, invoiceRepo, log)

	// Daily invoice generation
	invoiceScheduler, err := scheduler.NewInvoiceCronScheduler(cfg.Invoicing, userRepo, generationService, log)
	if err != nil {
		log.Fatal("Failed to create invoice scheduler", zap.Error(err))
	}
	if err := invoiceScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start invoice scheduler", zap.Error(err))
	}
	defer func() {
		if err := invoiceScheduler.Stop(context.Background()); err != nil {
			log.Error("Error stopping invoice scheduler", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	leaseHandler := handler.NewLeaseHandler(leaseService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	systemHandler := handler.NewSystemHandler(invoiceScheduler)

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
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(authHandler).
		Register(propertyHandler).
		Register(leaseHandler).
		Register(invoiceHandler).
		Register(announcementHandler)
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
