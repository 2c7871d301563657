package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaudit "github.com/formpulse/backend/internal/application/audit"
	appbilling "github.com/formpulse/backend/internal/application/billing"
	"github.com/formpulse/backend/internal/infrastructure/config"
	"github.com/formpulse/backend/internal/infrastructure/logger"
	"github.com/formpulse/backend/internal/infrastructure/persistence"
	"github.com/formpulse/backend/internal/interfaces/http/handler"
	"github.com/formpulse/backend/internal/interfaces/http/middleware"
	"github.com/formpulse/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting FormPulse billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection, with GORM logging routed through zap
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
	log.Info("Database connected successfully")

	// Repositories and usage sources
	planRepo := persistence.NewGormPlanRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	formSource := persistence.NewGormFormUsageSource(db.DB)
	responseSource := persistence.NewGormResponseUsageSource(db.DB)
	aiReportRepo := persistence.NewGormAiReportRepository(db.DB)
	summaryRepo := persistence.NewGormBillingSummaryRepository(db.DB)
	actionLogRepo := persistence.NewGormActionLogRepository(db.DB)
	planMigrator := persistence.NewGormPlanMigrator(db, log)

	// Application services
	liveProvider := appbilling.NewLiveInvoiceProvider(clientRepo, planRepo, formSource, responseSource, aiReportRepo, log)
	snapshotProvider := appbilling.NewSnapshotInvoiceProvider(summaryRepo, log)
	billingFacade := appbilling.NewBillingFacade(liveProvider, snapshotProvider, nil, log)
	migrationService := appbilling.NewPlanMigrationService(planMigrator, log)
	planService := appbilling.NewPlanService(planRepo, log)
	trailService := appaudit.NewTrailService(actionLogRepo, clientRepo, log)

	// HTTP handlers
	billingHandler := handler.NewBillingHandler(billingFacade, migrationService, planService, log)
	auditHandler := handler.NewAuditHandler(trailService, log)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler.Health)

	router.NewRouter(engine).
		Register(billingHandler).
		Register(auditHandler).
		Setup()

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
