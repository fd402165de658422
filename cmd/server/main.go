package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	syncapp "github.com/frituurapp/backend/internal/application/sync"
	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/infrastructure/cache"
	"github.com/frituurapp/backend/internal/infrastructure/config"
	"github.com/frituurapp/backend/internal/infrastructure/logger"
	"github.com/frituurapp/backend/internal/infrastructure/persistence"
	"github.com/frituurapp/backend/internal/infrastructure/pos"
	"github.com/frituurapp/backend/internal/infrastructure/scheduler"
	"github.com/frituurapp/backend/internal/interfaces/http/handler"
	"github.com/frituurapp/backend/internal/interfaces/http/middleware"
	"github.com/frituurapp/backend/internal/interfaces/http/router"
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

	log.Info("Starting POS sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	subproductRepo := persistence.NewGormSubproductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	connectionRepo := persistence.NewGormConnectionRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)

	// Initialize the per-shop sync lock backed by Redis
	syncLock, err := cache.NewRedisSyncLock(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := syncLock.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Initialize the sync service
	syncService := syncapp.NewService(syncapp.ServiceParams{
		Connections: connectionRepo,
		Runs:        syncRunRepo,
		Categories:  categoryRepo,
		Products:    productRepo,
		Subproducts: subproductRepo,
		Orders:      orderRepo,
		Lock:        syncLock,
		LockTTL:     cfg.SyncLock.TTL,
		Clients: func(conn *possync.Connection) possync.Client {
			return pos.NewClient(conn)
		},
		Logger: log,
	})

	// Start the periodic catalog sync scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.CatalogSyncSchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			Interval:          cfg.Scheduler.Interval,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}
		catalogScheduler, err := scheduler.NewCatalogSyncScheduler(schedulerConfig, syncService, connectionRepo, log)
		if err != nil {
			log.Fatal("Invalid scheduler configuration", zap.Error(err))
		}
		if err := catalogScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start catalog sync scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := catalogScheduler.Stop(stopCtx); err != nil {
				log.Error("Error stopping catalog sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Catalog sync scheduler started",
			zap.Duration("interval", cfg.Scheduler.Interval),
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
		)
	}

	// Initialize HTTP handlers
	syncHandler := handler.NewSyncHandler(syncService)
	systemHandler := handler.NewSystemHandler(db.Ping)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	router.NewRouter(engine).
		Register(syncHandler).
		Register(systemHandler).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
