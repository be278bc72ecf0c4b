package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	printingapp "github.com/bizledger/backend/internal/application/printing"
	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/infrastructure/cache"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/logger"
	"github.com/bizledger/backend/internal/infrastructure/persistence"
	infraprinting "github.com/bizledger/backend/internal/infrastructure/printing"
	"github.com/bizledger/backend/internal/infrastructure/telemetry"
	"github.com/bizledger/backend/internal/interfaces/http/handler"
	"github.com/bizledger/backend/internal/interfaces/http/middleware"
	"github.com/bizledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Ledger Receipt Service API
//	@version		1.0
//	@description	Receipt template management and rendering service

//	@contact.name	API Support
//	@contact.email	support@bizledger.io

//	@host		localhost:8080
//	@BasePath	/api/v1

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

	log.Info("Starting Ledger Receipt Service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize telemetry providers. Both degrade to no-ops when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database query tracing (if enabled)
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize template cache (Redis-backed, falls back to in-memory)
	cacheCfg := printing.DefaultCacheConfig()
	if cfg.Printing.TemplateCacheTTL > 0 {
		cacheCfg.TemplateTTL = cfg.Printing.TemplateCacheTTL
	}
	templateCache, err := cache.NewTemplateCacheFactory(
		cfg.Redis,
		cache.WithLogger(log),
		cache.WithFactoryCacheConfig(cacheCfg),
	).CreateCache()
	if err != nil {
		log.Fatal("Failed to initialize template cache", zap.Error(err))
	}
	defer func() {
		if err := templateCache.Close(); err != nil {
			log.Error("Error closing template cache", zap.Error(err))
		}
	}()

	// Initialize repositories
	templateRepo := persistence.NewGormReceiptTemplateRepository(db.DB)

	// Initialize rendering engine
	composer := infraprinting.NewComposer()
	htmlWriter := infraprinting.NewHTMLWriter()

	// Optional render options: archive and metrics
	renderOpts := []printingapp.RenderServiceOption{
		printingapp.WithTemplateCache(templateCache),
	}
	if cfg.Printing.ArchiveEnabled {
		archive, err := infraprinting.NewFileSystemArchive(&infraprinting.FileSystemArchiveConfig{
			BasePath:      cfg.Printing.ArchiveBasePath,
			BaseURL:       cfg.Printing.ArchiveBaseURL,
			RetentionDays: cfg.Printing.RetentionDays,
			Logger:        log,
		})
		if err != nil {
			log.Fatal("Failed to initialize render archive", zap.Error(err))
		}
		renderOpts = append(renderOpts, printingapp.WithArchive(archive))
		log.Info("Render archive enabled",
			zap.String("base_path", cfg.Printing.ArchiveBasePath),
			zap.Int("retention_days", cfg.Printing.RetentionDays),
		)

		// Periodically expire old renders
		if cfg.Printing.RetentionDays > 0 {
			sweepCtx, stopSweep := context.WithCancel(context.Background())
			defer stopSweep()
			go infraprinting.RunRetentionSweep(sweepCtx, archive,
				time.Duration(cfg.Printing.RetentionDays)*24*time.Hour,
				cfg.Printing.RetentionSweep, log)
		}
	}
	if meterProvider.IsEnabled() {
		renderMetrics, err := telemetry.NewRenderMetrics(telemetry.RenderMetricsConfig{
			Meter:  meterProvider.Meter("printing"),
			Logger: log,
		})
		if err != nil {
			log.Fatal("Failed to initialize render metrics", zap.Error(err))
		}
		renderOpts = append(renderOpts, printingapp.WithRenderMetrics(renderMetrics))
	}

	// Initialize application services
	templateService := printingapp.NewTemplateService(templateRepo, templateCache, log)
	renderService := printingapp.NewRenderService(templateRepo, composer, htmlWriter, log, renderOpts...)

	// Initialize HTTP handlers
	templateHandler := handler.NewReceiptTemplateHandler(templateService)
	renderHandler := handler.NewRenderHandler(renderService, templateService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics - Observability (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.App.Name,
			Enabled:       true,
		}))
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	tenantMiddleware := middleware.TenantMiddleware()
	r.Register(handler.ReceiptTemplateRoutes(templateHandler, tenantMiddleware)).
		Register(handler.ReceiptRenderRoutes(renderHandler, tenantMiddleware))
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

	// Flush telemetry before exit
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
