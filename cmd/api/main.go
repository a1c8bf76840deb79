package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "statutory-engine/api/swagger" // swagger docs
	"statutory-engine/internal/cache"
	"statutory-engine/internal/config"
	"statutory-engine/internal/database"
	"statutory-engine/internal/handler"
	"statutory-engine/internal/logger"
	"statutory-engine/internal/metrics"
	"statutory-engine/internal/middleware"
	"statutory-engine/internal/repository"
	"statutory-engine/internal/rules"
	"statutory-engine/internal/service"
	"statutory-engine/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Statutory Component Configuration API
// @version         1.0
// @description     Per-country statutory payroll components with jurisdiction validation and effective-date resolution.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatalf("Logger setup failed: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	db, err := database.NewConnection(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("Database connection failed", zap.Error(err))
	}
	zlog.Info("Connected to PostgreSQL successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	countryRepo := repository.NewCountryRepository(db)
	configRepo := repository.NewRegionConfigurationRepository(db)
	componentRepo := repository.NewStatutoryComponentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	var countries repository.CountryRepository = countryRepo
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			zlog.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("Redis unreachable, country lookups fall through to the database", zap.Error(err))
		}
		countries = cache.NewCountryCache(countryRepo, rdb,
			cache.WithTTL(cfg.Redis.CacheTTL),
			cache.WithLogger(zlog),
			cache.WithMetrics(m),
		)
	}

	if cfg.Seed.Enabled {
		if err := database.NewSeeder(countries, configRepo, txManager, zlog).Seed(ctx); err != nil {
			zlog.Fatal("Seeding reference data failed", zap.Error(err))
		}
	}

	registry := rules.DefaultRegistry()
	for _, key := range registry.Keys() {
		zlog.Info("Jurisdiction rule registered",
			zap.String("country_code", key.CountryCode),
			zap.String("component_type", string(key.ComponentType)))
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(zlog, cfg.CORS.AllowOrigins)
	go wsHub.Run(ctx)

	componentService := service.NewStatutoryComponentService(
		componentRepo,
		countries,
		configRepo,
		auditRepo,
		txManager,
		rules.NewEngine(registry, zlog),
		service.WithEventPublisher(wsHub),
		service.WithMetrics(m),
		service.WithLogger(zlog),
	)
	countryService := service.NewCountryService(countries, configRepo)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(repository.NewStatisticsRepository(db), countries)

	auth := middleware.NewAuthenticator(cfg.JWT.Secret)
	componentHandler := handler.NewStatutoryComponentHandler(componentService, auth)
	countryHandler := handler.NewCountryHandler(countryService, auth)
	auditHandler := handler.NewAuditHandler(auditService, auth)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService, auth)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.Recovery(zlog), logger.GinMiddleware(zlog))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", logger.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// WebSocket change feed
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, auth, c)
	})

	// API Routing
	componentHandler.RegisterRoutes(router.Group(""))
	countryHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("Server failed", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server exited gracefully")
}
