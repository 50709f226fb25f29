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

	"github.com/workhub/gateway/internal/application/accounting"
	"github.com/workhub/gateway/internal/application/dashboard"
	"github.com/workhub/gateway/internal/application/vouchers"
	"github.com/workhub/gateway/internal/infrastructure/auth"
	"github.com/workhub/gateway/internal/infrastructure/cache"
	"github.com/workhub/gateway/internal/infrastructure/config"
	"github.com/workhub/gateway/internal/infrastructure/logger"
	"github.com/workhub/gateway/internal/infrastructure/workhub"
	"github.com/workhub/gateway/internal/interfaces/http/handler"
	"github.com/workhub/gateway/internal/interfaces/http/middleware"
	"github.com/workhub/gateway/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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
		_ = log.Sync()
	}()

	log.Info("Starting WorkHub gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	client, err := workhub.NewClient(&workhub.Config{
		BaseURL:        cfg.Upstream.BaseURL,
		TimeoutSeconds: cfg.Upstream.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Failed to create upstream client", zap.Error(err))
	}

	store := newSummaryCache(cfg, log)
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing summary cache", zap.Error(err))
		}
	}()

	// Application services
	developerService := dashboard.NewDeveloperService(client, log)
	overviewService := dashboard.NewOverviewService(client, cfg.Upstream.MaxParallelCalls, log)
	paymentsService := dashboard.NewPaymentsService(client, log)
	voucherService := vouchers.NewService(client, log)
	accountingService := accounting.NewService(client, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	// Health probes live outside the authenticated API group
	systemHandler := handler.NewSystemHandler(version).
		AddReadinessCheck("upstream", client.Ping)
	engine.GET("/healthz", systemHandler.Healthz)
	engine.GET("/readyz", systemHandler.Readyz)

	apiMiddleware := []gin.HandlerFunc{
		middleware.BearerAuth(auth.NewTokenValidator(cfg.JWT)),
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		apiMiddleware = append(apiMiddleware, middleware.RateLimit(limiter))
	}
	apiMiddleware = append(apiMiddleware, middleware.BodyLimit(1<<20))

	r := router.NewRouter(engine, router.WithMiddleware(apiMiddleware...))
	r.Register(handler.NewDashboardHandler(developerService, overviewService, paymentsService, store, cfg.Cache.TTL)).
		Register(handler.NewBillingHandler(voucherService, store, cfg.Cache.TTL)).
		Register(handler.NewAccountingHandler(accountingService, store, cfg.Cache.TTL))
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

// newSummaryCache picks the cache backend: Redis when configured and
// reachable, an in-process cache otherwise. A Redis outage at boot
// degrades to in-memory rather than blocking startup.
func newSummaryCache(cfg *config.Config, log *zap.Logger) cache.SummaryCache {
	if !cfg.Cache.Enabled {
		log.Info("Summary cache disabled")
		return cache.NoopSummaryCache{}
	}

	if cfg.Redis.Host != "" {
		store, err := cache.NewRedisSummaryCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			log.Info("Summary cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
			return store
		}
		log.Warn("Redis unavailable, falling back to in-memory summary cache", zap.Error(err))
	}

	return cache.NewInMemorySummaryCache()
}
