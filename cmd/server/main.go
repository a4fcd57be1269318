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

	cartapp "github.com/cahoico/storefront/internal/application/cart"
	catalogapp "github.com/cahoico/storefront/internal/application/catalog"
	checkoutapp "github.com/cahoico/storefront/internal/application/checkout"
	"github.com/cahoico/storefront/internal/infrastructure/cartmirror"
	"github.com/cahoico/storefront/internal/infrastructure/config"
	"github.com/cahoico/storefront/internal/infrastructure/logger"
	"github.com/cahoico/storefront/internal/infrastructure/vendure"
	"github.com/cahoico/storefront/internal/interfaces/http/handler"
	"github.com/cahoico/storefront/internal/interfaces/http/middleware"
	"github.com/cahoico/storefront/internal/interfaces/http/router"
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

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("shop_api", cfg.Vendure.APIURL),
	)

	// Shop-API client: one client is one shop session
	client, err := vendure.NewClient(cfg.Vendure.APIURL, cfg.Vendure.Token, cfg.Vendure.Timeout, log)
	if err != nil {
		log.Fatal("Failed to create shop api client", zap.Error(err))
	}
	shop := vendure.NewShop(client, log)

	// Cart mirror (sqlite / redis / in-memory fallback)
	mirror, err := cartmirror.NewMirror(cfg, log)
	if err != nil {
		log.Fatal("Failed to create cart mirror", zap.Error(err))
	}

	// Application services
	cartStore := cartapp.NewStore(shop, mirror, log)
	checkoutSvc := checkoutapp.NewService(shop, cartStore, log)
	catalogSvc := catalogapp.NewService(shop, log)

	// Warm the cart from the mirror or the active order; a failure here
	// is logged, not fatal, since every handler retries on demand
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.Vendure.Timeout)
	if _, err := cartStore.Load(startupCtx); err != nil {
		log.Warn("Initial cart load failed", zap.Error(err))
	}
	cancelStartup()

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
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

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Routes
	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)
	router.NewRouter(engine).
		Register(handler.NewCatalogHandler(catalogSvc)).
		Register(handler.NewCartHandler(cartStore)).
		Register(handler.NewCheckoutHandler(checkoutSvc)).
		Register(systemHandler).
		Setup()

	// Root-level liveness probe alongside the versioned one
	engine.GET("/healthz", systemHandler.Health)

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
