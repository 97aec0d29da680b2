package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	checkoutapp "github.com/aswinkumar1126/JaiGuru-sub001/internal/application/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/auth"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/cache"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/client"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/config"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/event"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/logger"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/interfaces/http/handler"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting checkout engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Remote collaborators
	cartClient, err := client.NewCartClient(&client.ServiceConfig{
		BaseURL:        cfg.Services.CartBaseURL,
		TimeoutSeconds: cfg.Services.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create cart client", zap.Error(err))
	}
	productClient, err := client.NewProductClient(&client.ServiceConfig{
		BaseURL:        cfg.Services.ProductBaseURL,
		TimeoutSeconds: cfg.Services.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create product client", zap.Error(err))
	}
	orderClient, err := client.NewOrderClient(&client.ServiceConfig{
		BaseURL:        cfg.Services.OrderBaseURL,
		TimeoutSeconds: cfg.Services.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to create order client", zap.Error(err))
	}

	// Idempotency store; falls back to in-memory when Redis is not configured
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log.Named("idempotency"))
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Event bus and per-user checkout sessions
	bus := event.NewInMemoryEventBus(log.Named("event_bus"))
	if err := bus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	sessions := checkoutapp.NewSessionManager(
		cartClient,
		productClient,
		orderClient,
		bus,
		idempotencyStore,
		log.Named("checkout"),
		checkoutapp.SessionManagerConfig{
			AutoSelectNewLines: cfg.Checkout.AutoSelectNewLines,
			IdempotencyTTL:     cfg.Checkout.IdempotencyTTL,
		},
	)

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, 24*time.Hour)

	engine := router.New(router.Config{
		AppName:    cfg.App.Name,
		AppVersion: appVersion,
		JWTService: jwtService,
		Cart:       handler.NewCartHandler(sessions),
		Order:      handler.NewOrderHandler(sessions),
		Logger:     log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
