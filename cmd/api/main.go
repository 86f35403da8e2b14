package main

import (
	"context"
	"log"
	"time"

	"provide-client/internal/core/cache"
	"provide-client/internal/core/config"
	"provide-client/internal/core/logger"
	"provide-client/internal/core/server"
	commerceadapter "provide-client/internal/features/commerce/adapters"
	commercehandler "provide-client/internal/features/commerce/handler"
	"provide-client/internal/features/commerce/ports"
	commerceservice "provide-client/internal/features/commerce/service"

	"go.uber.org/zap"
)

// @title Provide Client API
// @version 1.0
// @description This API exposes the Provide commerce client: customer lookups, delivery availability, order quotes and order placement.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("mock_mode", cfg.Provide.MockMode),
	)

	// Initialize Commerce Provider
	var provider ports.CommerceProvider
	if cfg.Provide.MockMode {
		provider = commerceadapter.NewMockAdapter()
		l.Info("Using mock commerce provider")
	} else {
		provideClient, err := commerceadapter.NewProvideClient(cfg.Provide)
		if err != nil {
			l.Fatal("Failed to create Provide client", zap.Error(err))
		}
		provider = provideClient
	}

	// Wrap availability lookups with the Redis cache when configured
	if cfg.Cache.Enabled() {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL, "provide:")
		if err != nil {
			l.Fatal("Failed to create Redis cache", zap.Error(err))
		}
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			l.Warn("Redis not reachable, availability cache will fall through", zap.Error(err))
		}
		cancel()

		provider = commerceadapter.NewCachedAvailability(provider, redisCache, cfg.Cache.TTL())
		l.Info("Availability cache enabled", zap.Duration("ttl", cfg.Cache.TTL()))
	}

	// Initialize Checkout Service & Handler
	checkoutService := commerceservice.NewCheckoutService(provider)
	commerceHandler := commercehandler.NewCommerceHandler(checkoutService)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/customers/exists", commerceHandler.CustomerExists)
	srv.App.Post("/customers/validate", commerceHandler.ValidateRecipient)
	srv.App.Get("/customers/:id/orders", commerceHandler.GetOrders)
	srv.App.Get("/products/:id/availability", commerceHandler.GetAvailability)
	srv.App.Post("/orders/quote", commerceHandler.QuoteOrder)
	srv.App.Post("/orders", commerceHandler.PlaceOrder)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
