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

	"go.uber.org/zap"

	"github.com/kaokien/coach-josh-official/internal/config"
	"github.com/kaokien/coach-josh-official/internal/infrastructure/cache"
	httpServer "github.com/kaokien/coach-josh-official/internal/infrastructure/http"
	"github.com/kaokien/coach-josh-official/internal/infrastructure/loops"
	stripeClient "github.com/kaokien/coach-josh-official/internal/infrastructure/stripe"
	"github.com/kaokien/coach-josh-official/internal/infrastructure/youtube"
	"github.com/kaokien/coach-josh-official/internal/logger"
	"github.com/kaokien/coach-josh-official/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	payments := stripeClient.NewClient(cfg.Service.Stripe.SecretKey, zapLogger)
	uploads := youtube.NewClient(cfg.Service.YouTube, zapLogger)
	contacts := loops.NewClient(cfg.Service.Loops, zapLogger)

	var store cache.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := cache.NewRedisStore(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		store = cache.NewMemoryStore()
	}

	deps := httpServer.Dependencies{
		Payments:  payments,
		Resolver:  usecase.NewSubscriptionResolver(payments, zapLogger),
		Checkout:  usecase.NewCheckoutService(payments, cfg.Service.ClientURL, zapLogger),
		Feed:      usecase.NewVideoFeed(uploads, store, zapLogger),
		Marketing: usecase.NewMarketingService(contacts, zapLogger),
	}

	srv := httpServer.NewServer(cfg, zapLogger, deps)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
