package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/dealer-finance/internal/catalog"
	"github.com/iwvelando/dealer-finance/internal/config"
	"github.com/iwvelando/dealer-finance/internal/deals"
	"github.com/iwvelando/dealer-finance/internal/domain"
	"github.com/iwvelando/dealer-finance/internal/rules"
	"github.com/iwvelando/dealer-finance/internal/server"
	"github.com/iwvelando/dealer-finance/internal/storage"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// buildServices wires the catalog, rules and deals services to the storage
// back end and installs the seed data the configuration asks for.
func buildServices(ctx context.Context, logger *zap.Logger, backend *storage.Backend, conf *config.Configuration) (server.Services, error) {
	services := server.Services{
		Catalog: catalog.NewService(storage.NewRepository[domain.Car](backend, "cars"), logger),
		Rules:   rules.NewService(storage.NewRepository[domain.FinanceRule](backend, "rules"), logger),
		Deals:   deals.NewService(storage.NewRepository[domain.TraderDeal](backend, "deals"), conf.Finance, logger),
		Policy:  conf.Finance,
	}

	if conf.Seed.Catalog {
		added, err := services.Catalog.Seed(ctx, catalog.DefaultInventory())
		if err != nil {
			return services, fmt.Errorf("failed to seed catalog: %w", err)
		}
		logger.Info("catalog seeded", zap.String("op", "main.buildServices"), zap.Int("added", added))
	}
	if conf.Seed.Rules {
		added, err := services.Rules.EnsureDefaults(ctx)
		if err != nil {
			return services, fmt.Errorf("failed to seed finance rules: %w", err)
		}
		logger.Info("finance rules seeded", zap.String("op", "main.buildServices"), zap.Int("added", added))
	}
	if conf.Seed.Deals {
		added, err := services.Deals.EnsureDefaults(ctx)
		if err != nil {
			return services, fmt.Errorf("failed to seed trader deals: %w", err)
		}
		logger.Info("trader deals seeded", zap.String("op", "main.buildServices"), zap.Int("added", added))
	}
	return services, nil
}

// runServer serves the API until SIGINT or SIGTERM, then drains in-flight
// requests.
func runServer(logger *zap.Logger, conf *config.Configuration, serverConf *server.Config) error {
	if err := conf.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, logger, conf.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close storage", zap.String("op", "main.runServer"), zap.Error(err))
		}
	}()

	services, err := buildServices(ctx, logger, backend, conf)
	if err != nil {
		return err
	}

	handler := server.NewHandler(logger, services, serverConf.BodySizeBytes(), version)

	var limiter *server.RateLimiter
	if serverConf.RateLimit.Requests > 0 {
		limiter = server.NewRateLimiter(serverConf.RateLimit.Requests, serverConf.RateLimitWindow())
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.RateLimitMiddleware(limiter, logger, handler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.runServer"),
			zap.String("address", serverConf.Address),
			zap.String("storage", backend.Kind()),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("op", "main.runServer"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
