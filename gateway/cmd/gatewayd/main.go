package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/config"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/handler"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/middleware"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/proxy"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting gateway", "port", cfg.HTTPPort)

	// Build reverse proxies for the downstream services.
	backends, err := buildBackends(cfg, logger)
	if err != nil {
		logger.Error("invalid backend configuration", "error", err)
		os.Exit(1)
	}

	// Per-client rate limiter.
	rateLimiter := middleware.NewPerClientRateLimiter(cfg.RateLimit)

	// Routes.
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, backends)

	// Build middleware chain (applied in reverse order).
	var h http.Handler = mux
	h = middleware.LoggingMiddleware(logger)(h)
	h = middleware.PerClientRateLimitMiddleware(rateLimiter)(h)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: h,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("gateway started",
		"feature_store", cfg.FeatureStoreURL,
		"ml_service", cfg.MLServiceURL,
		"risk_service", cfg.RiskServiceURL,
		"customer_service", cfg.CustomerServiceURL,
		"payment_service", cfg.PaymentServiceURL,
	)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("gateway stopped")
}

// buildBackends constructs the reverse proxies for all downstream services.
func buildBackends(cfg config.Config, logger *slog.Logger) (handler.Backends, error) {
	backends := handler.Backends{
		FeatureStoreURL:    cfg.FeatureStoreURL,
		MLServiceURL:       cfg.MLServiceURL,
		RiskServiceURL:     cfg.RiskServiceURL,
		CustomerServiceURL: cfg.CustomerServiceURL,
		PaymentServiceURL:  cfg.PaymentServiceURL,
	}

	var err error
	if backends.FeatureStore, err = proxy.New(cfg.FeatureStoreURL, logger); err != nil {
		return backends, fmt.Errorf("feature store proxy: %w", err)
	}
	if backends.MLService, err = proxy.New(cfg.MLServiceURL, logger); err != nil {
		return backends, fmt.Errorf("ml service proxy: %w", err)
	}
	if backends.RiskService, err = proxy.New(cfg.RiskServiceURL, logger); err != nil {
		return backends, fmt.Errorf("risk service proxy: %w", err)
	}
	if backends.CustomerService, err = proxy.New(cfg.CustomerServiceURL, logger); err != nil {
		return backends, fmt.Errorf("customer service proxy: %w", err)
	}
	if backends.PaymentService, err = proxy.New(cfg.PaymentServiceURL, logger); err != nil {
		return backends, fmt.Errorf("payment service proxy: %w", err)
	}
	return backends, nil
}
