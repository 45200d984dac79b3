package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/kafka"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/pkg/observability"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/infrastructure/config"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/infrastructure/memory"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/infrastructure/messaging"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting payment-service", "http_port", cfg.HTTPPort)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "payment-service",
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdown(ctx)
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "payment-service",
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(ctx)

	paymentCtr, err := meterProvider.Meter("payment-service").Int64Counter(
		"payments_processed_total",
		metric.WithDescription("Number of payments processed"),
	)
	if err != nil {
		logger.Error("failed to create payment counter", "error", err)
		os.Exit(1)
	}

	// Wire infrastructure adapters.
	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.KafkaBrokers})
	defer producer.Close()
	publisher := messaging.NewKafkaPublisher(producer, logger)

	store := memory.NewPaymentStore()

	// Wire use cases.
	paymentUC := usecase.NewProcessPaymentUseCase(store, publisher, logger)

	// HTTP server.
	handler := rest.NewHandler(paymentUC, paymentCtr, logger)
	healthHandler := rest.NewHealthHandler(logger, store.Count)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      corsMiddleware(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("payment-service started",
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down payment-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("payment-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
