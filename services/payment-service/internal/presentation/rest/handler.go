package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
)

// Handler exposes the payment processing endpoints.
type Handler struct {
	paymentUC  *usecase.ProcessPaymentUseCase
	paymentCtr metric.Int64Counter
	logger     *slog.Logger
}

// NewHandler creates the REST handler for the payment service.
func NewHandler(paymentUC *usecase.ProcessPaymentUseCase, paymentCtr metric.Int64Counter, logger *slog.Logger) *Handler {
	return &Handler{
		paymentUC:  paymentUC,
		paymentCtr: paymentCtr,
		logger:     logger,
	}
}

// RegisterRoutes registers all payment routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /payments", h.ProcessPayment)
	mux.HandleFunc("GET /payments/{id}", h.GetPayment)
}

// ProcessPayment processes a payment and returns the result.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.paymentUC.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrMissingCurrency):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error("payment processing failed", "error", err)
			writeError(w, http.StatusInternalServerError, "payment processing failed")
		}
		return
	}

	h.paymentCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("currency", resp.Currency),
	))

	writeJSON(w, http.StatusOK, resp)
}

// GetPayment returns a previously processed payment.
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.paymentUC.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, port.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "Payment not found")
			return
		}
		h.logger.Error("payment lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "payment lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// HealthHandler provides HTTP health check endpoints for the payment service.
type HealthHandler struct {
	logger    *slog.Logger
	count     func() int
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. count reports the
// number of processed payments for the health payload.
func NewHealthHandler(logger *slog.Logger, count func() int) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		count:     count,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /health/ready", h.Ready)
	mux.HandleFunc("GET /health/live", h.Live)
}

// Health handles overall health requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"service":        "payment-service",
		"version":        "1.0.0",
		"uptime":         time.Since(h.startTime).String(),
		"payments_count": h.count(),
		"timestamp":      time.Now().UTC(),
	})
}

// Ready handles readiness probe requests.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}

// Live handles liveness probe requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
