package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides HTTP health check endpoints for the risk service.
type HealthHandler struct {
	logger     *slog.Logger
	mlEndpoint string
	startTime  time.Time
}

// NewHealthHandler creates a new health check handler. mlEndpoint is
// reported in the health payload so operators can see which inference
// service this instance depends on.
func NewHealthHandler(logger *slog.Logger, mlEndpoint string) *HealthHandler {
	return &HealthHandler{
		logger:     logger,
		mlEndpoint: mlEndpoint,
		startTime:  time.Now(),
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
	h.respond(w, map[string]any{
		"status":            "healthy",
		"service":           "risk-service",
		"version":           "1.0.0",
		"uptime":            time.Since(h.startTime).String(),
		"ml_model_endpoint": h.mlEndpoint,
		"timestamp":         time.Now().UTC(),
	})
}

// Ready handles readiness probe requests.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]any{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}

// Live handles liveness probe requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]any{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthHandler) respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}
