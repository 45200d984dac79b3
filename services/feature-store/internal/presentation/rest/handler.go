package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/domain/port"
)

// Handler exposes the feature storage and serving endpoints.
type Handler struct {
	repo     port.FeatureRepository
	writeCtr metric.Int64Counter
	logger   *slog.Logger
}

// NewHandler creates the REST handler for the feature store.
func NewHandler(repo port.FeatureRepository, writeCtr metric.Int64Counter, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		writeCtr: writeCtr,
		logger:   logger,
	}
}

// RegisterRoutes registers all feature store routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /features/{group}/{entity}", h.StoreFeatures)
	mux.HandleFunc("GET /features/{group}/{entity}", h.GetFeatures)
	mux.HandleFunc("GET /features/{group}", h.ListEntities)
	mux.HandleFunc("GET /feature-groups", h.ListGroups)
}

// StoreFeatures stores a feature map for an entity. Unknown groups are
// created on write.
func (h *Handler) StoreFeatures(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	entityID := r.PathValue("entity")

	var features map[string]any
	if err := json.NewDecoder(r.Body).Decode(&features); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	record := h.repo.Store(group, entityID, features)
	h.logger.Info("features stored", "feature_group", group, "entity_id", entityID)
	h.writeCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("feature_group", group),
	))

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Features stored successfully",
		"feature_group": group,
		"entity_id":     entityID,
		"timestamp":     record.Timestamp,
	})
}

// GetFeatures returns the stored feature record for an entity.
func (h *Handler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	entityID := r.PathValue("entity")

	record, err := h.repo.Get(group, entityID)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// ListEntities returns the entity IDs stored in a feature group.
func (h *Handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")

	ids, err := h.repo.ListEntities(group)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"feature_group": group,
		"entities":      ids,
		"count":         len(ids),
	})
}

// ListGroups returns all feature groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.repo.ListGroups()

	writeJSON(w, http.StatusOK, map[string]any{
		"feature_groups": groups,
		"count":          len(groups),
	})
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrGroupNotFound):
		writeError(w, http.StatusNotFound, "Feature group not found")
	case errors.Is(err, port.ErrEntityNotFound):
		writeError(w, http.StatusNotFound, "Entity not found")
	default:
		h.logger.Error("feature lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "feature lookup failed")
	}
}

// HealthHandler provides HTTP health check endpoints for the feature store.
type HealthHandler struct {
	logger    *slog.Logger
	count     func() int
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. count reports the
// total number of stored feature records for the health payload.
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
		"service":        "feature-store",
		"version":        "1.0.0",
		"uptime":         time.Since(h.startTime).String(),
		"features_count": h.count(),
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
