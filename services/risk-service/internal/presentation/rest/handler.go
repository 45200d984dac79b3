package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/usecase"
)

// Handler exposes the risk assessment and compliance endpoints.
type Handler struct {
	assessUC      *usecase.AssessRiskUseCase
	complianceUC  *usecase.CheckComplianceUseCase
	assessmentCtr metric.Int64Counter
	logger        *slog.Logger
	startedAt     time.Time
}

// NewHandler creates the REST handler for the risk service.
func NewHandler(
	assessUC *usecase.AssessRiskUseCase,
	complianceUC *usecase.CheckComplianceUseCase,
	assessmentCtr metric.Int64Counter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		assessUC:      assessUC,
		complianceUC:  complianceUC,
		assessmentCtr: assessmentCtr,
		logger:        logger,
		startedAt:     time.Now(),
	}
}

// RegisterRoutes registers all risk service routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /risk/assess", h.AssessRisk)
	mux.HandleFunc("GET /risk/customer/{id}/profile", h.CustomerProfile)
	mux.HandleFunc("POST /compliance/check", h.CheckCompliance)
	mux.HandleFunc("GET /compliance/report/{id}", h.ComplianceReport)
}

// AssessRisk runs a risk assessment for the requested customer.
func (h *Handler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req dto.RiskAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if req.CustomerID == "" {
		writeError(w, http.StatusUnprocessableEntity, "customer_id is required")
		return
	}

	resp := h.assessUC.Execute(r.Context(), req)

	h.assessmentCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("assessment_type", resp.AssessmentType),
		attribute.String("outcome", resp.Outcome),
	))
	writeJSON(w, http.StatusOK, resp)
}

// CustomerProfile returns the customer's standing risk summary.
func (h *Handler) CustomerProfile(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	writeJSON(w, http.StatusOK, dto.CustomerRiskProfile{
		CustomerID:     customerID,
		RiskProfile:    "MEDIUM",
		LastAssessment: "2024-01-15T10:30:00Z",
		Factors: map[string]any{
			"credit_score":      720,
			"payment_history":   "GOOD",
			"account_stability": "HIGH",
		},
	})
}

// CheckCompliance runs the requested compliance checks.
func (h *Handler) CheckCompliance(w http.ResponseWriter, r *http.Request) {
	var req dto.ComplianceCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	if req.CustomerID == "" {
		writeError(w, http.StatusUnprocessableEntity, "customer_id is required")
		return
	}

	report := h.complianceUC.Execute(r.Context(), req)
	writeJSON(w, http.StatusOK, report)
}

// ComplianceReport returns the standing compliance report for a customer.
func (h *Handler) ComplianceReport(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")

	report := h.complianceUC.Report(r.Context(), customerID)
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
