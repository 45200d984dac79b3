package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
)

// Handler exposes the customer and KYC endpoints.
type Handler struct {
	customersUC *usecase.ManageCustomersUseCase
	kycUC       *usecase.ManageKYCUseCase
	writeCtr    metric.Int64Counter
	logger      *slog.Logger
}

// NewHandler creates the REST handler for the customer service.
func NewHandler(customersUC *usecase.ManageCustomersUseCase, kycUC *usecase.ManageKYCUseCase, writeCtr metric.Int64Counter, logger *slog.Logger) *Handler {
	return &Handler{
		customersUC: customersUC,
		kycUC:       kycUC,
		writeCtr:    writeCtr,
		logger:      logger,
	}
}

// RegisterRoutes registers all customer service routes on the provided ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /customers", h.ListCustomers)
	mux.HandleFunc("POST /customers", h.CreateCustomer)
	mux.HandleFunc("GET /customers/{id}", h.GetCustomer)
	mux.HandleFunc("PUT /customers/{id}", h.UpdateCustomer)
	mux.HandleFunc("GET /kyc/customer/{customerID}", h.GetKYC)
	mux.HandleFunc("POST /kyc/customer/{customerID}", h.UpsertKYC)
	mux.HandleFunc("PATCH /kyc/{id}/status", h.UpdateKYCStatus)
}

// ListCustomers returns a page of customers, newest first.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	writeJSON(w, http.StatusOK, h.customersUC.List(page, limit))
}

// CreateCustomer registers a new customer.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		writeError(w, http.StatusUnprocessableEntity, "first_name, last_name and email are required")
		return
	}

	customer := h.customersUC.Create(r.Context(), req)
	h.writeCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("operation", "create"),
	))

	writeJSON(w, http.StatusCreated, dto.CustomerResponse{
		Customer:      customer,
		CorrelationID: uuid.NewString(),
	})
}

// GetCustomer returns a single customer by ID.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customersUC.Get(r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.CustomerResponse{
		Customer:      customer,
		CorrelationID: uuid.NewString(),
	})
}

// UpdateCustomer applies a partial update to a customer.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	customer, err := h.customersUC.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	h.writeCtr.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("operation", "update"),
	))

	writeJSON(w, http.StatusOK, dto.CustomerResponse{
		Customer:      customer,
		CorrelationID: uuid.NewString(),
	})
}

// GetKYC returns the KYC record for a customer.
func (h *Handler) GetKYC(w http.ResponseWriter, r *http.Request) {
	record, err := h.kycUC.GetForCustomer(r.PathValue("customerID"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.KYCResponse{
		KYC:           record,
		CorrelationID: uuid.NewString(),
	})
}

// UpsertKYC creates or amends the KYC record for a customer. The customer
// must already exist.
func (h *Handler) UpsertKYC(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertKYCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}

	record, err := h.kycUC.Upsert(r.Context(), r.PathValue("customerID"), req)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.KYCResponse{
		KYC:           record,
		CorrelationID: uuid.NewString(),
	})
}

// UpdateKYCStatus transitions a KYC record's status.
func (h *Handler) UpdateKYCStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateKYCStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusUnprocessableEntity, "status is required")
		return
	}

	record, err := h.kycUC.UpdateStatus(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.KYCResponse{
		KYC:           record,
		CorrelationID: uuid.NewString(),
	})
}

func (h *Handler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found")
	case errors.Is(err, port.ErrKYCNotFound):
		writeError(w, http.StatusNotFound, "KYC record not found")
	default:
		h.logger.Error("customer lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "customer lookup failed")
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// HealthHandler provides HTTP health check endpoints for the customer service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
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
		"status":    "healthy",
		"service":   "customer-service",
		"version":   "1.0.0",
		"uptime":    time.Since(h.startTime).String(),
		"timestamp": time.Now().UTC(),
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
