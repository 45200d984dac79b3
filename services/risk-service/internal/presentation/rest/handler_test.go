package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/service"
)

type stubPredictor struct {
	creditResult model.CreditRiskResult
	fraudResult  model.FraudResult
}

func (s *stubPredictor) PredictCreditRisk(ctx context.Context, customerID string, features model.CreditFeatures) model.CreditRiskResult {
	return s.creditResult
}

func (s *stubPredictor) PredictFraud(ctx context.Context, txn model.Transaction) model.FraudResult {
	return s.fraudResult
}

func newTestMux(t *testing.T, predictor *stubPredictor) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	counter, err := sdkmetric.NewMeterProvider().Meter("risk-service-test").Int64Counter("risk_assessments_total")
	require.NoError(t, err)

	assessUC := usecase.NewAssessRiskUseCase(predictor, service.NewFactorAnalyzer(), logger)
	complianceUC := usecase.NewCheckComplianceUseCase(logger)

	mux := http.NewServeMux()
	NewHandler(assessUC, complianceUC, counter, logger).RegisterRoutes(mux)
	NewHealthHandler(logger, "http://ml-service:8080").RegisterRoutes(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAssessRiskEndpoint(t *testing.T) {
	t.Run("returns model-backed assessment", func(t *testing.T) {
		predictor := &stubPredictor{
			creditResult: model.CreditRiskResult{
				Outcome:    model.OutcomeModel,
				Prediction: model.CreditRiskPrediction{RiskScore: 45, RiskCategory: "MEDIUM", ApprovalRecommendation: true},
				Confidence: 0.95,
			},
		}
		mux := newTestMux(t, predictor)

		rec := doJSON(t, mux, http.MethodPost, "/risk/assess", map[string]any{
			"customer_id":     "cust-123",
			"assessment_type": "credit",
			"annual_income":   50000,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cust-123", resp["customer_id"])
		assert.Equal(t, 45.0, resp["risk_score"])
		assert.Equal(t, "MEDIUM", resp["risk_category"])
		assert.Equal(t, "APPROVE", resp["recommendation"])
		assert.Equal(t, "MODEL", resp["outcome"])
	})

	t.Run("surfaces the fallback outcome when the model degrades", func(t *testing.T) {
		predictor := &stubPredictor{creditResult: model.SoftFallbackCreditResult()}
		mux := newTestMux(t, predictor)

		rec := doJSON(t, mux, http.MethodPost, "/risk/assess", map[string]any{
			"customer_id":     "cust-123",
			"assessment_type": "credit",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "SOFT_FALLBACK", resp["outcome"])
		assert.Equal(t, 50.0, resp["risk_score"])
		assert.Equal(t, "DECLINE", resp["recommendation"])
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		mux := newTestMux(t, &stubPredictor{})

		req := httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})

	t.Run("rejects missing customer_id", func(t *testing.T) {
		mux := newTestMux(t, &stubPredictor{})

		rec := doJSON(t, mux, http.MethodPost, "/risk/assess", map[string]any{
			"assessment_type": "credit",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "customer_id is required")
	})
}

func TestCustomerProfileEndpoint(t *testing.T) {
	mux := newTestMux(t, &stubPredictor{})

	rec := doJSON(t, mux, http.MethodGet, "/risk/customer/cust-42/profile", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cust-42", resp["customer_id"])
	assert.Equal(t, "MEDIUM", resp["risk_profile"])
	factors, ok := resp["factors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 720.0, factors["credit_score"])
	assert.Equal(t, "GOOD", factors["payment_history"])
}

func TestComplianceEndpoints(t *testing.T) {
	t.Run("check runs requested types", func(t *testing.T) {
		mux := newTestMux(t, &stubPredictor{})

		rec := doJSON(t, mux, http.MethodPost, "/compliance/check", map[string]any{
			"customer_id": "cust-123",
			"check_types": []string{"kyc", "sanctions"},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PASSED", resp["overall_status"])
		assert.Len(t, resp["checks"], 2)
	})

	t.Run("report returns the standing summary", func(t *testing.T) {
		mux := newTestMux(t, &stubPredictor{})

		rec := doJSON(t, mux, http.MethodGet, "/compliance/report/cust-9", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cust-9", resp["customer_id"])
		assert.Equal(t, "PASSED", resp["overall_status"])
		assert.Equal(t, "LOW", resp["risk_level"])
		assert.Len(t, resp["checks"], 2)
	})
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t, &stubPredictor{})

	rec := doJSON(t, mux, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "risk-service", resp["service"])
	assert.Equal(t, "http://ml-service:8080", resp["ml_model_endpoint"])
}
