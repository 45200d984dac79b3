// Package e2e wires the full platform together in-process - every service
// behind the gateway, real reverse proxies in between - and exercises the
// cross-service flows end to end. No external processes or brokers are
// needed; model inference runs against the real registry.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/handler"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/proxy"

	fsmemory "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/infrastructure/memory"
	fsrest "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/presentation/rest"

	mlevent "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/event"
	mlservice "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/service"
	mlusecase "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/application/usecase"
	mlrest "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/presentation/rest"

	riskusecase "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/application/usecase"
	riskservice "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/service"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/infrastructure/mlclient"
	riskrest "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/presentation/rest"

	custport "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
	custmemory "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/infrastructure/memory"
	custusecase "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/usecase"
	custrest "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/presentation/rest"

	payport "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
	paymemory "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/infrastructure/memory"
	payusecase "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/usecase"
	payrest "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/presentation/rest"
)

type noopMLPublisher struct{}

func (noopMLPublisher) PublishPrediction(_ context.Context, _ mlevent.PredictionMade) {}

type noopCustomerPublisher struct{}

func (noopCustomerPublisher) PublishCustomerEvent(_ context.Context, _ custport.CustomerEvent) {}

type noopPaymentPublisher struct{}

func (noopPaymentPublisher) PublishPaymentEvent(_ context.Context, _ payport.PaymentEvent) {}

// platform holds the assembled in-process deployment. The gateway handler
// proxies to real HTTP servers for each downstream service.
type platform struct {
	gateway  http.Handler
	mlServer *httptest.Server
}

func newCounter(t *testing.T, service, name string) metric.Int64Counter {
	t.Helper()
	counter, err := sdkmetric.NewMeterProvider().Meter(service).Int64Counter(name)
	require.NoError(t, err)
	return counter
}

func newPlatform(t *testing.T) *platform {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// feature-store
	fsStore := fsmemory.NewStore()
	fsMux := http.NewServeMux()
	fsrest.NewHandler(fsStore, newCounter(t, "feature-store", "feature_writes_total"), logger).RegisterRoutes(fsMux)
	fsrest.NewHealthHandler(logger, fsStore.Count).RegisterRoutes(fsMux)
	fsServer := httptest.NewServer(fsMux)
	t.Cleanup(fsServer.Close)

	// ml-service with the real model registry.
	registry := mlservice.NewRegistry()
	registry.Register(mlservice.NewCreditRiskModel(mlservice.DefaultCreditRiskParams()))
	registry.Register(mlservice.NewFraudDetectionModel(mlservice.DefaultFraudDetectionParams()))

	publisher := noopMLPublisher{}
	mlMux := http.NewServeMux()
	mlrest.NewHandler(
		mlusecase.NewPredict(registry, publisher),
		mlusecase.NewPredictCreditRisk(registry, publisher),
		mlusecase.NewPredictFraud(registry, publisher),
		registry,
		newCounter(t, "ml-service", "ml_predictions_total"),
		logger,
	).RegisterRoutes(mlMux)
	mlrest.NewHealthHandler(logger, func() int { return len(registry.Names()) }).RegisterRoutes(mlMux)
	mlServer := httptest.NewServer(mlMux)
	t.Cleanup(mlServer.Close)

	// risk-service pointed at the live ml-service.
	predictor := mlclient.NewClient(mlServer.URL, logger)
	riskMux := http.NewServeMux()
	riskrest.NewHandler(
		riskusecase.NewAssessRiskUseCase(predictor, riskservice.NewFactorAnalyzer(), logger),
		riskusecase.NewCheckComplianceUseCase(logger),
		newCounter(t, "risk-service", "risk_assessments_total"),
		logger,
	).RegisterRoutes(riskMux)
	riskrest.NewHealthHandler(logger, mlServer.URL).RegisterRoutes(riskMux)
	riskServer := httptest.NewServer(riskMux)
	t.Cleanup(riskServer.Close)

	// customer-service
	customers := custmemory.NewCustomerStore()
	custMux := http.NewServeMux()
	custrest.NewHandler(
		custusecase.NewManageCustomersUseCase(customers, noopCustomerPublisher{}, logger),
		custusecase.NewManageKYCUseCase(customers, custmemory.NewKYCStore(), noopCustomerPublisher{}, logger),
		newCounter(t, "customer-service", "customer_writes_total"),
		logger,
	).RegisterRoutes(custMux)
	custrest.NewHealthHandler(logger).RegisterRoutes(custMux)
	custServer := httptest.NewServer(custMux)
	t.Cleanup(custServer.Close)

	// payment-service
	payStore := paymemory.NewPaymentStore()
	payMux := http.NewServeMux()
	payrest.NewHandler(
		payusecase.NewProcessPaymentUseCase(payStore, noopPaymentPublisher{}, logger),
		newCounter(t, "payment-service", "payments_processed_total"),
		logger,
	).RegisterRoutes(payMux)
	payrest.NewHealthHandler(logger, payStore.Count).RegisterRoutes(payMux)
	payServer := httptest.NewServer(payMux)
	t.Cleanup(payServer.Close)

	// gateway
	backends := handler.Backends{
		FeatureStoreURL:    fsServer.URL,
		MLServiceURL:       mlServer.URL,
		RiskServiceURL:     riskServer.URL,
		CustomerServiceURL: custServer.URL,
		PaymentServiceURL:  payServer.URL,
	}
	var err error
	backends.FeatureStore, err = proxy.New(fsServer.URL, logger)
	require.NoError(t, err)
	backends.MLService, err = proxy.New(mlServer.URL, logger)
	require.NoError(t, err)
	backends.RiskService, err = proxy.New(riskServer.URL, logger)
	require.NoError(t, err)
	backends.CustomerService, err = proxy.New(custServer.URL, logger)
	require.NoError(t, err)
	backends.PaymentService, err = proxy.New(payServer.URL, logger)
	require.NoError(t, err)

	gatewayMux := http.NewServeMux()
	handler.RegisterRoutes(gatewayMux, backends)

	return &platform{gateway: gatewayMux, mlServer: mlServer}
}

func (p *platform) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	p.gateway.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRiskAssessmentThroughGateway(t *testing.T) {
	p := newPlatform(t)

	rec, body := p.do(t, http.MethodPost, "/risk/assess", map[string]any{
		"customer_id":           "cust-e2e-1",
		"assessment_type":       "credit",
		"annual_income":         85000,
		"loan_amount":           20000,
		"credit_history_length": 7,
		"debt_to_income_ratio":  0.2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "cust-e2e-1", body["customer_id"])
	assert.Equal(t, "MODEL", body["outcome"])
	assert.Contains(t, []any{"APPROVE", "DECLINE"}, body["recommendation"])
	assert.NotEmpty(t, body["risk_category"])

	factors := body["factors"].(map[string]any)
	assert.Equal(t, "GOOD", factors["income_adequacy"])
	assert.Equal(t, "LOW", factors["debt_burden"])
}

func TestRiskAssessmentFallsBackWhenModelServiceDown(t *testing.T) {
	p := newPlatform(t)
	p.mlServer.Close()

	rec, body := p.do(t, http.MethodPost, "/risk/assess", map[string]any{
		"customer_id":     "cust-e2e-2",
		"assessment_type": "credit",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "HARD_FALLBACK", body["outcome"])
	assert.Equal(t, 75.0, body["risk_score"])
	assert.Equal(t, "HIGH", body["risk_category"])
	assert.Equal(t, "DECLINE", body["recommendation"])
	assert.Equal(t, 0.0, body["confidence"])
}

func TestFeatureLifecycleThroughGateway(t *testing.T) {
	p := newPlatform(t)

	rec, _ := p.do(t, http.MethodPost, "/features/customer_features/cust-e2e-3", map[string]any{
		"annual_income": 72000,
		"segment":       "retail",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := p.do(t, http.MethodGet, "/features/customer_features/cust-e2e-3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	features := body["features"].(map[string]any)
	assert.Equal(t, 72000.0, features["annual_income"])
	assert.Equal(t, "retail", features["segment"])
}

func TestCustomerOnboardingThroughGateway(t *testing.T) {
	p := newPlatform(t)

	rec, body := p.do(t, http.MethodPost, "/customers", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	customer := body["customer"].(map[string]any)
	customerID := customer["id"].(string)
	assert.True(t, strings.HasPrefix(customer["customer_number"].(string), "CUST-"))

	rec, body = p.do(t, http.MethodPost, "/kyc/customer/"+customerID, map[string]any{
		"level": "ENHANCED",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	record := body["kyc"].(map[string]any)
	assert.Equal(t, "PENDING", record["status"])

	rec, body = p.do(t, http.MethodPatch, "/kyc/"+record["id"].(string)+"/status", map[string]any{
		"status":      "APPROVED",
		"approved_by": "e2e-officer",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVED", body["kyc"].(map[string]any)["status"])
}

func TestPaymentThroughGateway(t *testing.T) {
	p := newPlatform(t)

	rec, body := p.do(t, http.MethodPost, "/payments", map[string]any{
		"customer_id": "cust-e2e-4",
		"amount":      250.00,
		"currency":    "USD",
		"method":      "card",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(body["payment_id"].(string), "pay_"))
	assert.Equal(t, "completed", body["status"])
}

func TestAggregateHealthThroughGateway(t *testing.T) {
	p := newPlatform(t)

	rec, body := p.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	services := body["services"].(map[string]any)
	for _, name := range []string{"feature-store", "ml-service", "risk-service", "customer-service", "payment-service"} {
		assert.Equal(t, "healthy", services[name], name)
	}
}
