package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/gateway/internal/proxy"
)

// newTestGateway wires a mux against stub backends that each echo which
// service handled the request.
func newTestGateway(t *testing.T) (*http.ServeMux, func()) {
	t.Helper()

	echo := func(name string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"served_by": name, "path": r.URL.Path})
		})
	}

	featureStore := httptest.NewServer(echo("feature-store"))
	mlService := httptest.NewServer(echo("ml-service"))
	riskService := httptest.NewServer(echo("risk-service"))
	customerService := httptest.NewServer(echo("customer-service"))
	paymentService := httptest.NewServer(echo("payment-service"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backends := Backends{
		FeatureStoreURL:    featureStore.URL,
		MLServiceURL:       mlService.URL,
		RiskServiceURL:     riskService.URL,
		CustomerServiceURL: customerService.URL,
		PaymentServiceURL:  paymentService.URL,
	}

	var err error
	if backends.FeatureStore, err = proxy.New(featureStore.URL, logger); err != nil {
		t.Fatalf("feature store proxy: %v", err)
	}
	if backends.MLService, err = proxy.New(mlService.URL, logger); err != nil {
		t.Fatalf("ml service proxy: %v", err)
	}
	if backends.RiskService, err = proxy.New(riskService.URL, logger); err != nil {
		t.Fatalf("risk service proxy: %v", err)
	}
	if backends.CustomerService, err = proxy.New(customerService.URL, logger); err != nil {
		t.Fatalf("customer service proxy: %v", err)
	}
	if backends.PaymentService, err = proxy.New(paymentService.URL, logger); err != nil {
		t.Fatalf("payment service proxy: %v", err)
	}

	mux := http.NewServeMux()
	RegisterRoutes(mux, backends)

	cleanup := func() {
		featureStore.Close()
		mlService.Close()
		riskService.Close()
		customerService.Close()
		paymentService.Close()
	}
	return mux, cleanup
}

func servedBy(t *testing.T, mux *http.ServeMux, method, path string) string {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for %s %s, got %d", method, path, rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body["served_by"]
}

func TestRouting(t *testing.T) {
	mux, cleanup := newTestGateway(t)
	defer cleanup()

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/features/customer_features/cust-1", "feature-store"},
		{http.MethodGet, "/feature-groups", "feature-store"},
		{http.MethodPost, "/predict", "ml-service"},
		{http.MethodPost, "/predict/credit-risk", "ml-service"},
		{http.MethodGet, "/models", "ml-service"},
		{http.MethodPost, "/risk/assess", "risk-service"},
		{http.MethodPost, "/compliance/check", "risk-service"},
		{http.MethodGet, "/customers", "customer-service"},
		{http.MethodGet, "/customers/cust-1", "customer-service"},
		{http.MethodPost, "/kyc/customer/cust-1", "customer-service"},
		{http.MethodPost, "/payments", "payment-service"},
		{http.MethodGet, "/payments/pay_1", "payment-service"},
	}
	for _, tc := range cases {
		if got := servedBy(t, mux, tc.method, tc.path); got != tc.want {
			t.Errorf("%s %s routed to %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestAggregateHealth(t *testing.T) {
	mux, cleanup := newTestGateway(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "healthy" {
		t.Fatalf("expected healthy, got %q", body.Status)
	}
	for _, name := range []string{"feature-store", "ml-service", "risk-service", "customer-service", "payment-service"} {
		if body.Services[name] != "healthy" {
			t.Errorf("expected %s healthy, got %q", name, body.Services[name])
		}
	}
}

func TestAggregateHealthDegraded(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rp, err := proxy.New(down.URL, logger)
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}

	degradedMux := http.NewServeMux()
	RegisterRoutes(degradedMux, Backends{
		FeatureStore:       rp,
		MLService:          rp,
		RiskService:        rp,
		CustomerService:    rp,
		PaymentService:     rp,
		FeatureStoreURL:    down.URL,
		MLServiceURL:       down.URL,
		RiskServiceURL:     down.URL,
		CustomerServiceURL: down.URL,
		PaymentServiceURL:  down.URL,
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	degradedMux.ServeHTTP(rec, req)

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", body.Status)
	}
}

func TestHealthz(t *testing.T) {
	mux, cleanup := newTestGateway(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", body["status"])
	}
}

func TestReadyz(t *testing.T) {
	mux, cleanup := newTestGateway(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ready" {
		t.Fatalf("expected status ready, got %q", body["status"])
	}
}
