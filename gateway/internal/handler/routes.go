package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Backends holds the reverse proxies for the downstream services.
type Backends struct {
	FeatureStore    http.Handler
	MLService       http.Handler
	RiskService     http.Handler
	CustomerService http.Handler
	PaymentService  http.Handler

	// Health probe URLs for the aggregate health endpoint.
	FeatureStoreURL    string
	MLServiceURL       string
	RiskServiceURL     string
	CustomerServiceURL string
	PaymentServiceURL  string
}

const healthProbeTimeout = 2 * time.Second

// RegisterRoutes registers path-prefix routing to the downstream services
// on the given ServeMux.
func RegisterRoutes(mux *http.ServeMux, backends Backends) {
	// Gateway health plus an aggregate view of the downstreams.
	mux.HandleFunc("GET /health", aggregateHealth(backends))
	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /readyz", readyz)

	// feature-store
	mux.Handle("/features/", backends.FeatureStore)
	mux.Handle("/feature-groups", backends.FeatureStore)

	// ml-service
	mux.Handle("/predict", backends.MLService)
	mux.Handle("/predict/", backends.MLService)
	mux.Handle("/models", backends.MLService)
	mux.Handle("/models/", backends.MLService)

	// risk-service
	mux.Handle("/risk/", backends.RiskService)
	mux.Handle("/compliance/", backends.RiskService)

	// customer-service
	mux.Handle("/customers", backends.CustomerService)
	mux.Handle("/customers/", backends.CustomerService)
	mux.Handle("/kyc/", backends.CustomerService)

	// payment-service
	mux.Handle("/payments", backends.PaymentService)
	mux.Handle("/payments/", backends.PaymentService)
}

// aggregateHealth probes each downstream's health endpoint and reports a
// combined status. A downstream that fails to answer within the probe
// timeout is reported unhealthy; the gateway itself stays 200 regardless,
// the payload carries the detail.
func aggregateHealth(backends Backends) http.HandlerFunc {
	targets := map[string]string{
		"feature-store":    backends.FeatureStoreURL,
		"ml-service":       backends.MLServiceURL,
		"risk-service":     backends.RiskServiceURL,
		"customer-service": backends.CustomerServiceURL,
		"payment-service":  backends.PaymentServiceURL,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]string, len(targets))
		overall := "healthy"
		for name, base := range targets {
			status := probe(r.Context(), base+"/health")
			if status != "healthy" {
				overall = "degraded"
			}
			services[name] = status
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":    overall,
			"service":   "gateway",
			"services":  services,
			"timestamp": time.Now().UTC(),
		})
	}
}

func probe(ctx context.Context, url string) string {
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, url, nil)
	if err != nil {
		return "unhealthy"
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "unhealthy"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "unhealthy"
	}
	return "healthy"
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}
