package rest

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
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/usecase"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/infrastructure/memory"
)

type noopPublisher struct{}

func (noopPublisher) PublishPaymentEvent(_ context.Context, _ port.PaymentEvent) {}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	counter, err := sdkmetric.NewMeterProvider().Meter("payment-service-test").Int64Counter("payments_processed_total")
	require.NoError(t, err)

	store := memory.NewPaymentStore()
	paymentUC := usecase.NewProcessPaymentUseCase(store, noopPublisher{}, logger)

	mux := http.NewServeMux()
	NewHandler(paymentUC, counter, logger).RegisterRoutes(mux)
	NewHealthHandler(logger, store.Count).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProcessPaymentEndpoint(t *testing.T) {
	mux := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, "/payments", map[string]any{
		"customer_id": "cust-1",
		"amount":      199.99,
		"currency":    "USD",
		"method":      "card",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.True(t, strings.HasPrefix(body["payment_id"].(string), "pay_"))
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "199.99", body["amount"])
	assert.Equal(t, "USD", body["currency"])
	assert.NotEmpty(t, body["processed_at"])

	t.Run("stored payment is retrievable", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodGet, "/payments/"+body["payment_id"].(string), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cust-1", decodeBody(t, rec)["customer_id"])
	})
}

func TestProcessPaymentEndpointRejections(t *testing.T) {
	mux := newTestMux(t)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("zero amount", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/payments", map[string]any{
			"amount":   0,
			"currency": "USD",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "amount must be positive", decodeBody(t, rec)["error"])
	})

	t.Run("missing currency", func(t *testing.T) {
		rec := doRequest(t, mux, http.MethodPost, "/payments", map[string]any{
			"amount": 10,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestGetPaymentEndpointNotFound(t *testing.T) {
	mux := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/payments/pay_missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payment not found", decodeBody(t, rec)["error"])
}

func TestPaymentHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "payment-service", body["service"])
	assert.Equal(t, 0.0, body["payments_count"])
}
