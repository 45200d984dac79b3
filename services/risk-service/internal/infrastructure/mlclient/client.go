package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/risk-service/internal/domain/model"
)

// requestTimeout bounds the full round trip to the inference service. It is
// the only cancellation mechanism; there are no retries.
const requestTimeout = 30 * time.Second

// Client calls the ML inference service over HTTP. It implements
// port.RiskPredictor with the two-tier fallback policy: a non-200 response
// yields the neutral soft fallback, a transport failure yields the
// conservative hard fallback. Each prediction is a single attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the inference service at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// creditRiskPayload is the wire request for /predict/credit-risk.
type creditRiskPayload struct {
	CustomerID          string          `json:"customer_id"`
	AnnualIncome        decimal.Decimal `json:"annual_income"`
	CreditHistoryLength int             `json:"credit_history_length"`
	CurrentDebt         decimal.Decimal `json:"current_debt"`
	EmploymentStatus    string          `json:"employment_status"`
	Age                 int             `json:"age"`
	LoanAmount          decimal.Decimal `json:"loan_amount"`
	LoanPurpose         string          `json:"loan_purpose"`
}

// fraudPayload is the wire request for /predict/fraud-detection.
type fraudPayload struct {
	TransactionID             string          `json:"transaction_id"`
	CustomerID                string          `json:"customer_id"`
	Amount                    decimal.Decimal `json:"amount"`
	MerchantCategory          string          `json:"merchant_category"`
	Location                  string          `json:"location"`
	TimeOfDay                 int             `json:"time_of_day"`
	DayOfWeek                 int             `json:"day_of_week"`
	CardPresent               bool            `json:"card_present"`
	PreviousTransactionsCount int             `json:"previous_transactions_count"`
}

type creditPredictionResponse struct {
	Prediction model.CreditRiskPrediction `json:"prediction"`
	Confidence float64                    `json:"confidence"`
}

type fraudPredictionResponse struct {
	Prediction model.FraudPrediction `json:"prediction"`
	Confidence float64               `json:"confidence"`
}

// PredictCreditRisk requests a credit risk prediction for the customer.
func (c *Client) PredictCreditRisk(ctx context.Context, customerID string, features model.CreditFeatures) model.CreditRiskResult {
	payload := creditRiskPayload{
		CustomerID:          customerID,
		AnnualIncome:        features.AnnualIncome,
		CreditHistoryLength: features.CreditHistoryLength,
		CurrentDebt:         features.CurrentDebt,
		EmploymentStatus:    features.EmploymentStatus,
		Age:                 features.Age,
		LoanAmount:          features.LoanAmount,
		LoanPurpose:         features.LoanPurpose,
	}

	var parsed creditPredictionResponse
	outcome := c.post(ctx, "/predict/credit-risk", payload, &parsed)
	switch outcome {
	case model.OutcomeModel:
		c.logger.Info("credit risk prediction received", "customer_id", customerID)
		return model.CreditRiskResult{
			Outcome:    model.OutcomeModel,
			Prediction: parsed.Prediction,
			Confidence: parsed.Confidence,
		}
	case model.OutcomeSoftFallback:
		return model.SoftFallbackCreditResult()
	default:
		return model.HardFallbackCreditResult()
	}
}

// PredictFraud requests a fraud prediction for the transaction.
func (c *Client) PredictFraud(ctx context.Context, txn model.Transaction) model.FraudResult {
	payload := fraudPayload{
		TransactionID:             txn.TransactionID,
		CustomerID:                txn.CustomerID,
		Amount:                    txn.Amount,
		MerchantCategory:          txn.MerchantCategory,
		Location:                  txn.Location,
		TimeOfDay:                 txn.TimeOfDay,
		DayOfWeek:                 txn.DayOfWeek,
		CardPresent:               txn.CardPresent,
		PreviousTransactionsCount: txn.PreviousTransactionsCount,
	}

	var parsed fraudPredictionResponse
	outcome := c.post(ctx, "/predict/fraud-detection", payload, &parsed)
	switch outcome {
	case model.OutcomeModel:
		return model.FraudResult{
			Outcome:    model.OutcomeModel,
			Prediction: parsed.Prediction,
			Confidence: parsed.Confidence,
		}
	case model.OutcomeSoftFallback:
		return model.SoftFallbackFraudResult()
	default:
		return model.HardFallbackFraudResult()
	}
}

// post performs a single POST to the inference service and classifies how
// it went. A 200 body that fails to parse counts as a hard failure: a
// malformed risk engine is as untrustworthy as an absent one.
func (c *Client) post(ctx context.Context, path string, payload, out any) model.Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to encode prediction request", "path", path, "error", err)
		return model.OutcomeHardFallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build prediction request", "path", path, "error", err)
		return model.OutcomeHardFallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ml service unreachable, using conservative fallback", "path", path, "error", err)
		return model.OutcomeHardFallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("ml service request failed, using neutral fallback",
			"path", path,
			"status_code", resp.StatusCode,
		)
		return model.OutcomeSoftFallback
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to parse prediction response", "path", path, "error", err)
		return model.OutcomeHardFallback
	}

	return model.OutcomeModel
}
