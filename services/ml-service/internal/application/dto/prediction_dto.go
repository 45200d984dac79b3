package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PredictionRequest is the generic predict-by-name request.
type PredictionRequest struct {
	ModelName  string         `json:"model_name"`
	Features   map[string]any `json:"features"`
	CustomerID string         `json:"customer_id,omitempty"`
}

// CreditRiskRequest is the typed request for the credit risk model.
type CreditRiskRequest struct {
	CustomerID          string          `json:"customer_id"`
	AnnualIncome        decimal.Decimal `json:"annual_income"`
	CreditHistoryLength int             `json:"credit_history_length"`
	CurrentDebt         decimal.Decimal `json:"current_debt"`
	EmploymentStatus    string          `json:"employment_status"`
	Age                 int             `json:"age"`
	LoanAmount          decimal.Decimal `json:"loan_amount"`
	LoanPurpose         string          `json:"loan_purpose"`
}

// FraudDetectionRequest is the typed request for the fraud detection model.
type FraudDetectionRequest struct {
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

// PredictionResponse is returned by every prediction endpoint.
type PredictionResponse struct {
	ModelName     string    `json:"model_name"`
	Prediction    any       `json:"prediction"`
	Confidence    float64   `json:"confidence"`
	Timestamp     time.Time `json:"timestamp"`
	CustomerID    string    `json:"customer_id,omitempty"`
	CorrelationID string    `json:"correlation_id"`
}

// ModelInfo describes a loaded model.
type ModelInfo struct {
	Name      string             `json:"name"`
	Version   string             `json:"version"`
	Type      string             `json:"type"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// ModelListResponse lists all loaded models.
type ModelListResponse struct {
	Models []ModelInfo `json:"models"`
	Total  int         `json:"total"`
}
