package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessPaymentRequest submits a payment for processing.
type ProcessPaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
}

// ProcessPaymentResponse reports the outcome of a processed payment.
type ProcessPaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ProcessedAt time.Time       `json:"processed_at"`
}
