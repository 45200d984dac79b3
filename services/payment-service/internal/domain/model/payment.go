package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentStatusCompleted = "completed"
)

// Payment is a processed payment record.
type Payment struct {
	ID          string          `json:"payment_id"`
	CustomerID  string          `json:"customer_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Status      string          `json:"status"`
	ProcessedAt time.Time       `json:"processed_at"`
}
