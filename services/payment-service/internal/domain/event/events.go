package event

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published by the payment service.
const (
	EventTypePaymentCompleted = "payment.completed"
)

// PaymentCompleted is emitted when a payment finishes processing.
type PaymentCompleted struct {
	CorrelationID string          `json:"correlation_id"`
	PaymentID     string          `json:"payment_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ProcessedAt   time.Time       `json:"processed_at"`
}

func (e PaymentCompleted) EventType() string   { return EventTypePaymentCompleted }
func (e PaymentCompleted) AggregateID() string { return e.PaymentID }
