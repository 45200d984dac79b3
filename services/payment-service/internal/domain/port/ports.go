package port

import (
	"context"
	"errors"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/model"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository stores processed payments.
type PaymentRepository interface {
	Save(payment model.Payment)
	Get(id string) (model.Payment, error)
}

// PaymentEvent is implemented by the events this service publishes.
type PaymentEvent interface {
	EventType() string
	AggregateID() string
}

// EventPublisher publishes payment events. Implementations are best-effort;
// a broker failure must not fail the originating request.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, evt PaymentEvent)
}
