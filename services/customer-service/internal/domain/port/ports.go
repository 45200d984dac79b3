package port

import (
	"context"
	"errors"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrKYCNotFound      = errors.New("kyc record not found")
)

// CustomerRepository stores customer records.
type CustomerRepository interface {
	Create(customer model.Customer)
	Update(customer model.Customer) error
	Get(id string) (model.Customer, error)
	// List returns a page of customers ordered newest first, plus the
	// total count.
	List(page, limit int) ([]model.Customer, int)
}

// KYCRepository stores KYC records, one per customer.
type KYCRepository interface {
	Save(record model.KYCRecord)
	GetByCustomer(customerID string) (model.KYCRecord, error)
	GetByID(id string) (model.KYCRecord, error)
}

// CustomerEvent is implemented by the events this service publishes.
type CustomerEvent interface {
	EventType() string
	AggregateID() string
}

// EventPublisher publishes customer lifecycle events. Implementations are
// best-effort; a broker failure must not fail the originating request.
type EventPublisher interface {
	PublishCustomerEvent(ctx context.Context, evt CustomerEvent)
}
