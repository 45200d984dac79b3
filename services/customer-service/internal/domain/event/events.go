package event

import "time"

// Event types published by the customer service.
const (
	EventTypeCustomerCreated  = "customer.created"
	EventTypeCustomerUpdated  = "customer.updated"
	EventTypeKYCUpdated       = "kyc.updated"
	EventTypeKYCStatusChanged = "kyc.status_changed"
)

// CustomerCreated is emitted when a new customer record is created.
type CustomerCreated struct {
	CorrelationID  string    `json:"correlation_id"`
	CustomerID     string    `json:"customer_id"`
	CustomerNumber string    `json:"customer_number"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
}

func (e CustomerCreated) EventType() string   { return EventTypeCustomerCreated }
func (e CustomerCreated) AggregateID() string { return e.CustomerID }

// CustomerUpdated is emitted when an existing customer record changes.
type CustomerUpdated struct {
	CorrelationID  string         `json:"correlation_id"`
	CustomerID     string         `json:"customer_id"`
	CustomerNumber string         `json:"customer_number"`
	Changes        map[string]any `json:"changes"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (e CustomerUpdated) EventType() string   { return EventTypeCustomerUpdated }
func (e CustomerUpdated) AggregateID() string { return e.CustomerID }

// KYCUpdated is emitted when a KYC record is created or amended.
type KYCUpdated struct {
	CorrelationID string    `json:"correlation_id"`
	CustomerID    string    `json:"customer_id"`
	KYCID         string    `json:"kyc_id"`
	Status        string    `json:"status"`
	Level         string    `json:"level,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e KYCUpdated) EventType() string   { return EventTypeKYCUpdated }
func (e KYCUpdated) AggregateID() string { return e.CustomerID }

// KYCStatusChanged is emitted when a KYC record transitions status.
type KYCStatusChanged struct {
	CorrelationID   string    `json:"correlation_id"`
	CustomerID      string    `json:"customer_id"`
	KYCID           string    `json:"kyc_id"`
	OldStatus       string    `json:"old_status"`
	NewStatus       string    `json:"new_status"`
	ApprovedBy      string    `json:"approved_by,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ChangedAt       time.Time `json:"changed_at"`
}

func (e KYCStatusChanged) EventType() string   { return EventTypeKYCStatusChanged }
func (e KYCStatusChanged) AggregateID() string { return e.CustomerID }
