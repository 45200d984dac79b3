package dto

import "github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"

// CreateCustomerRequest creates a new customer record.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateCustomerRequest carries a partial customer update; nil fields are
// left unchanged.
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// CustomerResponse wraps a single customer record.
type CustomerResponse struct {
	Customer      model.Customer `json:"customer"`
	CorrelationID string         `json:"correlation_id"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// CustomerListResponse is a paginated customer listing.
type CustomerListResponse struct {
	Customers     []model.Customer `json:"customers"`
	Pagination    Pagination       `json:"pagination"`
	CorrelationID string           `json:"correlation_id"`
}

// UpsertKYCRequest creates or amends the KYC record for a customer.
type UpsertKYCRequest struct {
	Status string `json:"status,omitempty"`
	Level  string `json:"level,omitempty"`
}

// UpdateKYCStatusRequest transitions a KYC record's status.
type UpdateKYCStatusRequest struct {
	Status          string `json:"status"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// KYCResponse wraps a single KYC record.
type KYCResponse struct {
	KYC           model.KYCRecord `json:"kyc"`
	CorrelationID string          `json:"correlation_id"`
}
