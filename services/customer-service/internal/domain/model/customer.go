package model

import "time"

// Customer statuses.
const (
	CustomerStatusActive   = "ACTIVE"
	CustomerStatusInactive = "INACTIVE"
)

// Customer is a platform customer record.
type Customer struct {
	ID             string    `json:"id"`
	CustomerNumber string    `json:"customer_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// KYC statuses and levels.
const (
	KYCStatusPending  = "PENDING"
	KYCStatusApproved = "APPROVED"
	KYCStatusRejected = "REJECTED"
)

// KYCRecord tracks a customer's know-your-customer verification state.
type KYCRecord struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	Status          string     `json:"status"`
	Level           string     `json:"level,omitempty"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
