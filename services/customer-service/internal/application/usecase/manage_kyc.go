package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/event"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
)

// ManageKYCUseCase covers KYC record upserts and status transitions.
type ManageKYCUseCase struct {
	customers port.CustomerRepository
	records   port.KYCRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewManageKYCUseCase(customers port.CustomerRepository, records port.KYCRepository, publisher port.EventPublisher, logger *slog.Logger) *ManageKYCUseCase {
	return &ManageKYCUseCase{
		customers: customers,
		records:   records,
		publisher: publisher,
		logger:    logger,
	}
}

// GetForCustomer returns the KYC record for a customer.
func (uc *ManageKYCUseCase) GetForCustomer(customerID string) (model.KYCRecord, error) {
	return uc.records.GetByCustomer(customerID)
}

// Upsert creates the customer's KYC record or amends the existing one, and
// emits a kyc.updated event. The customer must exist.
func (uc *ManageKYCUseCase) Upsert(ctx context.Context, customerID string, req dto.UpsertKYCRequest) (model.KYCRecord, error) {
	if _, err := uc.customers.Get(customerID); err != nil {
		return model.KYCRecord{}, err
	}

	record, err := uc.records.GetByCustomer(customerID)
	if err != nil {
		record = model.KYCRecord{
			ID:         uuid.NewString(),
			CustomerID: customerID,
			Status:     model.KYCStatusPending,
		}
	}

	if req.Status != "" {
		record.Status = req.Status
	}
	if req.Level != "" {
		record.Level = req.Level
	}
	record.UpdatedAt = time.Now().UTC()
	uc.records.Save(record)

	uc.publisher.PublishCustomerEvent(ctx, event.KYCUpdated{
		CorrelationID: uuid.NewString(),
		CustomerID:    customerID,
		KYCID:         record.ID,
		Status:        record.Status,
		Level:         record.Level,
		UpdatedAt:     record.UpdatedAt,
	})

	uc.logger.Info("kyc record updated",
		"customer_id", customerID,
		"kyc_id", record.ID,
		"status", record.Status,
	)
	return record, nil
}

// UpdateStatus transitions a KYC record's status and emits a
// kyc.status_changed event. An approval stamps the approver and time; a
// rejection stores the reason.
func (uc *ManageKYCUseCase) UpdateStatus(ctx context.Context, kycID string, req dto.UpdateKYCStatusRequest) (model.KYCRecord, error) {
	record, err := uc.records.GetByID(kycID)
	if err != nil {
		return model.KYCRecord{}, err
	}

	oldStatus := record.Status
	record.Status = req.Status
	switch req.Status {
	case model.KYCStatusApproved:
		record.ApprovedBy = req.ApprovedBy
		now := time.Now().UTC()
		record.ApprovedAt = &now
	case model.KYCStatusRejected:
		record.RejectionReason = req.RejectionReason
	}
	record.UpdatedAt = time.Now().UTC()
	uc.records.Save(record)

	uc.publisher.PublishCustomerEvent(ctx, event.KYCStatusChanged{
		CorrelationID:   uuid.NewString(),
		CustomerID:      record.CustomerID,
		KYCID:           record.ID,
		OldStatus:       oldStatus,
		NewStatus:       record.Status,
		ApprovedBy:      req.ApprovedBy,
		RejectionReason: req.RejectionReason,
		ChangedAt:       record.UpdatedAt,
	})
	return record, nil
}
