package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/event"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingCurrency = errors.New("currency is required")
)

// ProcessPaymentUseCase processes payments and records the results.
type ProcessPaymentUseCase struct {
	payments  port.PaymentRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewProcessPaymentUseCase(payments port.PaymentRepository, publisher port.EventPublisher, logger *slog.Logger) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		payments:  payments,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute processes a payment, stores the record, and emits a
// payment.completed event.
func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, req dto.ProcessPaymentRequest) (dto.ProcessPaymentResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return dto.ProcessPaymentResponse{}, ErrInvalidAmount
	}
	if req.Currency == "" {
		return dto.ProcessPaymentResponse{}, ErrMissingCurrency
	}

	now := time.Now().UTC()
	payment := model.Payment{
		ID:          newPaymentID(now),
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Method:      req.Method,
		Reference:   req.Reference,
		Status:      model.PaymentStatusCompleted,
		ProcessedAt: now,
	}
	uc.payments.Save(payment)

	uc.publisher.PublishPaymentEvent(ctx, event.PaymentCompleted{
		CorrelationID: uuid.NewString(),
		PaymentID:     payment.ID,
		CustomerID:    payment.CustomerID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		ProcessedAt:   payment.ProcessedAt,
	})

	uc.logger.Info("payment processed",
		"payment_id", payment.ID,
		"currency", payment.Currency,
		"amount", payment.Amount.String(),
	)

	return dto.ProcessPaymentResponse{
		PaymentID:   payment.ID,
		Status:      payment.Status,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		ProcessedAt: payment.ProcessedAt,
	}, nil
}

// Get returns a previously processed payment.
func (uc *ProcessPaymentUseCase) Get(id string) (model.Payment, error) {
	return uc.payments.Get(id)
}

// newPaymentID generates a payment identifier of the form
// pay_<unix seconds>_<6 char suffix>. The suffix keeps IDs unique when
// multiple payments land in the same second.
func newPaymentID(now time.Time) string {
	suffix := uuid.NewString()[:6]
	return fmt.Sprintf("pay_%d_%s", now.Unix(), suffix)
}
