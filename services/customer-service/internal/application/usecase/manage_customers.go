package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/event"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ManageCustomersUseCase covers customer CRUD and its lifecycle events.
type ManageCustomersUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewManageCustomersUseCase(customers port.CustomerRepository, publisher port.EventPublisher, logger *slog.Logger) *ManageCustomersUseCase {
	return &ManageCustomersUseCase{
		customers: customers,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new customer with a generated customer number and emits
// a customer.created event.
func (uc *ManageCustomersUseCase) Create(ctx context.Context, req dto.CreateCustomerRequest) model.Customer {
	now := time.Now().UTC()
	customer := model.Customer{
		ID:             uuid.NewString(),
		CustomerNumber: newCustomerNumber(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         model.CustomerStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	uc.customers.Create(customer)

	uc.publisher.PublishCustomerEvent(ctx, event.CustomerCreated{
		CorrelationID:  uuid.NewString(),
		CustomerID:     customer.ID,
		CustomerNumber: customer.CustomerNumber,
		Email:          customer.Email,
		CreatedAt:      now,
	})

	uc.logger.Info("customer created",
		"customer_id", customer.ID,
		"customer_number", customer.CustomerNumber,
	)
	return customer
}

// Update applies a partial update and emits a customer.updated event
// carrying the changed fields.
func (uc *ManageCustomersUseCase) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (model.Customer, error) {
	customer, err := uc.customers.Get(id)
	if err != nil {
		return model.Customer{}, err
	}

	changes := make(map[string]any)
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
		changes["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
		changes["last_name"] = *req.LastName
	}
	if req.Email != nil {
		customer.Email = *req.Email
		changes["email"] = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
		changes["phone"] = *req.Phone
	}
	if req.Status != nil {
		customer.Status = *req.Status
		changes["status"] = *req.Status
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := uc.customers.Update(customer); err != nil {
		return model.Customer{}, err
	}

	uc.publisher.PublishCustomerEvent(ctx, event.CustomerUpdated{
		CorrelationID:  uuid.NewString(),
		CustomerID:     customer.ID,
		CustomerNumber: customer.CustomerNumber,
		Changes:        changes,
		UpdatedAt:      customer.UpdatedAt,
	})
	return customer, nil
}

// Get returns a single customer.
func (uc *ManageCustomersUseCase) Get(id string) (model.Customer, error) {
	return uc.customers.Get(id)
}

// List returns a page of customers, newest first.
func (uc *ManageCustomersUseCase) List(page, limit int) dto.CustomerListResponse {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	customers, total := uc.customers.List(page, limit)
	pages := (total + limit - 1) / limit

	return dto.CustomerListResponse{
		Customers: customers,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
		CorrelationID: uuid.NewString(),
	}
}

// newCustomerNumber generates a human-readable customer number of the form
// CUST-<millis>-<6 char suffix>.
func newCustomerNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("CUST-%d-%s", time.Now().UnixMilli(), suffix)
}
