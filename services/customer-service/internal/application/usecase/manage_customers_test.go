package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/application/dto"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/event"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/infrastructure/memory"
)

type mockEventPublisher struct {
	published []port.CustomerEvent
}

func (m *mockEventPublisher) PublishCustomerEvent(ctx context.Context, evt port.CustomerEvent) {
	m.published = append(m.published, evt)
}

func newCustomersUseCase() (*ManageCustomersUseCase, *mockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := &mockEventPublisher{}
	return NewManageCustomersUseCase(memory.NewCustomerStore(), publisher, logger), publisher
}

func TestCreateCustomer(t *testing.T) {
	uc, publisher := newCustomersUseCase()

	customer := uc.Create(context.Background(), dto.CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
	})

	assert.NotEmpty(t, customer.ID)
	assert.True(t, strings.HasPrefix(customer.CustomerNumber, "CUST-"))
	assert.Equal(t, "ACTIVE", customer.Status)
	assert.False(t, customer.CreatedAt.IsZero())

	require.Len(t, publisher.published, 1)
	created, ok := publisher.published[0].(event.CustomerCreated)
	require.True(t, ok)
	assert.Equal(t, customer.ID, created.CustomerID)
	assert.Equal(t, "jane.doe@example.com", created.Email)
	assert.Equal(t, "customer.created", created.EventType())
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("applies partial changes and publishes them", func(t *testing.T) {
		uc, publisher := newCustomersUseCase()
		customer := uc.Create(context.Background(), dto.CreateCustomerRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.com",
		})

		email := "jane.d@example.com"
		updated, err := uc.Update(context.Background(), customer.ID, dto.UpdateCustomerRequest{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, email, updated.Email)
		assert.Equal(t, "Jane", updated.FirstName)

		require.Len(t, publisher.published, 2)
		evt, ok := publisher.published[1].(event.CustomerUpdated)
		require.True(t, ok)
		assert.Equal(t, "customer.updated", evt.EventType())
		assert.Equal(t, map[string]any{"email": email}, evt.Changes)
	})

	t.Run("unknown customer", func(t *testing.T) {
		uc, publisher := newCustomersUseCase()

		email := "nobody@example.com"
		_, err := uc.Update(context.Background(), "missing", dto.UpdateCustomerRequest{Email: &email})
		assert.ErrorIs(t, err, port.ErrCustomerNotFound)
		assert.Empty(t, publisher.published)
	})
}

func TestListCustomers(t *testing.T) {
	uc, _ := newCustomersUseCase()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		uc.Create(context.Background(), dto.CreateCustomerRequest{FirstName: "X", LastName: "Y", Email: email})
	}

	t.Run("paginates with totals", func(t *testing.T) {
		resp := uc.List(1, 2)
		assert.Len(t, resp.Customers, 2)
		assert.Equal(t, 3, resp.Pagination.Total)
		assert.Equal(t, 2, resp.Pagination.Pages)
		assert.NotEmpty(t, resp.CorrelationID)

		resp = uc.List(2, 2)
		assert.Len(t, resp.Customers, 1)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp := uc.List(5, 2)
		assert.Empty(t, resp.Customers)
		assert.Equal(t, 3, resp.Pagination.Total)
	})

	t.Run("defaults applied to bad paging values", func(t *testing.T) {
		resp := uc.List(0, 0)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 10, resp.Pagination.Limit)
		assert.Len(t, resp.Customers, 3)
	})
}
