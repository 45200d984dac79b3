package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
)

func TestCustomerStoreListOrdering(t *testing.T) {
	store := NewCustomerStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		store.Create(model.Customer{
			ID:        fmt.Sprintf("cust-%d", i),
			Email:     fmt.Sprintf("c%d@example.com", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page, total := store.List(1, 3)
	require.Equal(t, 5, total)
	require.Len(t, page, 3)
	assert.Equal(t, "cust-4", page[0].ID)
	assert.Equal(t, "cust-2", page[2].ID)

	page, _ = store.List(2, 3)
	require.Len(t, page, 2)
	assert.Equal(t, "cust-1", page[0].ID)

	page, total = store.List(4, 3)
	assert.Empty(t, page)
	assert.Equal(t, 5, total)
}

func TestCustomerStoreUpdateMissing(t *testing.T) {
	store := NewCustomerStore()
	err := store.Update(model.Customer{ID: "missing"})
	assert.ErrorIs(t, err, port.ErrCustomerNotFound)
}

func TestKYCStoreSaveAndLookup(t *testing.T) {
	store := NewKYCStore()

	_, err := store.GetByCustomer("cust-1")
	assert.ErrorIs(t, err, port.ErrKYCNotFound)

	store.Save(model.KYCRecord{ID: "kyc-1", CustomerID: "cust-1", Status: model.KYCStatusPending})

	byCustomer, err := store.GetByCustomer("cust-1")
	require.NoError(t, err)
	assert.Equal(t, "kyc-1", byCustomer.ID)

	byID, err := store.GetByID("kyc-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", byID.CustomerID)

	// Saving again replaces the record rather than adding a second one.
	store.Save(model.KYCRecord{ID: "kyc-1", CustomerID: "cust-1", Status: model.KYCStatusApproved})
	updated, err := store.GetByCustomer("cust-1")
	require.NoError(t, err)
	assert.Equal(t, model.KYCStatusApproved, updated.Status)
}
