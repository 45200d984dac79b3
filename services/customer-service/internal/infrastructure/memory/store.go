package memory

import (
	"sort"
	"sync"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/customer-service/internal/domain/port"
)

// CustomerStore is an in-memory customer repository guarded by a RWMutex.
type CustomerStore struct {
	mu        sync.RWMutex
	customers map[string]model.Customer
}

func NewCustomerStore() *CustomerStore {
	return &CustomerStore{customers: make(map[string]model.Customer)}
}

func (s *CustomerStore) Create(customer model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[customer.ID] = customer
}

func (s *CustomerStore) Update(customer model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.ID]; !ok {
		return port.ErrCustomerNotFound
	}
	s.customers[customer.ID] = customer
	return nil
}

func (s *CustomerStore) Get(id string) (model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return model.Customer{}, port.ErrCustomerNotFound
	}
	return customer, nil
}

// List returns a page of customers ordered newest first. Ties on creation
// time break on ID so pagination stays stable.
func (s *CustomerStore) List(page, limit int) ([]model.Customer, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		all = append(all, customer)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []model.Customer{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total
}

// KYCStore is an in-memory KYC repository guarded by a RWMutex. A customer
// has at most one KYC record.
type KYCStore struct {
	mu         sync.RWMutex
	byID       map[string]model.KYCRecord
	byCustomer map[string]string
}

func NewKYCStore() *KYCStore {
	return &KYCStore{
		byID:       make(map[string]model.KYCRecord),
		byCustomer: make(map[string]string),
	}
}

func (s *KYCStore) Save(record model.KYCRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[record.ID] = record
	s.byCustomer[record.CustomerID] = record.ID
}

func (s *KYCStore) GetByCustomer(customerID string) (model.KYCRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCustomer[customerID]
	if !ok {
		return model.KYCRecord{}, port.ErrKYCNotFound
	}
	return s.byID[id], nil
}

func (s *KYCStore) GetByID(id string) (model.KYCRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byID[id]
	if !ok {
		return model.KYCRecord{}, port.ErrKYCNotFound
	}
	return record, nil
}
