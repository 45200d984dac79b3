package memory

import (
	"sync"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/payment-service/internal/domain/port"
)

// PaymentStore is an in-memory payment repository guarded by a RWMutex.
type PaymentStore struct {
	mu       sync.RWMutex
	payments map[string]model.Payment
}

func NewPaymentStore() *PaymentStore {
	return &PaymentStore{payments: make(map[string]model.Payment)}
}

func (s *PaymentStore) Save(payment model.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
}

func (s *PaymentStore) Get(id string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[id]
	if !ok {
		return model.Payment{}, port.ErrPaymentNotFound
	}
	return payment, nil
}

// Count reports the number of stored payments for health payloads.
func (s *PaymentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}
