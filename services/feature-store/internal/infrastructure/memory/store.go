package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/domain/model"
	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/domain/port"
)

// Store is an in-memory feature repository guarded by a RWMutex. It is
// safe for concurrent use; contents do not survive a restart.
type Store struct {
	mu     sync.RWMutex
	groups map[string]map[string]model.FeatureRecord
}

// NewStore creates a store pre-seeded with the standard empty feature
// groups so that reads against them 404 on the entity, not the group.
func NewStore() *Store {
	return &Store{
		groups: map[string]map[string]model.FeatureRecord{
			"customer_features":    {},
			"transaction_features": {},
			"risk_features":        {},
		},
	}
}

// Store writes the feature map for an entity, creating the group if it
// does not exist yet, and returns the stored record.
func (s *Store) Store(group, entityID string, features map[string]any) model.FeatureRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	entities, ok := s.groups[group]
	if !ok {
		entities = make(map[string]model.FeatureRecord)
		s.groups[group] = entities
	}

	record := model.FeatureRecord{
		Features:  features,
		Timestamp: time.Now().UTC(),
	}
	entities[entityID] = record
	return record
}

// Get returns the feature record for an entity.
func (s *Store) Get(group, entityID string) (model.FeatureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities, ok := s.groups[group]
	if !ok {
		return model.FeatureRecord{}, port.ErrGroupNotFound
	}

	record, ok := entities[entityID]
	if !ok {
		return model.FeatureRecord{}, port.ErrEntityNotFound
	}
	return record, nil
}

// ListEntities returns the sorted entity IDs in a group.
func (s *Store) ListEntities(group string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities, ok := s.groups[group]
	if !ok {
		return nil, port.ErrGroupNotFound
	}

	ids := make([]string, 0, len(entities))
	for id := range entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListGroups returns the sorted feature group names.
func (s *Store) ListGroups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of stored feature records across all
// groups.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, entities := range s.groups {
		total += len(entities)
	}
	return total
}
