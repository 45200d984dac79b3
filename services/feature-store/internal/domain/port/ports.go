package port

import (
	"errors"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/feature-store/internal/domain/model"
)

var (
	ErrGroupNotFound  = errors.New("feature group not found")
	ErrEntityNotFound = errors.New("entity not found")
)

// FeatureRepository stores and serves feature records keyed by feature
// group and entity ID. Writing to an unknown group creates it; reads of
// unknown groups or entities return the sentinel errors above.
type FeatureRepository interface {
	Store(group, entityID string, features map[string]any) model.FeatureRecord
	Get(group, entityID string) (model.FeatureRecord, error)
	ListEntities(group string) ([]string, error)
	ListGroups() []string
	Count() int
}
