package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/calvinlee999/AI-Platform-for-FinTech-Evolution/services/ml-service/internal/domain/model"
)

// ErrModelNotFound is returned when a prediction is requested for an
// unknown model name.
var ErrModelNotFound = errors.New("model not found")

// Model is a loaded inference model. Implementations must be safe for
// concurrent use; models are immutable after initialization.
type Model interface {
	// Name returns the registry key for this model.
	Name() string

	// Predict scores a raw feature map. Missing features are default-filled
	// by the model.
	Predict(features map[string]any) (model.PredictionResult, error)
}

// Registry holds the loaded models and dispatches predictions by name.
type Registry struct {
	mu     sync.RWMutex
	models map[string]Model
}

// NewRegistry creates an empty model registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]Model)}
}

// Register adds a model under its name, replacing any previous registration.
func (r *Registry) Register(m Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.Name()] = m
}

// Get returns the model registered under name.
func (r *Registry) Get(name string) (Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return m, nil
}

// Predict dispatches a prediction to the named model.
func (r *Registry) Predict(name string, features map[string]any) (model.PredictionResult, error) {
	m, err := r.Get(name)
	if err != nil {
		return model.PredictionResult{}, err
	}
	return m.Predict(features)
}

// Names returns the registered model names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
