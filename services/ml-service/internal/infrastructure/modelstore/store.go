package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists model parameters as JSON files under a base directory.
// On startup each model either loads its previously written parameters or
// writes its defaults, so parameter changes survive restarts.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a parameter store rooted at path, creating the directory if
// it does not exist.
func New(path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating model store directory %s: %w", path, err)
	}
	return &Store{path: path, logger: logger}, nil
}

// LoadOrCreate reads the parameter file for modelName into params. When the
// file does not exist, the current value of params is written as the
// defaults instead.
func (s *Store) LoadOrCreate(modelName string, params any) error {
	file := filepath.Join(s.path, modelName+".json")

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, params); err != nil {
			return fmt.Errorf("parsing model parameters %s: %w", file, err)
		}
		s.logger.Info("loaded existing model parameters", "model", modelName, "path", file)
		return nil

	case errors.Is(err, fs.ErrNotExist):
		defaults, err := json.MarshalIndent(params, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding default parameters for %s: %w", modelName, err)
		}
		if err := os.WriteFile(file, defaults, 0o644); err != nil {
			return fmt.Errorf("writing default parameters %s: %w", file, err)
		}
		s.logger.Info("created new model parameters", "model", modelName, "path", file)
		return nil

	default:
		return fmt.Errorf("reading model parameters %s: %w", file, err)
	}
}
