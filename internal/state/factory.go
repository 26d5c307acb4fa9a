package state

import (
	"fmt"
	"log/slog"

	"finboard/internal/config"
	"finboard/internal/log"
)

// BackendType selects how client state is persisted.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// NewFromConfig creates a state store based on the application config.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(log.FieldComponent, log.ComponentState)

	backendType := BackendType(cfg.StateBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid state backend: %s", cfg.StateBackend)
	}

	switch backendType {
	case SQLiteBackend:
		store, err := NewSQLiteStore(cfg.StateDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite state store: %w", err)
		}
		logger.Info("Initialized sqlite state store", "db_path", cfg.StateDBPath)
		return store, nil
	default:
		logger.Info("Initialized memory state store")
		return NewMemoryStore(), nil
	}
}
