package kv

import (
	"fmt"
	"log/slog"
)

// BackendType selects the Store implementation at startup.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// NewStore builds the configured Store. The returned cleanup may be nil.
func NewStore(backend BackendType, dbPath string, logger *slog.Logger) (Store, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch backend {
	case SQLiteBackend:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite blob store", "db_path", dbPath)
		return store, store.Close, nil
	case MemoryBackend:
		logger.Info("Initialized memory blob store")
		return NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("invalid kv backend: %s", backend)
	}
}
