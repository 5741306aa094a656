package storage

import (
	"fmt"
	"path/filepath"

	applog "github.com/Tiliavir/ride-ledger/internal/log"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Options configure Open.
type Options struct {
	Backend    string
	DataDir    string
	SQLitePath string
}

// Open creates the key-value backend named in opts.
func Open(opts Options, logger *applog.Logger) (KV, CleanupFunc, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendFile:
		logger.Info("Initialized file backend", applog.FieldPath, opts.DataDir)
		return NewFileKV(opts.DataDir, logger), noop, nil
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.DataDir, "ledger.db")
		}
		kv, err := NewSQLiteKV(path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", applog.FieldPath, path)
		return kv, kv.Close, nil
	case BackendMemory:
		logger.Info("Initialized memory backend")
		return NewMemoryKV(), noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported backend type: %s", opts.Backend)
}
