// Package storage persists the ledger collections behind a small key-value
// interface with file, SQLite and in-memory backends.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	applog "github.com/Tiliavir/ride-ledger/internal/log"
)

// ErrKeyNotFound is returned by KV.Get for keys that were never written.
var ErrKeyNotFound = errors.New("key not found")

// KV stores JSON documents by key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// DefaultBaseDir returns the root data directory (~/.rl).
func DefaultBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".rl"), nil
}

// FileKV keeps one JSON file per key under a base directory.
type FileKV struct {
	base string
	log  *applog.Logger
	mu   sync.Mutex
}

// NewFileKV returns a store rooted at base. The directory is created lazily.
func NewFileKV(base string, logger *applog.Logger) *FileKV {
	return &FileKV{base: base, log: logger.WithComponent(applog.ComponentStorage)}
}

// keyPath returns the path for the given key's JSON file.
func (f *FileKV) keyPath(key string) string {
	return filepath.Join(f.base, key+".json")
}

// Get reads a key. A file holding invalid JSON is moved aside to
// <key>.json.corrupt and reported as an error.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.keyPath(key)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}

	if !json.Valid(data) {
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, fmt.Errorf("corrupt JSON in %s (backed up to %s)", path, backupPath)
	}
	f.log.Debug("read key", applog.FieldKey, key, applog.FieldBytes, len(data))
	return data, nil
}

// Set atomically replaces the file for key.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, value, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	f.log.Debug("wrote key", applog.FieldKey, key, applog.FieldBytes, len(value))
	return nil
}

// MemoryKV keeps documents in process memory.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
