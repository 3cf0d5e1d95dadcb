package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by KV.Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a durable blob store. Each collection is saved as one opaque value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
	BackendMemory Backend = "memory"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQLite, BackendJSON, BackendMemory:
		return b, nil
	case "":
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown backend: %s", s)
	}
}

// OpenKV opens the blob store for backend rooted at dir.
func OpenKV(ctx context.Context, backend Backend, dir string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		return OpenSQLiteKV(ctx, filepath.Join(dir, sqliteFileName))
	case BackendJSON:
		return NewFileKV(dir)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}
