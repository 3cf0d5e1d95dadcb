package store

import (
	"context"
	"sync"
)

// MemoryKV is a process-local KV. It backs the "memory" backend and doubles as a
// test fake: set GetErr/PutErr to simulate a failing store.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte

	GetErr error
	PutErr error

	Puts int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string][]byte{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Raw returns the stored bytes for key without going through error injection.
func (m *MemoryKV) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Set stores value directly, bypassing PutErr.
func (m *MemoryKV) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

func (m *MemoryKV) Close() error { return nil }
