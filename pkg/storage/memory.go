package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/duynguyendang/doc2kg/pkg/common/errors"
)

// MemoryStore is an in-memory ObjectStore implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	bucketReady  bool
	bucketErr    error
	putErrByKey  map[string]error
	ensureCalled int
}

// NewMemoryStore creates a new in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects:     make(map[string][]byte),
		putErrByKey: make(map[string]error),
	}
}

func (m *MemoryStore) EnsureBucket(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureCalled++
	if m.bucketErr != nil {
		return m.bucketErr
	}
	m.bucketReady = true
	return nil
}

func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.putErrByKey[key]; err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", errors.ErrNotFound, key)
	}

	// Return a copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	return io.NopCloser(bytes.NewReader(copied)), int64(len(copied)), nil
}

// Object returns the stored bytes for key, or nil if absent.
func (m *MemoryStore) Object(key string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[key]
}

// Len reports the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// EnsureCalls reports how many times EnsureBucket was invoked.
func (m *MemoryStore) EnsureCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ensureCalled
}

// FailPut makes every Put of key fail with err.
func (m *MemoryStore) FailPut(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErrByKey[key] = err
}

// FailBucket makes EnsureBucket fail with err.
func (m *MemoryStore) FailBucket(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucketErr = err
}
