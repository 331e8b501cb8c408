package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemStore is an in-memory Store used in tests and local development.
type MemStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailPut and FailDelete force errors, letting tests exercise
	// cleanup paths.
	FailPut    error
	FailDelete error
}

func NewMemStore() *MemStore {
	return &MemStore{objects: make(map[string][]byte)}
}

func (m *MemStore) Put(ctx context.Context, in PutInput) (*Object, error) {
	if m.FailPut != nil {
		return nil, m.FailPut
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}

	key := objectKey(in)

	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return &Object{Key: key, URL: "memory://" + key}, nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	if m.FailDelete != nil {
		return m.FailDelete
	}
	if key == "" {
		return ErrMissingKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

// Get returns a stored object's bytes. Test helper.
func (m *MemStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects. Test helper.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
