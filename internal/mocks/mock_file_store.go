package mocks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/cleversamer/accountsvc/domain"
)

// MockFileStore implements domain.FileStore interface for testing. Stored
// blobs are kept in memory keyed by path.
type MockFileStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	seq     int

	StoreFunc  func(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
	DeleteFunc func(ctx context.Context, path string) error
}

// NewMockFileStore creates a new MockFileStore with default behaviors
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{objects: make(map[string][]byte)}
}

// Store reads the blob into memory and returns a synthetic path
func (m *MockFileStore) Store(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, name, contentType, r)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	path := fmt.Sprintf("avatars/%d-%s", m.seq, name)
	m.objects[path] = content
	return path, nil
}

// Delete removes the blob; a missing path is a no-op
func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	m.deleted = append(m.deleted, path)
	return nil
}

// Deleted returns the paths Delete was called with
func (m *MockFileStore) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// Compile-time interface compliance verification
var _ domain.FileStore = (*MockFileStore)(nil)
