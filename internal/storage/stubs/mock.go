package stubs

import (
	"context"
	"sync"

	"edulibrary/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for
// tests and local experiments.
type MockDB struct {
	mu       sync.RWMutex
	files    map[string][]models.FileRecord
	sessions map[int64]models.Session
}

// NewMockDB creates a new mock store.
func NewMockDB() *MockDB {
	return &MockDB{
		files:    make(map[string][]models.FileRecord),
		sessions: make(map[int64]models.Session),
	}
}

// Initialize is a no-op for the in-memory store.
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// GetFiles returns the file sequence at basePath, empty when absent.
func (m *MockDB) GetFiles(ctx context.Context, basePath string) ([]models.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := m.files[basePath]
	out := make([]models.FileRecord, len(files))
	copy(out, files)
	return out, nil
}

// AppendFile appends a record at basePath.
func (m *MockDB) AppendFile(ctx context.Context, basePath string, record models.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[basePath] = append(m.files[basePath], record)
	return nil
}

// RemoveFiles drops the given indices from the sequence at basePath.
func (m *MockDB) RemoveFiles(ctx context.Context, basePath string, indices []int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	files := m.files[basePath]
	kept := make([]models.FileRecord, 0, len(files))
	for i, f := range files {
		if !drop[i] {
			kept = append(kept, f)
		}
	}
	removed := len(files) - len(kept)
	m.files[basePath] = kept
	return removed, nil
}

// GetSession returns the stored session for userID, nil when unknown.
func (m *MockDB) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// SaveSession stores the session for userID.
func (m *MockDB) SaveSession(ctx context.Context, userID int64, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = session
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MockDB) Close() error {
	return nil
}
