// Package disk implements Storage on top of diskv: the whole catalog
// and the whole session table are each one JSON document, mirroring the
// layout the bot has always used on disk (files.json / user_states.json).
package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"edulibrary/internal/models"
)

const (
	catalogKey  = "files.json"
	sessionsKey = "user_states.json"
)

// Store is a diskv-backed Storage. A single mutex serializes the
// read-modify-write cycles; the event loop is single-threaded anyway,
// so contention is not a concern at this scale.
type Store struct {
	mu sync.Mutex
	d  *diskv.Diskv
}

// New creates a store rooted at dataDir. The directory is created on
// first write.
func New(dataDir string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dataDir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

// Initialize is a no-op; documents are created lazily.
func (s *Store) Initialize(ctx context.Context) error {
	return nil
}

// GetFiles returns the file sequence at basePath, empty when absent.
func (s *Store) GetFiles(ctx context.Context, basePath string) ([]models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog[basePath], nil
}

// AppendFile appends a record at basePath and writes the catalog back.
func (s *Store) AppendFile(ctx context.Context, basePath string, record models.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.loadCatalog()
	if err != nil {
		return err
	}
	catalog[basePath] = append(catalog[basePath], record)
	return s.save(catalogKey, catalog)
}

// RemoveFiles drops the given indices from the sequence at basePath.
func (s *Store) RemoveFiles(ctx context.Context, basePath string, indices []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := s.loadCatalog()
	if err != nil {
		return 0, err
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	files := catalog[basePath]
	kept := make([]models.FileRecord, 0, len(files))
	for i, f := range files {
		if !drop[i] {
			kept = append(kept, f)
		}
	}
	removed := len(files) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	catalog[basePath] = kept
	if err := s.save(catalogKey, catalog); err != nil {
		return 0, err
	}
	return removed, nil
}

// GetSession returns the stored session for userID, nil when unknown.
func (s *Store) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions()
	if err != nil {
		return nil, err
	}
	session, ok := sessions[strconv.FormatInt(userID, 10)]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// SaveSession stores the session for userID and writes the table back.
func (s *Store) SaveSession(ctx context.Context, userID int64, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions()
	if err != nil {
		return err
	}
	sessions[strconv.FormatInt(userID, 10)] = session
	return s.save(sessionsKey, sessions)
}

// Close is a no-op; diskv holds no long-lived handles.
func (s *Store) Close() error {
	return nil
}

func (s *Store) loadCatalog() (map[string][]models.FileRecord, error) {
	catalog := make(map[string][]models.FileRecord)
	if err := s.load(catalogKey, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *Store) loadSessions() (map[string]models.Session, error) {
	sessions := make(map[string]models.Session)
	if err := s.load(sessionsKey, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// load reads and decodes a document. A missing document leaves the
// target at its zero state, matching the lazy-empty semantics of the
// original JSON files.
func (s *Store) load(key string, target interface{}) error {
	data, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(key string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
