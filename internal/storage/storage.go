package storage

import (
	"context"

	"edulibrary/internal/models"
)

// Storage defines the persistence contract for the file catalog and the
// per-user navigation sessions. All mutations are write-through: a call
// returning nil means the change is durable.
type Storage interface {
	// Catalog operations. basePath is the mode-stripped menu path that
	// doubles as the catalog key.

	// GetFiles returns the ordered file sequence at basePath. A key
	// with no files yields an empty slice, never an error.
	GetFiles(ctx context.Context, basePath string) ([]models.FileRecord, error)
	// AppendFile appends a record at basePath, preserving arrival order.
	AppendFile(ctx context.Context, basePath string, record models.FileRecord) error
	// RemoveFiles compacts the sequence at basePath by dropping the
	// given indices. Out-of-range indices are ignored. Returns how many
	// records were removed.
	RemoveFiles(ctx context.Context, basePath string, indices []int) (int, error)

	// Session operations.

	// GetSession returns the stored session for userID, or nil when the
	// user has never started the bot.
	GetSession(ctx context.Context, userID int64) (*models.Session, error)
	// SaveSession stores the session for userID.
	SaveSession(ctx context.Context, userID int64, session models.Session) error

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
