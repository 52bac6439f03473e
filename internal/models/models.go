package models

// FileRecord is a single stored file: the Telegram file identifier plus
// the name shown on menu buttons. Records are append-only; they are
// removed by compaction, never edited in place.
type FileRecord struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

// Session is the per-user navigation state.
//
// Path is the serialized menu position (see internal/menu).
// MessageID is the last rendered menu message, 0 when none exists yet.
// PendingDeletions holds catalog indices marked for deletion; it is
// only present while the user is in delete mode and is nil otherwise.
type Session struct {
	Path             string `json:"path"`
	MessageID        int    `json:"mid,omitempty"`
	PendingDeletions []int  `json:"pending_deletions,omitempty"`
}
