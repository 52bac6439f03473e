// Package ch implements Storage on ClickHouse. Catalog sequences and
// sessions are stored as JSON values in ReplacingMergeTree key-value
// tables: ClickHouse handles row mutations poorly, and the access
// pattern here is load-whole-value/save-whole-value anyway.
package ch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"edulibrary/internal/models"
)

type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse connection.
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations (see the
// migrations/ directory and cmd/migrate).
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	return nil
}

// GetFiles returns the file sequence at basePath, empty when absent.
func (db *ClickHouseDB) GetFiles(ctx context.Context, basePath string) ([]models.FileRecord, error) {
	rows, err := db.conn.Query(ctx, `SELECT files FROM catalogs FINAL WHERE path = ?`, basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return []models.FileRecord{}, nil
	}

	var raw string
	if err := rows.Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to scan catalog row: %w", err)
	}

	var files []models.FileRecord
	if err := json.Unmarshal([]byte(raw), &files); err != nil {
		return nil, fmt.Errorf("failed to decode catalog for %q: %w", basePath, err)
	}
	return files, nil
}

// AppendFile appends a record at basePath and writes the sequence back.
func (db *ClickHouseDB) AppendFile(ctx context.Context, basePath string, record models.FileRecord) error {
	files, err := db.GetFiles(ctx, basePath)
	if err != nil {
		return err
	}
	return db.saveFiles(ctx, basePath, append(files, record))
}

// RemoveFiles drops the given indices from the sequence at basePath.
func (db *ClickHouseDB) RemoveFiles(ctx context.Context, basePath string, indices []int) (int, error) {
	files, err := db.GetFiles(ctx, basePath)
	if err != nil {
		return 0, err
	}

	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

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
	if err := db.saveFiles(ctx, basePath, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// GetSession returns the stored session for userID, nil when unknown.
func (db *ClickHouseDB) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	rows, err := db.conn.Query(ctx, `SELECT session FROM sessions FINAL WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, nil
	}

	var raw string
	if err := rows.Scan(&raw); err != nil {
		return nil, fmt.Errorf("failed to scan session row: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session for user %d: %w", userID, err)
	}
	return &session, nil
}

// SaveSession stores the session for userID.
func (db *ClickHouseDB) SaveSession(ctx context.Context, userID int64, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	err = db.conn.Exec(ctx, `INSERT INTO sessions (user_id, session, updated_at) VALUES (?, ?, now64(3))`,
		userID, string(data))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (db *ClickHouseDB) saveFiles(ctx context.Context, basePath string, files []models.FileRecord) error {
	data, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	err = db.conn.Exec(ctx, `INSERT INTO catalogs (path, files, updated_at) VALUES (?, ?, now64(3))`,
		basePath, string(data))
	if err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
