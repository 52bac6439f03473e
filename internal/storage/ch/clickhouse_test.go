package ch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clickhouseTC "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"edulibrary/internal/models"
)

// runMigrations manually creates the schema for tests
func runMigrations(ctx context.Context, db *ClickHouseDB) error {
	_ = db.conn.Exec(ctx, "DROP TABLE IF EXISTS catalogs")
	_ = db.conn.Exec(ctx, "DROP TABLE IF EXISTS sessions")

	err := db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS catalogs (
			path String,
			files String,
			updated_at DateTime64(3) DEFAULT now64(3)
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY path
	`)
	if err != nil {
		return err
	}

	return db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			user_id Int64,
			session String,
			updated_at DateTime64(3) DEFAULT now64(3)
		) ENGINE = ReplacingMergeTree(updated_at)
		ORDER BY user_id
	`)
}

// setupTestDB creates a test ClickHouse instance using testcontainers
func setupTestDB(t *testing.T) (*ClickHouseDB, func()) {
	ctx := context.Background()

	clickhouseContainer, err := clickhouseTC.Run(ctx,
		"clickhouse/clickhouse-server:24.3.3.102-alpine",
		clickhouseTC.WithUsername("default"),
		clickhouseTC.WithPassword(""),
		clickhouseTC.WithDatabase("default"),
	)
	require.NoError(t, err, "Failed to start ClickHouse container")

	host, err := clickhouseContainer.Host(ctx)
	require.NoError(t, err)

	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	db, err := NewClickHouseDB(host, port.Int(), "default", "default", "", false)
	require.NoError(t, err, "Failed to connect to ClickHouse")

	err = runMigrations(ctx, db)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		db.Close()
		clickhouseContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestClickHouseDB_EmptyCatalog(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	files, err := db.GetFiles(ctx, "initial:chapter1:grade5:science:arabic:malazem")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestClickHouseDB_AppendAndRemove(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	path := "initial:calculator_menu"

	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: name, FileName: name}))
	}

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "A", files[0].FileName)
	assert.Equal(t, "D", files[3].FileName)

	removed, err := db.RemoveFiles(ctx, path, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err = db.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].FileName)
	assert.Equal(t, "C", files[1].FileName)
}

func TestClickHouseDB_Sessions(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	session, err := db.GetSession(ctx, 123)
	require.NoError(t, err)
	assert.Nil(t, session)

	saved := models.Session{Path: "initial:chapter1:grade7", MessageID: 42}
	require.NoError(t, db.SaveSession(ctx, 123, saved))

	session, err = db.GetSession(ctx, 123)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, saved, *session)

	// Saving again overwrites the previous value.
	saved.Path = "initial"
	require.NoError(t, db.SaveSession(ctx, 123, saved))

	session, err = db.GetSession(ctx, 123)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "initial", session.Path)
}
