package stubs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulibrary/internal/models"
)

func TestMockDB_GetFilesEmpty(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()
	require.NoError(t, db.Initialize(ctx))

	files, err := db.GetFiles(ctx, "initial:chapter1:grade5:science:arabic:malazem")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMockDB_AppendPreservesOrder(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	path := "initial:calculator_menu"
	require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: "f1", FileName: "one.pdf"}))
	require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: "f2", FileName: "two.pdf"}))

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "one.pdf", files[0].FileName)
	assert.Equal(t, "two.pdf", files[1].FileName)
}

func TestMockDB_RemoveFilesCompacts(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	path := "initial:calculator_menu"
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: name, FileName: name}))
	}

	removed, err := db.RemoveFiles(ctx, path, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].FileName)
	assert.Equal(t, "C", files[1].FileName)
}

func TestMockDB_RemoveFilesIgnoresStaleIndices(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	path := "initial:calculator_menu"
	require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: "f1", FileName: "only.pdf"}))

	removed, err := db.RemoveFiles(ctx, path, []int{5, 9})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestMockDB_Sessions(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	session, err := db.GetSession(ctx, 123)
	require.NoError(t, err)
	assert.Nil(t, session)

	saved := models.Session{Path: "initial:chapter1", MessageID: 42, PendingDeletions: []int{0, 2}}
	require.NoError(t, db.SaveSession(ctx, 123, saved))

	session, err = db.GetSession(ctx, 123)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, saved, *session)
}

func TestMockDB_GetFilesReturnsCopy(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	path := "initial:calculator_menu"
	require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: "f1", FileName: "one.pdf"}))

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	files[0].FileName = "mutated"

	again, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "one.pdf", again[0].FileName)
}
