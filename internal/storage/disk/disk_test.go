package disk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulibrary/internal/models"
)

func TestStore_EmptyCatalog(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	files, err := store.GetFiles(ctx, "initial:chapter1:grade5:science:arabic:malazem")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_AppendAndRemove(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	path := "initial:calculator_menu"
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, store.AppendFile(ctx, path, models.FileRecord{FileID: name, FileName: name}))
	}

	removed, err := store.RemoveFiles(ctx, path, []int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err := store.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].FileName)
	assert.Equal(t, "C", files[1].FileName)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := New(dir)
	path := "initial:chapter2:grade8:math:english:worksheets"
	require.NoError(t, store.AppendFile(ctx, path, models.FileRecord{FileID: "f1", FileName: "sheet.pdf"}))
	require.NoError(t, store.SaveSession(ctx, 99, models.Session{Path: path, MessageID: 7}))
	require.NoError(t, store.Close())

	reopened := New(dir)
	files, err := reopened.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "sheet.pdf", files[0].FileName)

	session, err := reopened.GetSession(ctx, 99)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, path, session.Path)
	assert.Equal(t, 7, session.MessageID)
}

func TestStore_UnknownSession(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	session, err := store.GetSession(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, 1, models.Session{Path: "initial:chapter1"}))
	require.NoError(t, store.SaveSession(ctx, 2, models.Session{Path: "initial:chapter2", PendingDeletions: []int{0}}))

	first, err := store.GetSession(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "initial:chapter1", first.Path)
	assert.Nil(t, first.PendingDeletions)

	second, err := store.GetSession(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, []int{0}, second.PendingDeletions)
}
