package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/matchsync/internal/sample/storage"
	"github.com/iudanet/matchsync/internal/sample/storage/storagetest"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "objects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStorage(t)
	})
}

func TestNew_MigrationsApplied(t *testing.T) {
	s := newTestStorage(t)

	var count int
	err := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'objects'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_Reopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "objects.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, &storage.Object{Entity: "person", Value: "1"}))
	require.NoError(t, s.Close())

	// повторный запуск миграций не должен падать
	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	obj, err := s.Get(ctx, "person", "1")
	require.NoError(t, err)
	assert.Nil(t, obj.Data)
}
