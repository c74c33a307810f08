package sql

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rezkam/eisen/internal/core"
	"github.com/rezkam/eisen/internal/storage/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T, path string) *Store {
	t.Helper()

	store, err := NewStore(context.Background(), DBConfig{Dialect: DialectSQLite, DSN: path})
	require.NoError(t, err)
	return store
}

func TestSQLiteStore_Compliance(t *testing.T) {
	compliance.RunStorageComplianceTest(t, func() (core.Storage, func()) {
		tmpDir, err := os.MkdirTemp("", "sqlite-store-test-*")
		require.NoError(t, err)

		store := newSQLiteStore(t, filepath.Join(tmpDir, "todo.db"))

		cleanup := func() {
			store.Close()
			os.RemoveAll(tmpDir)
		}

		return store, cleanup
	})
}

func TestPostgresStore_Compliance(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}

	compliance.RunStorageComplianceTest(t, func() (core.Storage, func()) {
		ctx := context.Background()

		store, err := NewStore(ctx, DBConfig{Dialect: DialectPostgres, DSN: dsn})
		require.NoError(t, err)
		_, err = store.DB().ExecContext(ctx, deleteTasks)
		require.NoError(t, err)

		cleanup := func() {
			if _, err := store.DB().ExecContext(context.Background(), deleteTasks); err != nil {
				t.Logf("Warning: failed to clear tasks: %v", err)
			}
			store.Close()
		}

		return store, cleanup
	})
}

func TestSQLiteStore_ReopenKeepsDataAndSkipsAppliedMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")
	ctx := context.Background()

	first := newSQLiteStore(t, path)
	tasks := core.AddTask(nil, "persisted", core.ImportanceHigh, core.UrgencyLow)
	require.NoError(t, first.Save(ctx, tasks))
	require.NoError(t, first.Close())

	second := newSQLiteStore(t, path)
	defer second.Close()

	loaded, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, loaded)
}

func TestSQLiteStore_LoadRejectsUnknownLabel(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "todo.db"))
	defer store.Close()
	ctx := context.Background()

	_, err := store.DB().ExecContext(ctx, insertTask[DialectSQLite], 0, 1, "ok", "low", "low", false)
	require.NoError(t, err)
	_, err = store.DB().ExecContext(ctx, insertTask[DialectSQLite], 1, 2, "bad", "superhigh", "low", false)
	require.NoError(t, err)

	_, err = store.Load(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInvalidField))
	assert.True(t, errors.Is(err, core.ErrInvalidImportance))

	var fieldErr *core.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, 1, fieldErr.Index)
}

func TestSQLiteStore_SaveDuplicateIDsRollsBack(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "todo.db"))
	defer store.Close()
	ctx := context.Background()

	original := core.AddTask(nil, "kept", core.ImportanceLow, core.UrgencyLow)
	require.NoError(t, store.Save(ctx, original))

	err := store.Save(ctx, []core.Task{
		{ID: 1, Title: "a", Importance: core.ImportanceLow, Urgency: core.UrgencyLow},
		{ID: 1, Title: "b", Importance: core.ImportanceLow, Urgency: core.UrgencyLow},
	})
	require.Error(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestNewStore_RejectsUnknownDialect(t *testing.T) {
	_, err := NewStore(context.Background(), DBConfig{Dialect: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported SQL dialect")
}

func TestNewStore_RequiresDSN(t *testing.T) {
	_, err := NewStore(context.Background(), DBConfig{Dialect: DialectPostgres})
	require.Error(t, err)
}
