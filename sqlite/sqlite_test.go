package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsnip/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func pragma(t *testing.T, db *sqlite.DB, name string) string {
	t.Helper()
	var v string
	require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA "+name).Scan(&v))
	return v
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("migrates a new database to the current schema", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		var tables int
		require.NoError(t, db.QueryRowContext(context.Background(),
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('pages', 'examples')").Scan(&tables))
		assert.Equal(t, 2, tables)
		assert.Equal(t, "2", pragma(t, db, "user_version"))
		assert.Equal(t, 2, sqlite.SchemaVersion)
	})

	t.Run("configures the connection", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "docsnip.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		assert.Equal(t, "wal", pragma(t, db, "journal_mode"))
		assert.Equal(t, "1", pragma(t, db, "foreign_keys"))
		assert.Equal(t, "5000", pragma(t, db, "busy_timeout"))
	})

	t.Run("reopening keeps stored pages", func(t *testing.T) {
		t.Parallel()

		// Given: a database with one page
		path := filepath.Join(t.TempDir(), "docsnip.db")
		ctx := context.Background()
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(ctx, `INSERT INTO pages (id, url, fetched_at) VALUES ('p1', 'https://x.com/docs', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		// When: it is opened again
		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		// Then: migrations are not re-applied and the page is still there
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("refuses a database from a newer version", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "docsnip.db")
		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		_, err := db.ExecContext(context.Background(), "PRAGMA user_version = 99")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		err = sqlite.NewDB(path).Open()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer than supported")
	})

	t.Run("returns error for a missing directory", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewDB("/nonexistent/path/db.sqlite").Open()

		require.Error(t, err)
	})

	t.Run("deletes examples with their page", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		_, err := db.ExecContext(ctx, `INSERT INTO pages (id, url, fetched_at) VALUES ('p1', 'https://x.com/docs', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO examples (id, page_id, position, code, code_hash) VALUES ('e1', 'p1', 0, 'x', 'h')`)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, "DELETE FROM pages WHERE id = 'p1'")
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM examples").Scan(&count))
		assert.Equal(t, 0, count)
	})
}
