package repomanager

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/dbx"
	"github.com/dmitrijs2005/taskpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestSQLiteManager_MigratesAndServesTasks(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	m := NewRepositoryManager(dbx.SQLite)
	require.NoError(t, m.RunMigrations(ctx, db))

	repo := m.Tasks(db)
	_, err = repo.Create(ctx, &models.Task{ID: "a", Title: "first", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	all, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "first", all[0].Title)
}

func TestRunMigrations_PassesDialect(t *testing.T) {
	orig := runMigrations
	t.Cleanup(func() { runMigrations = orig })

	var got dbx.Dialect
	runMigrations = func(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
		got = d
		return assert.AnError
	}

	err := NewRepositoryManager(dbx.Postgres).RunMigrations(context.Background(), nil)
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, dbx.Postgres, got)
}
