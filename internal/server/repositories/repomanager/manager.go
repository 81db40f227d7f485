// Package repomanager hands out repositories bound to a database handle and
// applies the schema for the configured dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskpad/internal/dbx"
	"github.com/dmitrijs2005/taskpad/internal/server/migrations"
	"github.com/dmitrijs2005/taskpad/internal/server/repositories/tasks"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Tasks(db dbx.DBTX) tasks.Repository
}

// runMigrations is a seam for tests.
var runMigrations = migrations.Run

type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewRepositoryManager(d dbx.Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}

func (m *SQLRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.dialect)
}
