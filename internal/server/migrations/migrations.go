// Package migrations embeds the record store schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/dmitrijs2005/taskpad/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// dirFor returns the embedded directory holding the dialect's migrations.
func dirFor(d dbx.Dialect) string {
	if d == dbx.SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Run applies all pending migrations for the dialect.
func Run(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dirFor(d)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
