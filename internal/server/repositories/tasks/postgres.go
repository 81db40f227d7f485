// Package tasks provides the SQL-backed repository for the tasks table.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/dbx"
	"github.com/dmitrijs2005/taskpad/internal/models"
)

const taskColumns = "id, title, completed, attachment_url, created_at"

// PostgresRepository implements task storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// Despite the name it also runs on SQLite; the dialect only changes placeholders.
type PostgresRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX, dialect dbx.Dialect) *PostgresRepository {
	if dialect == "" {
		dialect = dbx.Postgres
	}
	return &PostgresRepository{db: db, dialect: dialect}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (*models.Task, error) {
	var (
		t   models.Task
		url sql.NullString
		ts  dbTime
	)
	if err := r.Scan(&t.ID, &t.Title, &t.Completed, &url, &ts); err != nil {
		return nil, err
	}
	t.CreatedAt = ts.Time
	if url.Valid {
		t.AttachmentURL = &url.String
	}
	return &t, nil
}

// Create inserts a new row and returns it as stored.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query := r.dialect.Rebind(`INSERT INTO ` + common.TasksTable + ` (id, title, completed, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns)

	created, err := scanTask(r.db.QueryRowContext(ctx, query, task.ID, task.Title, task.Completed, task.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// SelectAll returns every task, newest first.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM ` + common.TasksTable + `
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes only the fields present in patch. Exactly one row must be
// affected, otherwise common.ErrorNotFound is returned.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.TaskPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: empty patch", common.ErrorValidation)
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Completed != nil {
		add("completed", *patch.Completed)
	}
	if patch.AttachmentURL != nil {
		add("attachment_url", *patch.AttachmentURL)
	}
	args = append(args, id)

	query := r.dialect.Rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d`,
		common.TasksTable, strings.Join(sets, ", "), len(args)))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the row. Deleting an unknown id yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := r.dialect.Rebind(`DELETE FROM ` + common.TasksTable + ` WHERE id = $1`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
