package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskpad/internal/models"
)

// Repository is the persistence contract of the record store.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	SelectAll(ctx context.Context) ([]*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) error
	Delete(ctx context.Context, id string) error
}
