// Package tasks implements the record store's business rules on top of the
// tasks repository: title validation, id assignment and timestamps.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
	repo "github.com/dmitrijs2005/taskpad/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

var (
	newID = uuid.NewString
	now   = time.Now
)

type Service struct {
	repo   repo.Repository
	logger logging.Logger
}

func NewService(r repo.Repository, l logging.Logger) *Service {
	return &Service{repo: r, logger: l.With("module", "tasks_service")}
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	return t, nil
}

// List returns all tasks, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return tasks, nil
}

// Create stores a new task with a fresh id, completed=false and no attachment.
func (s *Service) Create(ctx context.Context, title string) (*models.Task, error) {
	t, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Create(ctx, &models.Task{
		ID:        newID(),
		Title:     t,
		CreatedAt: now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	s.logger.Info(ctx, "task created", "id", task.ID)
	return task, nil
}

// Update applies a partial update. Titles are trimmed and must stay non-empty.
func (s *Service) Update(ctx context.Context, id string, patch models.TaskPatch) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	if patch.Title != nil {
		t, err := normalizeTitle(*patch.Title)
		if err != nil {
			return err
		}
		patch.Title = &t
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("error updating task %s: %w", id, err)
	}

	s.logger.Info(ctx, "task updated", "id", id)
	return nil
}

// Delete removes the task row. Attachments are never touched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting task %s: %w", id, err)
	}

	s.logger.Info(ctx, "task deleted", "id", id)
	return nil
}
