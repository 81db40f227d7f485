// Package engine keeps task records and their attached documents in step.
//
// Records and attachments live in two independent stores that share no
// transaction. Adding a task with a file is therefore a two-phase sequence:
// the record is created first, then the file is uploaded and its public URL
// linked to the record. If the second phase fails the record stays without an
// attachment and a *PartialFailureError is returned; nothing is rolled back.
// Attachment objects are never deleted, so replaced or orphaned uploads remain
// in the bucket.
//
// All state is owned by Engine and changed only through its methods. Network
// calls run without holding the lock, so methods may be called concurrently;
// Busy is advisory and overlapping calls are not rejected.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/client/attachments"
	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
)

// now is a seam for tests.
var now = time.Now

// RecordStore is the task table.
type RecordStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string) (models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) error
	DeleteTask(ctx context.Context, id string) error
}

// AttachmentStore is the document bucket.
type AttachmentStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

type Engine struct {
	records     RecordStore
	attachments AttachmentStore
	logger      logging.Logger

	mu         sync.Mutex
	tasks      []models.Task
	inFlight   int
	status     Status
	editingID  string
	editDraft  Draft
	newDraft   Draft
	refreshSeq uint64
}

func New(r RecordStore, a AttachmentStore, l logging.Logger) *Engine {
	return &Engine{
		records:     r,
		attachments: a,
		logger:      l.With("module", "engine"),
		tasks:       []models.Task{},
	}
}

// View returns a deep copy of the current state.
func (e *Engine) View() ViewModel {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks := make([]models.Task, len(e.tasks))
	for i, t := range e.tasks {
		tasks[i] = t.Clone()
	}

	return ViewModel{
		Tasks:     tasks,
		Busy:      e.inFlight > 0,
		Status:    e.status,
		EditingID: e.editingID,
		EditDraft: e.editDraft.clone(),
		NewDraft:  e.newDraft.clone(),
	}
}

func (e *Engine) begin() {
	e.mu.Lock()
	e.inFlight++
	e.mu.Unlock()
}

func (e *Engine) end() {
	e.mu.Lock()
	e.inFlight--
	e.mu.Unlock()
}

func (e *Engine) setStatus(kind StatusKind, msg string) {
	e.mu.Lock()
	e.status = Status{Kind: kind, Message: msg}
	e.mu.Unlock()
}

func (e *Engine) fail(ctx context.Context, msg string, err error) error {
	e.logger.Warn(ctx, msg, "error", err.Error())
	e.setStatus(StatusFailure, fmt.Sprintf("%s: %v", msg, err))
	return err
}

func (e *Engine) snapshot(id string) (models.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Task{}, false
}

// Refresh reloads the task list. On failure the list is cleared so stale
// rows are never shown as current.
func (e *Engine) Refresh(ctx context.Context) error {
	e.begin()
	defer e.end()
	return e.refresh(ctx)
}

// refresh applies a list result only if no newer refresh was issued meanwhile.
func (e *Engine) refresh(ctx context.Context) error {
	e.mu.Lock()
	e.refreshSeq++
	seq := e.refreshSeq
	e.mu.Unlock()

	tasks, err := e.records.ListTasks(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		err = &StoreError{Op: "list tasks", Err: err}
	}

	if seq != e.refreshSeq {
		e.logger.Debug(ctx, "discarding stale refresh", "seq", seq, "latest", e.refreshSeq)
		return err
	}

	if err != nil {
		e.logger.Warn(ctx, "refresh failed", "error", err.Error())
		e.tasks = []models.Task{}
		e.status = Status{Kind: StatusFailure, Message: fmt.Sprintf("Failed to load tasks: %v", err)}
		return err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	e.tasks = tasks
	e.status = Status{}
	return nil
}

// upload stores f under a fresh key for taskID and returns its public URL.
func (e *Engine) upload(ctx context.Context, taskID string, f *File) (string, error) {
	key := attachments.ObjectKey(taskID, f.Name, now())
	if err := e.attachments.PutObject(ctx, key, f.Data, common.AttachmentContentType); err != nil {
		return "", &StoreError{Op: "put object", Err: err}
	}
	return e.attachments.PublicURL(key), nil
}

// AddTask creates a task and, when f is given, uploads and links it.
func (e *Engine) AddTask(ctx context.Context, title string, f *File) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	e.begin()
	defer e.end()

	task, err := e.records.CreateTask(ctx, title)
	if err != nil {
		return e.fail(ctx, "Failed to add task", &StoreError{Op: "create task", Err: err})
	}

	if f != nil {
		url, err := e.upload(ctx, task.ID, f)
		if err != nil {
			return e.fail(ctx, "Task added without attachment", &PartialFailureError{TaskID: task.ID, Step: "upload", Err: err})
		}

		if err := e.records.UpdateTask(ctx, task.ID, models.TaskPatch{AttachmentURL: &url}); err != nil {
			return e.fail(ctx, "Task added without attachment",
				&PartialFailureError{TaskID: task.ID, Step: "link", Err: &StoreError{Op: "update task", Err: err}})
		}
	}

	e.mu.Lock()
	e.newDraft = Draft{}
	e.mu.Unlock()

	if err := e.refresh(ctx); err != nil {
		// the task exists; keep the refresh failure visible
		return err
	}

	e.setStatus(StatusSuccess, "Task added")
	return nil
}

// SaveEdit writes the title and, when f is given, a freshly uploaded
// attachment. Without f the existing attachment URL is kept.
func (e *Engine) SaveEdit(ctx context.Context, id string, title string, f *File) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	e.begin()
	defer e.end()

	var url *string
	if current, ok := e.snapshot(id); ok {
		url = current.AttachmentURL
	}

	if f != nil {
		u, err := e.upload(ctx, id, f)
		if err != nil {
			return e.fail(ctx, "Failed to update task", err)
		}
		url = &u
	}

	if err := e.records.UpdateTask(ctx, id, models.TaskPatch{Title: &title, AttachmentURL: url}); err != nil {
		return e.fail(ctx, "Failed to update task", &StoreError{Op: "update task", Err: err})
	}

	e.mu.Lock()
	if e.editingID == id {
		e.editingID = ""
		e.editDraft = Draft{}
	}
	e.mu.Unlock()

	if err := e.refresh(ctx); err != nil {
		return err
	}

	e.setStatus(StatusSuccess, "Task updated")
	return nil
}

// ToggleCompleted flips the completed flag of the task as last listed. It
// does not mark the engine busy.
func (e *Engine) ToggleCompleted(ctx context.Context, id string) error {
	current, ok := e.snapshot(id)
	if !ok {
		return e.fail(ctx, "Failed to update task", fmt.Errorf("task %s: %w", id, common.ErrorNotFound))
	}

	completed := !current.Completed
	if err := e.records.UpdateTask(ctx, id, models.TaskPatch{Completed: &completed}); err != nil {
		return e.fail(ctx, "Failed to update task", &StoreError{Op: "update task", Err: err})
	}

	return e.refresh(ctx)
}

// DeleteTask removes the record. Its attachment object, if any, stays in the bucket.
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	e.begin()
	defer e.end()

	if err := e.records.DeleteTask(ctx, id); err != nil {
		return e.fail(ctx, "Failed to delete task", &StoreError{Op: "delete task", Err: err})
	}

	e.mu.Lock()
	if e.editingID == id {
		e.editingID = ""
		e.editDraft = Draft{}
	}
	e.mu.Unlock()

	if err := e.refresh(ctx); err != nil {
		return err
	}

	e.setStatus(StatusSuccess, "Task deleted")
	return nil
}

// EnterEdit puts the task into edit mode with its title as the draft.
func (e *Engine) EnterEdit(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.tasks {
		if t.ID == id {
			e.editingID = id
			e.editDraft = Draft{Title: t.Title}
			return nil
		}
	}
	return fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
}

func (e *Engine) CancelEdit() {
	e.mu.Lock()
	e.editingID = ""
	e.editDraft = Draft{}
	e.mu.Unlock()
}

func (e *Engine) SetNewTitle(title string) {
	e.mu.Lock()
	e.newDraft.Title = title
	e.mu.Unlock()
}

func (e *Engine) SetNewFile(f *File) {
	e.mu.Lock()
	e.newDraft.File = f.clone()
	e.mu.Unlock()
}

// SetEditTitle changes the draft title; it is ignored outside edit mode.
func (e *Engine) SetEditTitle(title string) {
	e.mu.Lock()
	if e.editingID != "" {
		e.editDraft.Title = title
	}
	e.mu.Unlock()
}

// SetEditFile changes the draft file; it is ignored outside edit mode.
func (e *Engine) SetEditFile(f *File) {
	e.mu.Lock()
	if e.editingID != "" {
		e.editDraft.File = f.clone()
	}
	e.mu.Unlock()
}
