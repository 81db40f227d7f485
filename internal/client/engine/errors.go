package engine

import (
	"fmt"

	"github.com/dmitrijs2005/taskpad/internal/common"
)

// ErrEmptyTitle is returned when a title is empty after trimming. No store
// call is issued in that case.
var ErrEmptyTitle = fmt.Errorf("%w: title is empty", common.ErrorValidation)

// StoreError wraps a failure reported by the record or attachment store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// PartialFailureError reports that a task record was created but attaching
// its file failed. The record is left in place without an attachment.
type PartialFailureError struct {
	TaskID string
	// Step is "upload" or "link".
	Step string
	Err  error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("task %s created without attachment: %s failed: %v", e.TaskID, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
