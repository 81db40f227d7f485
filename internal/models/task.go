// Package models defines the task record shared by the record store server
// and the client-side lifecycle engine.
package models

import "time"

// Task is one row of the tasks table.
type Task struct {
	// ID is assigned by the record store on creation.
	ID string
	// Title is non-empty and trimmed.
	Title     string
	Completed bool
	// AttachmentURL is nil until an attachment has been stored and linked.
	AttachmentURL *string
	// CreatedAt is server-assigned and used only for ordering.
	CreatedAt time.Time
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	c := t
	if t.AttachmentURL != nil {
		u := *t.AttachmentURL
		c.AttachmentURL = &u
	}
	return c
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title         *string
	Completed     *bool
	AttachmentURL *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil && p.AttachmentURL == nil
}
