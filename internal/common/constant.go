// Package common contains shared constants and sentinel errors used across
// taskpad components.
package common

// TasksTable is the name of the record store table.
const TasksTable = "tasks"

// AttachmentContentType is recorded on every uploaded attachment so browsers
// open it inline.
const AttachmentContentType = "application/pdf"

// DefaultBucket is the attachment bucket used when none is configured.
const DefaultBucket = "task-pdfs"
