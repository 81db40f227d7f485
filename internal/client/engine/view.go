package engine

import "github.com/dmitrijs2005/taskpad/internal/models"

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusFailure
)

func (k StatusKind) String() string {
	switch k {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "none"
	}
}

// Status is the outcome of the last operation.
type Status struct {
	Kind    StatusKind
	Message string
}

// File is a document picked for upload.
type File struct {
	Name string
	Data []byte
}

func (f *File) clone() *File {
	if f == nil {
		return nil
	}
	d := make([]byte, len(f.Data))
	copy(d, f.Data)
	return &File{Name: f.Name, Data: d}
}

// Draft holds uncommitted title and file input.
type Draft struct {
	Title string
	File  *File
}

func (d Draft) clone() Draft {
	return Draft{Title: d.Title, File: d.File.clone()}
}

// ViewModel is the read-only projection rendered by the presentation layer.
type ViewModel struct {
	// Tasks are ordered newest first.
	Tasks  []models.Task
	Busy   bool
	Status Status

	// EditingID is empty when no task is being edited.
	EditingID string
	EditDraft Draft

	// NewDraft is the pending input for AddTask.
	NewDraft Draft
}

// Task returns the task with id from the snapshot.
func (v ViewModel) Task(id string) (models.Task, bool) {
	for _, t := range v.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
