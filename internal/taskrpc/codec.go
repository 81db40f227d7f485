package taskrpc

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/models"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names on the wire. They match the table's column names.
const (
	FieldID            = "id"
	FieldTitle         = "title"
	FieldCompleted     = "completed"
	FieldAttachmentURL = "attachment_url"
	FieldCreatedAt     = "created_at"
)

var ErrMalformed = errors.New("malformed task message")

// TaskToStruct encodes a task. A nil attachment URL becomes a null value.
func TaskToStruct(t *models.Task) *structpb.Struct {
	url := structpb.NewNullValue()
	if t.AttachmentURL != nil {
		url = structpb.NewStringValue(*t.AttachmentURL)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldID:            structpb.NewStringValue(t.ID),
		FieldTitle:         structpb.NewStringValue(t.Title),
		FieldCompleted:     structpb.NewBoolValue(t.Completed),
		FieldAttachmentURL: url,
		FieldCreatedAt:     structpb.NewStringValue(t.CreatedAt.UTC().Format(time.RFC3339Nano)),
	}}
}

// TaskFromStruct decodes a task produced by TaskToStruct.
func TaskFromStruct(s *structpb.Struct) (models.Task, error) {
	var t models.Task
	if s == nil {
		return t, fmt.Errorf("%w: nil", ErrMalformed)
	}
	f := s.GetFields()

	id, ok := f[FieldID].GetKind().(*structpb.Value_StringValue)
	if !ok || id.StringValue == "" {
		return t, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	t.ID = id.StringValue
	t.Title = f[FieldTitle].GetStringValue()
	t.Completed = f[FieldCompleted].GetBoolValue()

	if u, ok := f[FieldAttachmentURL].GetKind().(*structpb.Value_StringValue); ok {
		v := u.StringValue
		t.AttachmentURL = &v
	}

	if raw := f[FieldCreatedAt].GetStringValue(); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return t, fmt.Errorf("%w: created_at: %v", ErrMalformed, err)
		}
		t.CreatedAt = ts
	}
	return t, nil
}

// TasksToList encodes a task list, keeping order.
func TasksToList(tasks []*models.Task) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(tasks))}
	for _, t := range tasks {
		out.Values = append(out.Values, structpb.NewStructValue(TaskToStruct(t)))
	}
	return out
}

// TasksFromList decodes a list produced by TasksToList.
func TasksFromList(l *structpb.ListValue) ([]models.Task, error) {
	out := make([]models.Task, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		t, err := TaskFromStruct(v.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// PatchToStruct encodes an update request. Only present fields are sent.
func PatchToStruct(id string, p models.TaskPatch) *structpb.Struct {
	fields := map[string]*structpb.Value{FieldID: structpb.NewStringValue(id)}
	if p.Title != nil {
		fields[FieldTitle] = structpb.NewStringValue(*p.Title)
	}
	if p.Completed != nil {
		fields[FieldCompleted] = structpb.NewBoolValue(*p.Completed)
	}
	if p.AttachmentURL != nil {
		fields[FieldAttachmentURL] = structpb.NewStringValue(*p.AttachmentURL)
	}
	return &structpb.Struct{Fields: fields}
}

// PatchFromStruct decodes an update request. Fields of the wrong type are
// rejected rather than silently dropped.
func PatchFromStruct(s *structpb.Struct) (string, models.TaskPatch, error) {
	var p models.TaskPatch
	f := s.GetFields()

	id, ok := f[FieldID].GetKind().(*structpb.Value_StringValue)
	if !ok || id.StringValue == "" {
		return "", p, fmt.Errorf("%w: missing id", ErrMalformed)
	}

	if v, present := f[FieldTitle]; present {
		k, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", p, fmt.Errorf("%w: title must be a string", ErrMalformed)
		}
		p.Title = &k.StringValue
	}
	if v, present := f[FieldCompleted]; present {
		k, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return "", p, fmt.Errorf("%w: completed must be a bool", ErrMalformed)
		}
		p.Completed = &k.BoolValue
	}
	if v, present := f[FieldAttachmentURL]; present {
		k, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", p, fmt.Errorf("%w: attachment_url must be a string", ErrMalformed)
		}
		p.AttachmentURL = &k.StringValue
	}
	return id.StringValue, p, nil
}
