package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
)

// memRecords is an in-memory record store with injectable failures.
type memRecords struct {
	mu   sync.Mutex
	rows []models.Task
	seq  int

	calls int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// listHook runs inside ListTasks before the snapshot is taken.
	listHook func(call int)
	listN    int
}

func (m *memRecords) ListTasks(ctx context.Context) ([]models.Task, error) {
	m.mu.Lock()
	m.calls++
	m.listN++
	n := m.listN
	hook := m.listHook
	m.mu.Unlock()

	if hook != nil {
		hook(n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Task, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0; i-- {
		out = append(out, m.rows[i].Clone())
	}
	return out, nil
}

func (m *memRecords) CreateTask(ctx context.Context, title string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return models.Task{}, m.createErr
	}
	m.seq++
	t := models.Task{ID: fmt.Sprintf("t%d", m.seq), Title: title, CreatedAt: time.Unix(int64(m.seq), 0).UTC()}
	m.rows = append(m.rows, t)
	return t.Clone(), nil
}

func (m *memRecords) UpdateTask(ctx context.Context, id string, p models.TaskPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.rows {
		if m.rows[i].ID != id {
			continue
		}
		if p.Title != nil {
			m.rows[i].Title = *p.Title
		}
		if p.Completed != nil {
			m.rows[i].Completed = *p.Completed
		}
		if p.AttachmentURL != nil {
			u := *p.AttachmentURL
			m.rows[i].AttachmentURL = &u
		}
		return nil
	}
	return common.ErrorNotFound
}

func (m *memRecords) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (m *memRecords) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// memBucket is an in-memory attachment store.
type memBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
	puts    int
}

func newMemBucket() *memBucket {
	return &memBucket{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *memBucket) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[key] = append([]byte(nil), data...)
	b.types[key] = contentType
	return nil
}

func (b *memBucket) PublicURL(key string) string {
	return "http://127.0.0.1:9000/task-pdfs/" + key
}

// stepClock makes now() advance by one millisecond per call.
func stepClock(t *testing.T) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })

	var mu sync.Mutex
	cur := time.UnixMilli(1700000000000)
	now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Millisecond)
		return cur
	}
}

func newTestEngine(t *testing.T) (*Engine, *memRecords, *memBucket) {
	t.Helper()
	stepClock(t)
	r := &memRecords{}
	b := newMemBucket()
	return New(r, b, logging.Discard()), r, b
}
