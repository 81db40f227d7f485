package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/client/config"
	"github.com/dmitrijs2005/taskpad/internal/client/engine"
	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * Fakes
 *************/

type fakeRecords struct {
	mu   sync.Mutex
	rows []models.Task
	n    int
}

func (f *fakeRecords) ListTasks(ctx context.Context) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Task, 0, len(f.rows))
	for i := len(f.rows) - 1; i >= 0; i-- {
		out = append(out, f.rows[i].Clone())
	}
	return out, nil
}

func (f *fakeRecords) CreateTask(ctx context.Context, title string) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	t := models.Task{ID: fmt.Sprintf("id%d", f.n), Title: title, CreatedAt: time.Unix(int64(f.n), 0)}
	f.rows = append(f.rows, t)
	return t, nil
}

func (f *fakeRecords) UpdateTask(ctx context.Context, id string, p models.TaskPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			if p.Title != nil {
				f.rows[i].Title = *p.Title
			}
			if p.Completed != nil {
				f.rows[i].Completed = *p.Completed
			}
			if p.AttachmentURL != nil {
				f.rows[i].AttachmentURL = p.AttachmentURL
			}
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeRecords) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeBucket struct{ keys []string }

func (b *fakeBucket) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	b.keys = append(b.keys, key)
	return nil
}

func (b *fakeBucket) PublicURL(key string) string { return "http://cdn/" + key }

type fakeRemote struct {
	mu      sync.Mutex
	pingErr error
	pings   int
	closed  bool
}

func (r *fakeRemote) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pings++
	return r.pingErr
}

func (r *fakeRemote) Close() error { r.closed = true; return nil }

func newTestApp(t *testing.T, input string) (*App, *fakeRecords, *fakeRemote) {
	t.Helper()
	rec := &fakeRecords{}
	rem := &fakeRemote{}
	e := engine.New(rec, &fakeBucket{}, logging.Discard())
	a := newApp(&config.Config{}, e, rem, logging.Discard(), strings.NewReader(input))
	return a, rec, rem
}

func stubFiles(t *testing.T, files map[string][]byte) {
	t.Helper()
	orig := readFile
	t.Cleanup(func() { readFile = orig })
	readFile = func(name string) ([]byte, error) {
		if b, ok := files[name]; ok {
			return b, nil
		}
		return nil, os.ErrNotExist
	}
}

func stubTerminal(t *testing.T, v bool) {
	t.Helper()
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func() bool { return v }
}

/*************
 * Tests
 *************/

func TestApp_RunScenario(t *testing.T) {
	out := captureOutput(t)
	stubTerminal(t, false)
	stubFiles(t, map[string][]byte{"/docs/invoice.pdf": []byte("hi")})

	script := strings.Join([]string{
		"add Buy milk",
		"",
		"edit 1",
		"file /docs/invoice.pdf",
		"save",
		"edit 1",
		"title Buy milk x2",
		"save",
		"toggle 1",
		"list",
		"exit",
	}, "\n")

	a, rec, rem := newTestApp(t, script)
	a.Run(context.Background())

	require.Len(t, rec.rows, 1)
	task := rec.rows[0]
	assert.Equal(t, "Buy milk x2", task.Title)
	assert.True(t, task.Completed)
	require.NotNil(t, task.AttachmentURL)
	assert.Regexp(t, `^http://cdn/id1_\d+\.pdf$`, *task.AttachmentURL)

	assert.True(t, rem.closed)
	assert.Equal(t, ModeOnline, a.Mode())

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "OK: Task added")
	assert.Contains(t, joined, "[x] Buy milk x2")
}

func TestApp_DeleteByPosition(t *testing.T) {
	captureOutput(t)
	a, rec, _ := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx, "first", ""))
	require.NoError(t, a.Add(ctx, "second", ""))

	// newest first: position 1 is "second"
	require.NoError(t, a.Delete(ctx, "1"))
	require.Len(t, rec.rows, 1)
	assert.Equal(t, "first", rec.rows[0].Title)
}

func TestApp_EditRequiresEditMode(t *testing.T) {
	out := captureOutput(t)
	a, _, _ := newTestApp(t, "")
	ctx := context.Background()

	assert.ErrorIs(t, a.SetTitle(ctx, "x"), errNotEditing)
	assert.ErrorIs(t, a.SetFile(ctx, "/x"), errNotEditing)
	assert.ErrorIs(t, a.Save(ctx), errNotEditing)
	assert.Contains(t, strings.Join(*out, ""), "Not editing")
}

func TestApp_EditUnknownTask(t *testing.T) {
	out := captureOutput(t)
	a, _, _ := newTestApp(t, "")

	err := a.Edit(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, strings.Join(*out, ""), "No such task: nope")
}

func TestApp_AddMissingFile(t *testing.T) {
	out := captureOutput(t)
	stubFiles(t, nil)
	a, rec, _ := newTestApp(t, "")

	err := a.Add(context.Background(), "x", "/missing.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, rec.rows)
	assert.Contains(t, strings.Join(*out, ""), "Error:")
}

func TestApp_AddEmptyTitle(t *testing.T) {
	out := captureOutput(t)
	a, rec, _ := newTestApp(t, "")

	err := a.Add(context.Background(), "   ", "")
	assert.ErrorIs(t, err, engine.ErrEmptyTitle)
	assert.Empty(t, rec.rows)
	assert.Contains(t, strings.Join(*out, ""), "Title must not be empty")
}

func TestApp_CheckOnlineSwitchesMode(t *testing.T) {
	out := captureOutput(t)
	a, _, rem := newTestApp(t, "")
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.Mode())

	rem.pingErr = errors.New("down")
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.Mode())
	assert.Equal(t, "(offline)", a.getStatus())

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Switched to online mode")
	assert.Contains(t, joined, "Switched to offline mode")
}

func TestApp_StartOnlineStatusWatcherStopsOnCancel(t *testing.T) {
	captureOutput(t)
	a, _, rem := newTestApp(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		rem.mu.Lock()
		defer rem.mu.Unlock()
		return rem.pings > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
