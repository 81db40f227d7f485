package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/common"
	"github.com/dmitrijs2005/taskpad/internal/logging"
	"github.com/dmitrijs2005/taskpad/internal/models"
	repo "github.com/dmitrijs2005/taskpad/internal/server/repositories/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeRepo struct {
	repo.Repository

	created   *models.Task
	createErr error

	all    []*models.Task
	selErr error

	updatedID    string
	updatedPatch models.TaskPatch
	updateErr    error

	deletedID string
	deleteErr error
}

func (f *fakeRepo) Create(ctx context.Context, t *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = t
	return t, nil
}

func (f *fakeRepo) SelectAll(ctx context.Context) ([]*models.Task, error) {
	return f.all, f.selErr
}

func (f *fakeRepo) Update(ctx context.Context, id string, p models.TaskPatch) error {
	f.updatedID, f.updatedPatch = id, p
	return f.updateErr
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func newTestService(t *testing.T, r *fakeRepo) *Service {
	t.Helper()

	origID, origNow := newID, now
	t.Cleanup(func() { newID, now = origID, origNow })

	newID = func() string { return "id-1" }
	now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("EET", 3*3600)) }

	return NewService(r, logging.Discard())
}

// -------- tests --------

func TestCreate_TrimsAndAssignsServerFields(t *testing.T) {
	r := &fakeRepo{}
	s := newTestService(t, r)

	got, err := s.Create(context.Background(), "  Buy milk \n")
	require.NoError(t, err)

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.False(t, got.Completed)
	assert.Nil(t, got.AttachmentURL)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.Equal(t, 9, got.CreatedAt.Hour())
}

func TestCreate_EmptyTitle(t *testing.T) {
	r := &fakeRepo{}
	s := newTestService(t, r)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(context.Background(), title)
		require.ErrorIs(t, err, common.ErrorValidation)
	}
	assert.Nil(t, r.created, "repository must not be called")
}

func TestCreate_RepoError(t *testing.T) {
	s := newTestService(t, &fakeRepo{createErr: errors.New("db down")})

	_, err := s.Create(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestList(t *testing.T) {
	r := &fakeRepo{all: []*models.Task{{ID: "a"}, {ID: "b"}}}
	s := newTestService(t, r)

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	r.selErr = errors.New("boom")
	_, err = s.List(context.Background())
	require.Error(t, err)
}

func TestUpdate_Validation(t *testing.T) {
	r := &fakeRepo{}
	s := newTestService(t, r)
	blank := "  "

	require.ErrorIs(t, s.Update(context.Background(), "", models.TaskPatch{Title: &blank}), common.ErrorValidation)
	require.ErrorIs(t, s.Update(context.Background(), "t1", models.TaskPatch{}), common.ErrorValidation)
	require.ErrorIs(t, s.Update(context.Background(), "t1", models.TaskPatch{Title: &blank}), common.ErrorValidation)
	assert.Empty(t, r.updatedID)
}

func TestUpdate_TrimsTitleAndKeepsOtherFields(t *testing.T) {
	r := &fakeRepo{}
	s := newTestService(t, r)

	title := " new "
	url := "http://u"
	require.NoError(t, s.Update(context.Background(), "t1", models.TaskPatch{Title: &title, AttachmentURL: &url}))

	assert.Equal(t, "t1", r.updatedID)
	require.NotNil(t, r.updatedPatch.Title)
	assert.Equal(t, "new", *r.updatedPatch.Title)
	assert.Equal(t, "http://u", *r.updatedPatch.AttachmentURL)
	assert.Nil(t, r.updatedPatch.Completed)
	assert.Equal(t, " new ", title, "caller's value untouched")
}

func TestUpdate_NotFoundPropagates(t *testing.T) {
	s := newTestService(t, &fakeRepo{updateErr: common.ErrorNotFound})
	done := true

	err := s.Update(context.Background(), "t1", models.TaskPatch{Completed: &done})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	r := &fakeRepo{}
	s := newTestService(t, r)

	require.NoError(t, s.Delete(context.Background(), "t1"))
	assert.Equal(t, "t1", r.deletedID)

	r.deleteErr = common.ErrorNotFound
	require.ErrorIs(t, s.Delete(context.Background(), "t1"), common.ErrorNotFound)
}
