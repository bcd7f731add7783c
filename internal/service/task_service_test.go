package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore keyed by task id.
type fakeTaskStore struct {
	tasks  map[int64]*domain.Task
	nextID int64
	err    error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*domain.Task), nextID: 1}
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	task.ID = f.nextID
	f.nextID++
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	task, ok := f.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskStore) List(ctx context.Context, ownerID int64, filter store.TaskFilter) ([]*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Task
	for id := int64(1); id < f.nextID; id++ {
		task, ok := f.tasks[id]
		if !ok || task.OwnerID != ownerID {
			continue
		}
		if filter.Category != nil && task.Category != *filter.Category {
			continue
		}
		if filter.Completed != nil && task.Complete != *filter.Completed {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		copied := *task
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	current, ok := f.tasks[task.ID]
	if !ok || current.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, ownerID, taskID int64) error {
	if f.err != nil {
		return f.err
	}
	task, ok := f.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return f }

// passthroughTx runs the transaction body directly so services can be tested
// without a database handle.
func passthroughTx(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

func newTestTaskService(tasks *fakeTaskStore, now time.Time) *TaskServiceImpl {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svc := NewTaskService(tasks, nil, log)
	svc.timeFunc = func() time.Time { return now }
	svc.runTx = passthroughTx
	return svc
}

func validDraft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       "File the quarterly report",
		Description: "Numbers due to finance by Friday",
		Priority:    4,
		Complete:    false,
		Category:    domain.CategoryDo,
	}
}

var (
	alice = auth.Identity{ID: 1, Username: "alice", Role: domain.DefaultRole}
	bob   = auth.Identity{ID: 2, Username: "bob", Role: domain.DefaultRole}
)

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, now)

	task, err := svc.Create(context.Background(), alice, validDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, alice.ID, task.OwnerID)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.UpdatedAt)
	assert.Equal(t, domain.CategoryDo, task.Category)
}

func TestTaskServiceCreateInvalidDraft(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, time.Now())

	draft := validDraft()
	draft.Title = "ab"
	draft.Priority = 9

	_, err := svc.Create(context.Background(), alice, draft)
	require.ErrorIs(t, err, domain.ErrValidation)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 2, "all violations reported at once")
	assert.Empty(t, tasks.tasks, "invalid drafts must not reach the store")
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, created)

	task, err := svc.Create(context.Background(), alice, validDraft())
	require.NoError(t, err)

	updated := created.Add(2 * time.Hour)
	svc.timeFunc = func() time.Time { return updated }

	draft := validDraft()
	draft.Title = "File the quarterly report (revised)"
	draft.Complete = true
	draft.Category = domain.CategorySchedule

	got, err := svc.Update(context.Background(), alice, task.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, "File the quarterly report (revised)", got.Title)
	assert.True(t, got.Complete)
	assert.Equal(t, domain.CategorySchedule, got.Category)
	assert.Equal(t, created, got.CreatedAt, "creation timestamp is immutable")
	assert.Equal(t, updated, got.UpdatedAt)
	assert.Equal(t, alice.ID, got.OwnerID)
}

func TestTaskServiceOwnershipCollapse(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, time.Now().UTC())

	task, err := svc.Create(context.Background(), alice, validDraft())
	require.NoError(t, err)

	// Another user's task reads as not found on every operation.
	_, err = svc.Get(context.Background(), bob, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.Update(context.Background(), bob, task.ID, validDraft())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = svc.Delete(context.Background(), bob, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.Get(context.Background(), alice, task.ID)
	assert.NoError(t, err, "the owner still sees the task")
}

func TestTaskServiceListFilters(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, time.Now().UTC())

	drafts := []domain.TaskDraft{
		{Title: "Walk the dog", Description: "Around the block", Priority: 2, Complete: true, Category: domain.CategoryDo},
		{Title: "Book dentist", Description: "Cleaning overdue", Priority: 2, Complete: false, Category: domain.CategorySchedule},
		{Title: "Expense report", Description: "Hand off to assistant", Priority: 5, Complete: false, Category: domain.CategoryDelegate},
	}
	for _, d := range drafts {
		_, err := svc.Create(context.Background(), alice, d)
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), bob, validDraft())
	require.NoError(t, err)

	all, err := svc.List(context.Background(), alice, store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "other owners' tasks never appear")

	completed := false
	priority := 2
	got, err := svc.List(context.Background(), alice, store.TaskFilter{Completed: &completed, Priority: &priority})
	require.NoError(t, err)
	require.Len(t, got, 1, "filters compose conjunctively")
	assert.Equal(t, "Book dentist", got[0].Title)

	category := domain.CategoryEliminate
	got, err = svc.List(context.Background(), alice, store.TaskFilter{Category: &category})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	svc := newTestTaskService(tasks, time.Now().UTC())

	task, err := svc.Create(context.Background(), alice, validDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), alice, task.ID))

	_, err = svc.Get(context.Background(), alice, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	err = svc.Delete(context.Background(), alice, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound, "deleting twice reports not found")
}

func TestTaskServiceRequiresIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestTaskService(newFakeTaskStore(), time.Now().UTC())
	anonymous := auth.Identity{}

	_, err := svc.List(context.Background(), anonymous, store.TaskFilter{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Create(context.Background(), anonymous, validDraft())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	err = svc.Delete(context.Background(), anonymous, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTaskServiceStoreFailure(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	tasks.err = errors.New("connection reset")
	svc := newTestTaskService(tasks, time.Now().UTC())

	_, err := svc.List(context.Background(), alice, store.TaskFilter{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrTaskNotFound)

	_, err = svc.Create(context.Background(), alice, validDraft())
	require.Error(t, err)
}
