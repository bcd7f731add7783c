package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// TaskService performs task operations on behalf of an authenticated
// identity. Every operation is scoped to the identity's own tasks; a task
// owned by someone else is reported as not found, never as forbidden.
type TaskService interface {
	// List returns the identity's tasks matching the filter, ordered by id.
	List(ctx context.Context, identity auth.Identity, filter store.TaskFilter) ([]*domain.Task, error)

	// Get returns the identity's task with the given id, or
	// store.ErrTaskNotFound.
	Get(ctx context.Context, identity auth.Identity, taskID int64) (*domain.Task, error)

	// Create validates the draft, persists a new task owned by the identity
	// and returns the stored record with its assigned id and timestamps.
	Create(ctx context.Context, identity auth.Identity, draft domain.TaskDraft) (*domain.Task, error)

	// Update validates the draft, replaces all mutable fields of the
	// identity's task and refreshes its update timestamp.
	Update(ctx context.Context, identity auth.Identity, taskID int64, draft domain.TaskDraft) (*domain.Task, error)

	// Delete permanently removes the identity's task.
	Delete(ctx context.Context, identity auth.Identity, taskID int64) error
}

// TaskServiceImpl implements TaskService. Mutations run inside a transaction
// scoped to the request; reads go straight to the pool.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
	timeFunc  func() time.Time
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a TaskService backed by the given store and
// database handle.
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
		timeFunc:  time.Now,
		runTx:     store.RunInTransaction,
	}
}

var _ TaskService = (*TaskServiceImpl)(nil)

// List implements TaskService.List.
func (s *TaskServiceImpl) List(ctx context.Context, identity auth.Identity, filter store.TaskFilter) ([]*domain.Task, error) {
	if identity.ID == 0 {
		return nil, ErrUnauthenticated
	}

	tasks, err := s.taskStore.List(ctx, identity.ID, filter)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", identity.ID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Get implements TaskService.Get.
func (s *TaskServiceImpl) Get(ctx context.Context, identity auth.Identity, taskID int64) (*domain.Task, error) {
	if identity.ID == 0 {
		return nil, ErrUnauthenticated
	}

	task, err := s.taskStore.GetByID(ctx, identity.ID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get task", "error", err, "user_id", identity.ID, "task_id", taskID)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// Create implements TaskService.Create. The owner is always the caller's
// identity; drafts carry no owner field to spoof.
func (s *TaskServiceImpl) Create(ctx context.Context, identity auth.Identity, draft domain.TaskDraft) (*domain.Task, error) {
	if identity.ID == 0 {
		return nil, ErrUnauthenticated
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	task := domain.NewTask(identity.ID, draft, s.timeFunc().UTC())

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logger.Error("failed to create task", "error", err, "user_id", identity.ID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", identity.ID)
	return task, nil
}

// Update implements TaskService.Update. Concurrent updates to the same task
// resolve by last write wins; there is no optimistic versioning.
func (s *TaskServiceImpl) Update(ctx context.Context, identity auth.Identity, taskID int64, draft domain.TaskDraft) (*domain.Task, error) {
	if identity.ID == 0 {
		return nil, ErrUnauthenticated
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		current, err := txStore.GetByID(ctx, identity.ID, taskID)
		if err != nil {
			return err
		}

		current.Apply(draft, s.timeFunc().UTC())
		if err := txStore.Update(ctx, current); err != nil {
			return err
		}

		task = current
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		s.logger.Error("failed to update task", "error", err, "user_id", identity.ID, "task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("task updated", "task_id", taskID, "user_id", identity.ID)
	return task, nil
}

// Delete implements TaskService.Delete. Removal is permanent; there is no
// soft delete.
func (s *TaskServiceImpl) Delete(ctx context.Context, identity auth.Identity, taskID int64) error {
	if identity.ID == 0 {
		return ErrUnauthenticated
	}

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, identity.ID, taskID)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return err
		}
		s.logger.Error("failed to delete task", "error", err, "user_id", identity.ID, "task_id", taskID)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("task deleted", "task_id", taskID, "user_id", identity.ID)
	return nil
}
