package store

import (
	"context"
	"database/sql"

	"github.com/quadrantio/quadrant-api/internal/domain"
)

// TaskFilter restricts a task listing. A nil field means no restriction on
// that attribute; set fields compose with logical AND.
type TaskFilter struct {
	Category  *domain.Category
	Completed *bool
	Priority  *int
}

// TaskStore defines the interface for task persistence. Every read and write
// is scoped to an owner; a task belonging to another user behaves exactly
// like a missing task.
type TaskStore interface {
	// Create saves a new task and fills in its assigned ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given id owned by ownerID.
	// Returns ErrTaskNotFound if it does not exist or is owned by another user.
	GetByID(ctx context.Context, ownerID, taskID int64) (*domain.Task, error)

	// List returns every task owned by ownerID matching the filter,
	// ordered by id.
	List(ctx context.Context, ownerID int64, filter TaskFilter) ([]*domain.Task, error)

	// Update replaces the mutable fields of the task identified by
	// task.ID and task.OwnerID. Returns ErrTaskNotFound if no such row exists.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes the task with the given id owned by ownerID.
	// Returns ErrTaskNotFound if no such row exists.
	Delete(ctx context.Context, ownerID, taskID int64) error

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
