package domain

import (
	"fmt"
	"time"
)

// Category classifies a task into one of the four Eisenhower-matrix quadrants.
type Category string

// The four valid task categories.
const (
	CategoryDo        Category = "Do"
	CategorySchedule  Category = "Schedule"
	CategoryDelegate  Category = "Delegate"
	CategoryEliminate Category = "Eliminate"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryDo,
	CategorySchedule,
	CategoryDelegate,
	CategoryEliminate,
}

// IsValid reports whether the category is one of the four known quadrants.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDo, CategorySchedule, CategoryDelegate, CategoryEliminate:
		return true
	}
	return false
}

// ParseCategory converts a string into a Category.
// Returns ErrInvalidCategory if the value is not a known quadrant.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Field bounds for task validation.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 255
	DescriptionMinLen = 3
	DescriptionMaxLen = 100
	PriorityMin       = 1
	PriorityMax       = 5
)

// Task is a single to-do item owned by exactly one user for its lifetime.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Complete    bool      `json:"complete"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	OwnerID     int64     `json:"owner_id"`
}

// TaskDraft holds the caller-supplied fields used to create a task or fully
// replace a task's mutable fields. The owner is never part of a draft; it is
// always taken from the authenticated identity.
type TaskDraft struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
	Category    Category
}

// Validate checks the draft against the data-model constraints and returns a
// ValidationError listing every violated field, or nil if the draft is valid.
func (d TaskDraft) Validate() error {
	var violations []FieldViolation

	if l := len(d.Title); l < TitleMinLen || l > TitleMaxLen {
		violations = append(violations, FieldViolation{
			Field:   "title",
			Message: fmt.Sprintf("must be between %d and %d characters", TitleMinLen, TitleMaxLen),
		})
	}
	if l := len(d.Description); l < DescriptionMinLen || l > DescriptionMaxLen {
		violations = append(violations, FieldViolation{
			Field:   "description",
			Message: fmt.Sprintf("must be between %d and %d characters", DescriptionMinLen, DescriptionMaxLen),
		})
	}
	if d.Priority < PriorityMin || d.Priority > PriorityMax {
		violations = append(violations, FieldViolation{
			Field:   "priority",
			Message: fmt.Sprintf("must be between %d and %d", PriorityMin, PriorityMax),
		})
	}
	if !d.Category.IsValid() {
		violations = append(violations, FieldViolation{
			Field:   "category",
			Message: "must be one of Do, Schedule, Delegate, Eliminate",
		})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// NewTask builds a Task from a validated draft, owned by ownerID, with both
// timestamps set to now. The draft must already have passed Validate.
func NewTask(ownerID int64, draft TaskDraft, now time.Time) *Task {
	return &Task{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Complete:    draft.Complete,
		Category:    draft.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerID:     ownerID,
	}
}

// Apply replaces the task's mutable fields with the draft's values and
// refreshes the update timestamp. CreatedAt and OwnerID are never touched.
func (t *Task) Apply(draft TaskDraft, now time.Time) {
	t.Title = draft.Title
	t.Description = draft.Description
	t.Priority = draft.Priority
	t.Complete = draft.Complete
	t.Category = draft.Category
	t.UpdatedAt = now
}
