package api

import (
	"time"

	"github.com/quadrantio/quadrant-api/internal/domain"
)

// RegisterRequest is the request model for user registration.
type RegisterRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Username    string `json:"username"    validate:"required,min=3,max=50"`
	FirstName   string `json:"first_name"  validate:"required,max=100"`
	LastName    string `json:"last_name"   validate:"required,max=100"`
	Password    string `json:"password"    validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`
}

// LoginRequest is the request model for authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserResponse is the public shape of an account. The password hash never
// appears here.
type UserResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// NewUserResponse converts a domain user to its API shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsActive:    user.IsActive,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	}
}

// TaskRequest is the request model for creating or replacing a task. Field
// bounds are enforced by the domain layer so violations come back as a full
// list, not one at a time. There is deliberately no owner field.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Complete    bool   `json:"complete"`
	Category    string `json:"category"`
}

// Draft converts the request into a domain draft for validation.
func (r TaskRequest) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Complete:    r.Complete,
		Category:    domain.Category(r.Category),
	}
}

// TaskResponse is the public shape of a task. Owner identity is implied by
// the authenticated session and never serialized.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Complete    bool      `json:"complete"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its API shape.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Complete:    task.Complete,
		Category:    string(task.Category),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskListResponse converts a slice of domain tasks. Always returns a
// non-nil slice so empty lists serialize as [].
func NewTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
