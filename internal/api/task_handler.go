package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quadrantio/quadrant-api/internal/api/middleware"
	"github.com/quadrantio/quadrant-api/internal/api/shared"
	"github.com/quadrantio/quadrant-api/internal/domain"
	"github.com/quadrantio/quadrant-api/internal/service"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// TaskHandler handles the /todos endpoints. Every route is mounted behind
// the auth middleware, so an identity is always present in the context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /todos. Filters compose conjunctively; absent parameters
// do not constrain.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	filter, vErr := parseTaskFilter(r)
	if vErr != nil {
		shared.RespondWithValidationError(w, r, vErr)
		return
	}

	tasks, err := h.taskService.List(r.Context(), identity, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /todos/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, vErr := parseTaskID(r)
	if vErr != nil {
		shared.RespondWithValidationError(w, r, vErr)
		return
	}

	task, err := h.taskService.Get(r.Context(), identity, taskID)
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Create handles POST /todos.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Create(r.Context(), identity, req.Draft())
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// Update handles PUT /todos/{id}. The request replaces every mutable field.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, vErr := parseTaskID(r)
	if vErr != nil {
		shared.RespondWithValidationError(w, r, vErr)
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), identity, taskID, req.Draft())
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /todos/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, vErr := parseTaskID(r)
	if vErr != nil {
		shared.RespondWithValidationError(w, r, vErr)
		return
	}

	if err := h.taskService.Delete(r.Context(), identity, taskID); err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondTaskError sends the mapped error response, surfacing validation
// details when present.
func (h *TaskHandler) respondTaskError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		shared.RespondWithValidationError(w, r, vErr)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound || status == http.StatusUnauthorized {
		shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

// requireIdentity pulls the authenticated identity from the context. Missing
// identity means the route was mounted without the auth middleware.
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return auth.Identity{}, false
	}
	return identity, true
}

// parseTaskID reads the {id} path parameter as a positive integer.
func parseTaskID(r *http.Request) (int64, *domain.ValidationError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(domain.FieldViolation{
			Field:   "id",
			Message: "must be a positive integer",
		})
	}
	return id, nil
}

// parseTaskFilter reads the optional category, completed and priority query
// parameters.
func parseTaskFilter(r *http.Request) (store.TaskFilter, *domain.ValidationError) {
	var filter store.TaskFilter
	var violations []domain.FieldViolation

	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" {
		category, err := domain.ParseCategory(raw)
		if err != nil {
			violations = append(violations, domain.FieldViolation{
				Field:   "category",
				Message: "must be one of Do, Schedule, Delegate, Eliminate",
			})
		} else {
			filter.Category = &category
		}
	}

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			violations = append(violations, domain.FieldViolation{
				Field:   "completed",
				Message: "must be true or false",
			})
		} else {
			filter.Completed = &completed
		}
	}

	if raw := query.Get("priority"); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil || priority < domain.PriorityMin || priority > domain.PriorityMax {
			violations = append(violations, domain.FieldViolation{
				Field:   "priority",
				Message: "must be an integer between 1 and 5",
			})
		} else {
			filter.Priority = &priority
		}
	}

	if len(violations) > 0 {
		return store.TaskFilter{}, domain.NewValidationError(violations...)
	}
	return filter, nil
}
