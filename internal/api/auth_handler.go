package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/quadrantio/quadrant-api/internal/api/middleware"
	"github.com/quadrantio/quadrant-api/internal/api/shared"
	"github.com/quadrantio/quadrant-api/internal/service"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	userService   service.UserService
	authenticator auth.Authenticator
	tokenLifetime time.Duration
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(
	userService service.UserService,
	authenticator auth.Authenticator,
	tokenLifetime time.Duration,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		authenticator: authenticator,
		tokenLifetime: tokenLifetime,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationError(w, r, RequestViolations(err))
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegistrationDraft{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if store.IsDuplicate(err) {
			shared.RespondWithError(w, r, http.StatusConflict, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// Login handles POST /auth/login. On success the token is returned in the
// body and mirrored in the access_token cookie; both carriers validate
// through the same path.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationError(w, r, RequestViolations(err))
		return
	}

	token, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountInactive) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
