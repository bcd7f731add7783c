package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/quadrantio/quadrant-api/internal/config"
	"github.com/quadrantio/quadrant-api/internal/platform/postgres"
	"github.com/quadrantio/quadrant-api/internal/service"
	"github.com/quadrantio/quadrant-api/internal/service/auth"
	"github.com/quadrantio/quadrant-api/internal/store"
)

// application holds the shared application dependencies so wiring happens in
// one place and cleanup runs in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService    auth.JWTService
	passwordHash  auth.PasswordHasher
	authenticator auth.Authenticator

	userService service.UserService
	taskService service.TaskService
}

// newApplication wires stores and services from the given configuration and
// database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db)
	taskStore := postgres.NewPostgresTaskStore(db)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authenticator := auth.NewAuthenticator(userStore, hasher, jwtService, logger)

	return &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		userStore:     userStore,
		taskStore:     taskStore,
		jwtService:    jwtService,
		passwordHash:  hasher,
		authenticator: authenticator,
		userService:   service.NewUserService(userStore, hasher, db, logger),
		taskService:   service.NewTaskService(taskStore, db, logger),
	}, nil
}

// tokenLifetime returns the configured access token lifetime.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
