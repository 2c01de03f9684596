package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/provamed/quiz-api/internal/config"
	"github.com/provamed/quiz-api/internal/platform/postgres"
	"github.com/provamed/quiz-api/internal/service/analytics"
	"github.com/provamed/quiz-api/internal/service/auth"
	"github.com/provamed/quiz-api/internal/service/quiz_session"
	"github.com/provamed/quiz-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	questionStore store.QuestionStore
	recordStore   store.AnswerRecordStore
	summaryStore  store.ListSummaryStore

	// Service interfaces
	jwtService       auth.JWTService
	sessionService   quiz_session.QuizSessionService
	analyticsService analytics.AnalyticsService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT validation service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized")

	// Initialize stores
	app.questionStore = postgres.NewPostgresQuestionStore(db, logger)
	app.recordStore = postgres.NewPostgresAnswerRecordStore(db, logger)
	app.summaryStore = postgres.NewPostgresListSummaryStore(db, logger)

	// Initialize quiz session service
	app.sessionService = quiz_session.NewQuizSessionService(
		db,
		app.questionStore,
		app.recordStore,
		app.summaryStore,
		logger,
	)

	// Initialize analytics service with default rule parameters
	app.analyticsService = analytics.NewAnalyticsService(app.recordStore, nil, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
