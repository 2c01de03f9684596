package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/provamed/quiz-api/internal/api"
	apiMiddleware "github.com/provamed/quiz-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	quizHandler := api.NewQuizHandler(app.sessionService, app.analyticsService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// All session and analytics endpoints require authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Session lifecycle
			r.Post("/lists/{listID}/session", quizHandler.StartSession)
			r.Get("/lists/{listID}/summary", quizHandler.GetSummary)
			r.Get("/lists/{listID}/records", quizHandler.GetRecords)
			r.Get("/lists/{listID}/report", quizHandler.GetReport)

			// Per-record mutations
			r.Post("/answers/{recordID}", quizHandler.SubmitAnswer)
			r.Put("/answers/{recordID}/studied", quizHandler.SetStudied)
		})
	})

	// Health check endpoint
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
