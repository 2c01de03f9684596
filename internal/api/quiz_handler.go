package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/api/shared"
	"github.com/provamed/quiz-api/internal/platform/logger"
	"github.com/provamed/quiz-api/internal/redact"
	"github.com/provamed/quiz-api/internal/service/analytics"
	"github.com/provamed/quiz-api/internal/service/quiz_session"
)

// QuizHandler handles session and analytics HTTP requests
type QuizHandler struct {
	sessionService   quiz_session.QuizSessionService
	analyticsService analytics.AnalyticsService
	logger           *slog.Logger
}

// NewQuizHandler creates a new QuizHandler
func NewQuizHandler(
	sessionService quiz_session.QuizSessionService,
	analyticsService analytics.AnalyticsService,
	logger *slog.Logger,
) *QuizHandler {
	if sessionService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessionService cannot be nil for QuizHandler")
	}

	if analyticsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("analyticsService cannot be nil for QuizHandler")
	}

	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		sessionService:   sessionService,
		analyticsService: analyticsService,
		logger:           logger.With(slog.String("component", "quiz_handler")),
	}
}

// StartSession handles POST /lists/{listID}/session requests.
// It creates the session's answer records for the authenticated user, or
// returns the existing session unchanged when one was already started.
func (h *QuizHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "listID", log)
	if !ok {
		return
	}

	session, err := h.sessionService.StartSession(r.Context(), listID, userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := StartSessionResponse{
		Records: recordsToResponse(session.Records),
		Summary: summaryToResponse(session.Summary),
	}

	log.Debug("session started",
		slog.String("user_id", userID.String()),
		slog.String("list_id", listID.String()),
		slog.Int("record_count", len(session.Records)))
	shared.RespondWithJSON(w, r, http.StatusCreated, response)
}

// SubmitAnswer handles POST /answers/{recordID} requests.
// It evaluates the user's answer against the question, classifies the
// optional error-cause tag, and returns the updated record together with
// the recomputed list summary.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, recordID, ok := handleUserIDAndPathUUID(w, r, "recordID", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("record_id", recordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("record_id", recordID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	selectedChoiceID, err := uuid.Parse(req.SelectedChoiceID)
	if err != nil {
		log.Warn("invalid selected choice ID format",
			slog.String("user_id", userID.String()),
			slog.String("record_id", recordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid selected choice ID format")
		return
	}

	result, err := h.sessionService.SubmitAnswer(
		r.Context(),
		userID,
		recordID,
		selectedChoiceID,
		req.ErrorCause,
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("record_id", recordID.String()),
		slog.Bool("correct", result.Record.Correct),
		slog.String("error_cause", string(result.Record.ErrorCause)))
	shared.RespondWithJSON(w, r, http.StatusOK, submitResultToResponse(result))
}

// SetStudied handles PUT /answers/{recordID}/studied requests.
// The studied flag is independent of answering and may be toggled on
// unanswered records.
func (h *QuizHandler) SetStudied(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, recordID, ok := handleUserIDAndPathUUID(w, r, "recordID", log)
	if !ok {
		return
	}

	var req SetStudiedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("record_id", recordID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("record_id", recordID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.sessionService.SetStudied(r.Context(), userID, recordID, *req.Studied)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update studied flag"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("studied flag updated",
		slog.String("user_id", userID.String()),
		slog.String("record_id", recordID.String()),
		slog.Bool("studied", result.Record.Studied))
	shared.RespondWithJSON(w, r, http.StatusOK, submitResultToResponse(result))
}

// GetSummary handles GET /lists/{listID}/summary requests.
// The returned summary is always consistent with the session's records;
// a drifted stored row is repaired before responding.
func (h *QuizHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "listID", log)
	if !ok {
		return
	}

	summary, err := h.sessionService.GetSummary(r.Context(), listID, userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get summary"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(*summary))
}

// GetRecords handles GET /lists/{listID}/records requests.
// Records come back in list position order.
func (h *QuizHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "listID", log)
	if !ok {
		return
	}

	records, err := h.sessionService.GetRecords(r.Context(), listID, userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get session records"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, recordsToResponse(records))
}

// GetReport handles GET /lists/{listID}/report requests.
// It builds the full analytics report for the session: error-cause
// histogram, per-dimension accuracy, and heuristic recommendations.
func (h *QuizHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, listID, ok := handleUserIDAndPathUUID(w, r, "listID", log)
	if !ok {
		return
	}

	rep, err := h.analyticsService.GetReport(r.Context(), listID, userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build session report"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session report served",
		slog.String("user_id", userID.String()),
		slog.String("list_id", listID.String()),
		slog.Int("answered", rep.AnsweredCount))
	shared.RespondWithJSON(w, r, http.StatusOK, rep)
}
