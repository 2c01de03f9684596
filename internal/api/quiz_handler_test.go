package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/api/shared"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/domain/report"
	"github.com/provamed/quiz-api/internal/domain/scoring"
	"github.com/provamed/quiz-api/internal/service/analytics"
	"github.com/provamed/quiz-api/internal/service/quiz_session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newQuizHandler builds a handler around the given service mocks with a
// no-op logger.
func newQuizHandler(
	sessionService quiz_session.QuizSessionService,
	analyticsService analytics.AnalyticsService,
) *QuizHandler {
	if sessionService == nil {
		sessionService = &quiz_session.MockQuizSessionService{}
	}
	if analyticsService == nil {
		analyticsService = &analytics.MockAnalyticsService{}
	}
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewQuizHandler(sessionService, analyticsService, testLogger)
}

// newAuthenticatedRequest builds a request carrying the chi route context
// for one path parameter and, unless userID is uuid.Nil, the authenticated
// user ID the middleware would have set.
func newAuthenticatedRequest(
	t *testing.T,
	method, target string,
	body []byte,
	paramName, paramValue string,
	userID uuid.UUID,
) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, target, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	if paramValue != "" {
		rctx.URLParams.Add(paramName, paramValue)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	if userID != uuid.Nil {
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	}

	return req
}

// sampleRecord builds an answered, correct record for response assertions.
func sampleRecord(listID, userID uuid.UUID) *domain.AnswerRecord {
	now := time.Now().UTC()
	return &domain.AnswerRecord{
		ID:               uuid.New(),
		ListID:           listID,
		QuestionID:       uuid.New(),
		UserID:           userID,
		Answered:         true,
		Correct:          true,
		SelectedChoiceID: uuid.New(),
		Studied:          false,
		AnsweredAt:       now,
		Category:         "Clinical Medicine",
		Subcategory:      "Cardiology",
		Subject:          "Heart Failure",
		Difficulty:       "medium",
		Position:         0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestStartSessionHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	tests := []struct {
		name                string
		requestListID       string
		requestUserID       uuid.UUID
		mockFn              func(ctx context.Context, listID, userID uuid.UUID) (*quiz_session.StartedSession, error)
		expectedStatusCode  int
		expectedErrContains string
	}{
		{
			name:          "Success",
			requestListID: listID.String(),
			requestUserID: userID,
			mockFn: func(ctx context.Context, gotListID, gotUserID uuid.UUID) (*quiz_session.StartedSession, error) {
				if gotListID != listID {
					t.Errorf("expected listID %s, got %s", listID, gotListID)
				}
				if gotUserID != userID {
					t.Errorf("expected userID %s, got %s", userID, gotUserID)
				}
				record := sampleRecord(listID, userID)
				record.Answered = false
				record.Correct = false
				record.SelectedChoiceID = uuid.Nil
				record.AnsweredAt = time.Time{}
				return &quiz_session.StartedSession{
					Records: []*domain.AnswerRecord{record},
					Summary: domain.ListSummary{ListID: listID, UserID: userID, TotalQuestions: 1},
				}, nil
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name:                "Invalid List ID",
			requestListID:       "not-a-uuid",
			requestUserID:       userID,
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "Invalid listID",
		},
		{
			name:                "Missing List ID",
			requestListID:       "",
			requestUserID:       userID,
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "Invalid listID",
		},
		{
			name:                "Missing User ID",
			requestListID:       listID.String(),
			requestUserID:       uuid.Nil,
			expectedStatusCode:  http.StatusUnauthorized,
			expectedErrContains: "User ID not found",
		},
		{
			name:          "Internal Server Error",
			requestListID: listID.String(),
			requestUserID: userID,
			mockFn: func(ctx context.Context, listID, userID uuid.UUID) (*quiz_session.StartedSession, error) {
				return nil, errors.New("unexpected error")
			},
			expectedStatusCode:  http.StatusInternalServerError,
			expectedErrContains: "Failed to start session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newQuizHandler(&quiz_session.MockQuizSessionService{
				StartSessionFunc: tt.mockFn,
			}, nil)

			req := newAuthenticatedRequest(t, http.MethodPost,
				"/lists/"+tt.requestListID+"/session", nil,
				"listID", tt.requestListID, tt.requestUserID)
			rr := httptest.NewRecorder()

			handler.StartSession(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)

			if tt.expectedErrContains != "" {
				var errResp shared.ErrorResponse
				if err := json.NewDecoder(rr.Body).Decode(&errResp); err == nil {
					assert.Contains(t, errResp.Error, tt.expectedErrContains)
				}
				return
			}

			var response StartSessionResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.Len(t, response.Records, 1)
			assert.Equal(t, listID.String(), response.Records[0].ListID)
			assert.False(t, response.Records[0].Answered)
			assert.Empty(t, response.Records[0].SelectedChoiceID)
			assert.Nil(t, response.Records[0].AnsweredAt)
			assert.Equal(t, 1, response.Summary.TotalQuestions)
		})
	}
}

func TestSubmitAnswerHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	recordID := uuid.New()
	choiceID := uuid.New()

	validBody := []byte(`{"selected_choice_id": "` + choiceID.String() + `", "error_cause": "FC"}`)

	tests := []struct {
		name                string
		requestBody         []byte
		mockFn              func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error)
		expectedStatusCode  int
		expectedErrContains string
	}{
		{
			name:        "Success",
			requestBody: validBody,
			mockFn: func(ctx context.Context, gotUserID, gotRecordID, gotChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				if gotUserID != userID {
					t.Errorf("expected userID %s, got %s", userID, gotUserID)
				}
				if gotRecordID != recordID {
					t.Errorf("expected recordID %s, got %s", recordID, gotRecordID)
				}
				if gotChoiceID != choiceID {
					t.Errorf("expected choiceID %s, got %s", choiceID, gotChoiceID)
				}
				if rawCause != "FC" {
					t.Errorf("expected raw cause FC, got %q", rawCause)
				}
				record := sampleRecord(listID, userID)
				record.ID = recordID
				record.Correct = false
				record.ErrorCause = domain.ErrorCauseKnowledgeGap
				return &quiz_session.SubmitResult{
					Record: record,
					Summary: domain.ListSummary{
						ListID: listID, UserID: userID,
						TotalQuestions: 1, AnsweredCount: 1, IncorrectCount: 1,
						Finalized: true,
					},
				}, nil
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:                "Invalid Request Body",
			requestBody:         []byte(`{invalid json`),
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "Invalid request format",
		},
		{
			name:                "Missing Selected Choice",
			requestBody:         []byte(`{}`),
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "SelectedChoiceID",
		},
		{
			name:                "Malformed Selected Choice",
			requestBody:         []byte(`{"selected_choice_id": "not-a-uuid"}`),
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "SelectedChoiceID",
		},
		{
			name:        "Record Not Found",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, quiz_session.ErrRecordNotFound
			},
			expectedStatusCode:  http.StatusNotFound,
			expectedErrContains: "not found",
		},
		{
			name:        "Not Owned By User",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, quiz_session.ErrRecordNotOwned
			},
			expectedStatusCode:  http.StatusForbidden,
			expectedErrContains: "do not own",
		},
		{
			name:        "Foreign Choice",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, scoring.ErrUnknownChoice
			},
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "does not belong",
		},
		{
			name:        "Cause Not Allowed",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, scoring.ErrCauseNotAllowed
			},
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "not allowed",
		},
		{
			name:        "Invalid Cause Tag",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, domain.ErrInvalidErrorCause
			},
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "Invalid error classification",
		},
		{
			name:        "Internal Server Error",
			requestBody: validBody,
			mockFn: func(ctx context.Context, userID, recordID, selectedChoiceID uuid.UUID, rawCause string) (*quiz_session.SubmitResult, error) {
				return nil, errors.New("unexpected error")
			},
			expectedStatusCode:  http.StatusInternalServerError,
			expectedErrContains: "Failed to submit answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newQuizHandler(&quiz_session.MockQuizSessionService{
				SubmitAnswerFunc: tt.mockFn,
			}, nil)

			req := newAuthenticatedRequest(t, http.MethodPost,
				"/answers/"+recordID.String(), tt.requestBody,
				"recordID", recordID.String(), userID)
			rr := httptest.NewRecorder()

			handler.SubmitAnswer(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)

			if tt.expectedErrContains != "" {
				var errResp shared.ErrorResponse
				if err := json.NewDecoder(rr.Body).Decode(&errResp); err == nil {
					assert.Contains(t, errResp.Error, tt.expectedErrContains)
				}
				return
			}

			var response SubmitAnswerResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.Equal(t, recordID.String(), response.Record.ID)
			assert.False(t, response.Record.Correct)
			assert.Equal(t, "FC", response.Record.ErrorCause)
			assert.Equal(t, 1, response.Summary.IncorrectCount)
			assert.True(t, response.Summary.Finalized)
		})
	}
}

func TestSetStudiedHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	recordID := uuid.New()

	tests := []struct {
		name                string
		requestBody         []byte
		expectedStudied     bool
		expectedStatusCode  int
		expectedErrContains string
	}{
		{
			name:               "Set True",
			requestBody:        []byte(`{"studied": true}`),
			expectedStudied:    true,
			expectedStatusCode: http.StatusOK,
		},
		{
			// An explicit false must survive the required check.
			name:               "Set False",
			requestBody:        []byte(`{"studied": false}`),
			expectedStudied:    false,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:                "Missing Studied Field",
			requestBody:         []byte(`{}`),
			expectedStatusCode:  http.StatusBadRequest,
			expectedErrContains: "Studied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotStudied bool
			handler := newQuizHandler(&quiz_session.MockQuizSessionService{
				SetStudiedFunc: func(ctx context.Context, gotUserID, gotRecordID uuid.UUID, studied bool) (*quiz_session.SubmitResult, error) {
					gotStudied = studied
					record := sampleRecord(listID, userID)
					record.ID = recordID
					record.Answered = false
					record.Correct = false
					record.SelectedChoiceID = uuid.Nil
					record.AnsweredAt = time.Time{}
					record.Studied = studied
					return &quiz_session.SubmitResult{
						Record:  record,
						Summary: domain.ListSummary{ListID: listID, UserID: userID, TotalQuestions: 1},
					}, nil
				},
			}, nil)

			req := newAuthenticatedRequest(t, http.MethodPut,
				"/answers/"+recordID.String()+"/studied", tt.requestBody,
				"recordID", recordID.String(), userID)
			rr := httptest.NewRecorder()

			handler.SetStudied(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)

			if tt.expectedErrContains != "" {
				var errResp shared.ErrorResponse
				if err := json.NewDecoder(rr.Body).Decode(&errResp); err == nil {
					assert.Contains(t, errResp.Error, tt.expectedErrContains)
				}
				return
			}

			assert.Equal(t, tt.expectedStudied, gotStudied)

			var response SubmitAnswerResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.Equal(t, tt.expectedStudied, response.Record.Studied)
		})
	}
}

func TestGetSummaryHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		handler := newQuizHandler(&quiz_session.MockQuizSessionService{
			GetSummaryFunc: func(ctx context.Context, gotListID, gotUserID uuid.UUID) (*domain.ListSummary, error) {
				return &domain.ListSummary{
					ListID: gotListID, UserID: gotUserID,
					TotalQuestions: 10, AnsweredCount: 6,
					CorrectCount: 4, IncorrectCount: 2,
					StudiedPercentage: 30,
				}, nil
			},
		}, nil)

		req := newAuthenticatedRequest(t, http.MethodGet,
			"/lists/"+listID.String()+"/summary", nil,
			"listID", listID.String(), userID)
		rr := httptest.NewRecorder()

		handler.GetSummary(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response ListSummaryResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, listID.String(), response.ListID)
		assert.Equal(t, 10, response.TotalQuestions)
		assert.Equal(t, 6, response.AnsweredCount)
		assert.Equal(t, float64(30), response.StudiedPercentage)
		assert.False(t, response.Finalized)
	})

	t.Run("Internal Server Error", func(t *testing.T) {
		handler := newQuizHandler(&quiz_session.MockQuizSessionService{
			GetSummaryFunc: func(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error) {
				return nil, errors.New("unexpected error")
			},
		}, nil)

		req := newAuthenticatedRequest(t, http.MethodGet,
			"/lists/"+listID.String()+"/summary", nil,
			"listID", listID.String(), userID)
		rr := httptest.NewRecorder()

		handler.GetSummary(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Failed to get summary", errResp.Error)
	})
}

func TestGetRecordsHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	first := sampleRecord(listID, userID)
	second := sampleRecord(listID, userID)
	second.Position = 1

	handler := newQuizHandler(&quiz_session.MockQuizSessionService{
		GetRecordsFunc: func(ctx context.Context, listID, userID uuid.UUID) ([]*domain.AnswerRecord, error) {
			return []*domain.AnswerRecord{first, second}, nil
		},
	}, nil)

	req := newAuthenticatedRequest(t, http.MethodGet,
		"/lists/"+listID.String()+"/records", nil,
		"listID", listID.String(), userID)
	rr := httptest.NewRecorder()

	handler.GetRecords(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response []AnswerRecordResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
	require.Len(t, response, 2)
	assert.Equal(t, first.ID.String(), response[0].ID)
	assert.Equal(t, 0, response[0].Position)
	assert.Equal(t, 1, response[1].Position)
}

func TestGetReportHandler(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		handler := newQuizHandler(nil, &analytics.MockAnalyticsService{
			GetReportFunc: func(ctx context.Context, gotListID, gotUserID uuid.UUID) (*report.Report, error) {
				rep := report.NewDefaultAnalyzer().Analyze(nil)
				rep.AnsweredCount = 5
				rep.CorrectCount = 3
				rep.OverallAccuracy = 60
				return rep, nil
			},
		})

		req := newAuthenticatedRequest(t, http.MethodGet,
			"/lists/"+listID.String()+"/report", nil,
			"listID", listID.String(), userID)
		rr := httptest.NewRecorder()

		handler.GetReport(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response report.Report
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
		assert.Equal(t, 5, response.AnsweredCount)
		assert.Equal(t, float64(60), response.OverallAccuracy)
	})

	t.Run("Internal Server Error", func(t *testing.T) {
		handler := newQuizHandler(nil, &analytics.MockAnalyticsService{
			GetReportFunc: func(ctx context.Context, listID, userID uuid.UUID) (*report.Report, error) {
				return nil, errors.New("unexpected error")
			},
		})

		req := newAuthenticatedRequest(t, http.MethodGet,
			"/lists/"+listID.String()+"/report", nil,
			"listID", listID.String(), userID)
		rr := httptest.NewRecorder()

		handler.GetReport(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var errResp shared.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errResp))
		assert.Equal(t, "Failed to build session report", errResp.Error)
	})
}
