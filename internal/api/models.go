package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
	"github.com/provamed/quiz-api/internal/service/quiz_session"
)

// Common request/response structures

// SubmitAnswerRequest defines the payload for submitting an answer to one
// session record.
type SubmitAnswerRequest struct {
	// SelectedChoiceID is the ID of the choice the user picked.
	SelectedChoiceID string `json:"selected_choice_id" validate:"required,uuid"`

	// ErrorCause is the optional self-reported classification tag for the
	// answer (FC, FA, FR, or CA). Free-form variants that contain one of
	// the tags are accepted and normalized.
	ErrorCause string `json:"error_cause,omitempty" validate:"omitempty,max=64"`
}

// SetStudiedRequest defines the payload for toggling the studied flag on a
// session record. Studied is a pointer so an explicit false survives the
// required check.
type SetStudiedRequest struct {
	Studied *bool `json:"studied" validate:"required"`
}

// AnswerRecordResponse represents the response data for one answer record.
type AnswerRecordResponse struct {
	ID               string     `json:"id"`
	ListID           string     `json:"list_id"`
	QuestionID       string     `json:"question_id"`
	UserID           string     `json:"user_id"`
	Answered         bool       `json:"answered"`
	Correct          bool       `json:"correct"`
	SelectedChoiceID string     `json:"selected_choice_id,omitempty"`
	ErrorCause       string     `json:"error_cause,omitempty"`
	Studied          bool       `json:"studied"`
	AnsweredAt       *time.Time `json:"answered_at,omitempty"`
	Category         string     `json:"category"`
	Subcategory      string     `json:"subcategory"`
	Subject          string     `json:"subject"`
	Difficulty       string     `json:"difficulty"`
	Position         int        `json:"position"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ListSummaryResponse represents the response data for a session summary.
type ListSummaryResponse struct {
	ListID            string  `json:"list_id"`
	UserID            string  `json:"user_id"`
	TotalQuestions    int     `json:"total_questions"`
	AnsweredCount     int     `json:"answered_count"`
	CorrectCount      int     `json:"correct_count"`
	IncorrectCount    int     `json:"incorrect_count"`
	StudiedPercentage float64 `json:"studied_percentage"`
	Finalized         bool    `json:"finalized"`
}

// StartSessionResponse is the response for the session start endpoint.
type StartSessionResponse struct {
	Records []AnswerRecordResponse `json:"records"`
	Summary ListSummaryResponse    `json:"summary"`
}

// SubmitAnswerResponse is the response for the answer submission and
// studied-flag endpoints: the updated record plus the summary recomputed
// in the same transaction.
type SubmitAnswerResponse struct {
	Record  AnswerRecordResponse `json:"record"`
	Summary ListSummaryResponse  `json:"summary"`
}

// recordToResponse converts a domain.AnswerRecord to an AnswerRecordResponse
func recordToResponse(record *domain.AnswerRecord) AnswerRecordResponse {
	resp := AnswerRecordResponse{
		ID:          record.ID.String(),
		ListID:      record.ListID.String(),
		QuestionID:  record.QuestionID.String(),
		UserID:      record.UserID.String(),
		Answered:    record.Answered,
		Correct:     record.Correct,
		ErrorCause:  string(record.ErrorCause),
		Studied:     record.Studied,
		Category:    record.Category,
		Subcategory: record.Subcategory,
		Subject:     record.Subject,
		Difficulty:  record.Difficulty,
		Position:    record.Position,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}

	// Zero values encode absence on unanswered records
	if record.SelectedChoiceID != uuid.Nil {
		resp.SelectedChoiceID = record.SelectedChoiceID.String()
	}
	if !record.AnsweredAt.IsZero() {
		answeredAt := record.AnsweredAt
		resp.AnsweredAt = &answeredAt
	}

	return resp
}

// recordsToResponse converts a record slice, preserving position order.
func recordsToResponse(records []*domain.AnswerRecord) []AnswerRecordResponse {
	out := make([]AnswerRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, recordToResponse(record))
	}
	return out
}

// summaryToResponse converts a domain.ListSummary to a ListSummaryResponse
func summaryToResponse(summary domain.ListSummary) ListSummaryResponse {
	return ListSummaryResponse{
		ListID:            summary.ListID.String(),
		UserID:            summary.UserID.String(),
		TotalQuestions:    summary.TotalQuestions,
		AnsweredCount:     summary.AnsweredCount,
		CorrectCount:      summary.CorrectCount,
		IncorrectCount:    summary.IncorrectCount,
		StudiedPercentage: summary.StudiedPercentage,
		Finalized:         summary.Finalized,
	}
}

// submitResultToResponse converts a service SubmitResult to the API shape.
func submitResultToResponse(result *quiz_session.SubmitResult) SubmitAnswerResponse {
	return SubmitAnswerResponse{
		Record:  recordToResponse(result.Record),
		Summary: summaryToResponse(result.Summary),
	}
}
