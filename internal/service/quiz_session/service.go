// Package quiz_session implements the stateful side of the quiz engine:
// starting a session, submitting answers, toggling the studied flag, and
// serving the authoritative list summary.
//
// Every mutation runs as a short transaction that writes the answer
// record and the recomputed summary together, so the UI never observes a
// half-updated summary.
package quiz_session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// SubmitResult pairs the updated answer record with the summary that was
// recomputed in the same transaction.
type SubmitResult struct {
	Record  *domain.AnswerRecord `json:"record"`
	Summary domain.ListSummary   `json:"summary"`
}

// StartedSession is the initial state of a session: the ordered record
// set and its all-unanswered summary.
type StartedSession struct {
	Records []*domain.AnswerRecord `json:"records"`
	Summary domain.ListSummary     `json:"summary"`
}

// QuizSessionService drives a user's pass through one question list.
type QuizSessionService interface {
	// StartSession creates the session's answer records in bulk, one
	// unanswered record per question in list order, each capturing the
	// question's classification fields, plus the initial summary.
	//
	// Starting an already started session is not an error: the existing
	// records and summary are returned unchanged, so clients may call
	// this on every visit to the answer flow.
	//
	// A list with zero questions yields an empty session with an
	// all-zero, non-finalized summary.
	StartSession(ctx context.Context, listID, userID uuid.UUID) (*StartedSession, error)

	// SubmitAnswer evaluates and stores the user's answer on one record,
	// then recomputes and stores the list summary, all in a single
	// transaction.
	//
	// rawCause is the optional error-cause tag; pass "" for none. The
	// submission is rejected without any state change when the selection
	// is missing or foreign, the cause tag cannot be classified, or a
	// cause is supplied for an answer that cannot carry one.
	//
	// Retrying a failed submission is safe: evaluation is deterministic
	// and the summary is always a full recomputation.
	//
	// Returns ErrRecordNotFound if the record does not exist and
	// ErrRecordNotOwned if it belongs to another user.
	SubmitAnswer(
		ctx context.Context,
		userID uuid.UUID,
		recordID uuid.UUID,
		selectedChoiceID uuid.UUID,
		rawCause string,
	) (*SubmitResult, error)

	// SetStudied toggles the studied flag on one record and recomputes
	// the summary in the same transaction. The flag is independent of
	// correctness and valid on unanswered records.
	SetStudied(
		ctx context.Context,
		userID uuid.UUID,
		recordID uuid.UUID,
		studied bool,
	) (*SubmitResult, error)

	// GetSummary returns the authoritative summary for a session. The
	// stored row is verified against a full recomputation over the
	// session's records; when they disagree (for example because a
	// summary write failed after its record write succeeded) the
	// recomputed value is written back and returned. Callers always see
	// a summary consistent with the records.
	GetSummary(ctx context.Context, listID, userID uuid.UUID) (*domain.ListSummary, error)

	// GetRecords returns the session's records in list position order,
	// ready to feed a client-side navigator or progress grid.
	GetRecords(ctx context.Context, listID, userID uuid.UUID) ([]*domain.AnswerRecord, error)
}

// Common error types for QuizSessionService
var (
	// ErrListNotFound indicates that the question list does not exist.
	ErrListNotFound = errors.New("question list not found")

	// ErrRecordNotFound indicates that the answer record does not exist.
	ErrRecordNotFound = errors.New("answer record not found")

	// ErrRecordNotOwned indicates that the record belongs to another user.
	ErrRecordNotOwned = errors.New("unauthorized access: answer record not owned by user")
)
