package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for ListSummary
var (
	ErrSummaryListIDEmpty = errors.New("list summary list ID cannot be empty")
	ErrSummaryUserIDEmpty = errors.New("list summary user ID cannot be empty")
	ErrSummaryCountsDrift = errors.New("list summary counts are inconsistent")
)

// ListSummary holds the list-level aggregates for one session. It is
// derived entirely from the session's answer records by a full
// recomputation (scoring.Recompute) and is never hand-edited; a stored
// summary that disagrees with its records is repaired on read.
type ListSummary struct {
	ListID            uuid.UUID `json:"list_id"`
	UserID            uuid.UUID `json:"user_id"`
	TotalQuestions    int       `json:"total_questions"`
	AnsweredCount     int       `json:"answered_count"`
	CorrectCount      int       `json:"correct_count"`
	IncorrectCount    int       `json:"incorrect_count"`
	StudiedPercentage float64   `json:"studied_percentage"`
	Finalized         bool      `json:"finalized"`
}

// Validate checks if the ListSummary has valid identity and internally
// consistent counts. It does not (and cannot) verify the summary against
// the records it was derived from; that is GetSummary's drift check.
func (s *ListSummary) Validate() error {
	if s.ListID == uuid.Nil {
		return ErrSummaryListIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSummaryUserIDEmpty
	}

	if s.AnsweredCount < 0 || s.TotalQuestions < 0 ||
		s.AnsweredCount > s.TotalQuestions ||
		s.CorrectCount+s.IncorrectCount != s.AnsweredCount {
		return ErrSummaryCountsDrift
	}

	if s.Finalized != (s.TotalQuestions > 0 && s.AnsweredCount == s.TotalQuestions) {
		return ErrSummaryCountsDrift
	}

	return nil
}

// Equal reports whether two summaries carry the same aggregates.
// Used by the drift check to decide whether a stored summary needs
// to be rewritten.
func (s *ListSummary) Equal(other *ListSummary) bool {
	if other == nil {
		return false
	}
	return s.ListID == other.ListID &&
		s.UserID == other.UserID &&
		s.TotalQuestions == other.TotalQuestions &&
		s.AnsweredCount == other.AnsweredCount &&
		s.CorrectCount == other.CorrectCount &&
		s.IncorrectCount == other.IncorrectCount &&
		s.StudiedPercentage == other.StudiedPercentage &&
		s.Finalized == other.Finalized
}
