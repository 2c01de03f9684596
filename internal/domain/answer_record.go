package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for AnswerRecord
var (
	ErrRecordIDEmpty         = errors.New("answer record ID cannot be empty")
	ErrRecordListIDEmpty     = errors.New("answer record list ID cannot be empty")
	ErrRecordQuestionIDEmpty = errors.New("answer record question ID cannot be empty")
	ErrRecordUserIDEmpty     = errors.New("answer record user ID cannot be empty")
	ErrRecordCauseOnCorrect  = errors.New("error cause can only be set on an answered, incorrect record")
	ErrRecordCauseInvalid    = errors.New("invalid error cause")
	ErrRecordNotAnswered     = errors.New("answered record cannot be missing its answer fields")
)

// AnswerRecord is the mutable unit of session state: one row per
// (list, question, user), created unanswered when the session starts and
// updated as the user works through the list.
//
// The classification fields (Category, Subcategory, Subject, Difficulty)
// are copies of the question's values captured at session-creation time.
// They are write-once: analytics read them from the record, never from
// the live catalog, so later catalog edits cannot skew past sessions.
//
// Zero values encode absence: SelectedChoiceID == uuid.Nil means no
// selection, ErrorCause == "" means no cause, AnsweredAt.IsZero() means
// the record was never answered.
type AnswerRecord struct {
	ID               uuid.UUID  `json:"id"`
	ListID           uuid.UUID  `json:"list_id"`
	QuestionID       uuid.UUID  `json:"question_id"`
	UserID           uuid.UUID  `json:"user_id"`
	Answered         bool       `json:"answered"`
	Correct          bool       `json:"correct"`
	SelectedChoiceID uuid.UUID  `json:"selected_choice_id,omitempty"`
	ErrorCause       ErrorCause `json:"error_cause,omitempty"`
	Studied          bool       `json:"studied"`
	AnsweredAt       time.Time  `json:"answered_at,omitempty"`
	Category         string     `json:"category"`
	Subcategory      string     `json:"subcategory"`
	Subject          string     `json:"subject"`
	Difficulty       string     `json:"difficulty"`
	Position         int        `json:"position"` // zero-based order within the list
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewAnswerRecord creates an unanswered record for one question in a new
// session, capturing the question's classification fields. Position is
// the question's zero-based order within the list; record sets are always
// read back in position order so navigation is stable.
func NewAnswerRecord(listID, userID uuid.UUID, question *Question, position int) (*AnswerRecord, error) {
	now := time.Now().UTC()
	record := &AnswerRecord{
		ID:          uuid.New(),
		ListID:      listID,
		QuestionID:  question.ID,
		UserID:      userID,
		Answered:    false,
		Correct:     false,
		Studied:     false,
		Position:    position,
		Category:    question.Category,
		Subcategory: question.Subcategory,
		Subject:     question.Subject,
		Difficulty:  question.Difficulty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the AnswerRecord has valid data and holds the
// record-level invariants.
// Returns an error if any field fails validation.
func (r *AnswerRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrRecordIDEmpty
	}

	if r.ListID == uuid.Nil {
		return ErrRecordListIDEmpty
	}

	if r.QuestionID == uuid.Nil {
		return ErrRecordQuestionIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrRecordUserIDEmpty
	}

	if r.ErrorCause != ErrorCauseNone {
		if !r.ErrorCause.IsValid() {
			return ErrRecordCauseInvalid
		}
		// CA is also accepted on a correct answer (lucky guess); every
		// other cause requires an answered, incorrect record.
		wrongAnswer := r.Answered && !r.Correct
		luckyGuess := r.Answered && r.Correct && r.ErrorCause == ErrorCauseConfusedAlternatives
		if !wrongAnswer && !luckyGuess {
			return ErrRecordCauseOnCorrect
		}
	}

	if r.Answered && r.AnsweredAt.IsZero() {
		return ErrRecordNotAnswered
	}

	return nil
}

// Note: answer application lives in the scoring package
// (scoring.ApplyAnswer), which returns a new record instead of mutating
// this one. Keeping the entity free of mutators makes retries and
// optimistic UI reconciliation trivially safe.
