package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Common validation errors for Question
var (
	ErrQuestionIDEmpty        = errors.New("question ID cannot be empty")
	ErrQuestionNoChoices      = errors.New("question must have at least one choice")
	ErrQuestionCorrectChoice  = errors.New("question correct choice must reference one of its choices")
	ErrQuestionChoiceIDEmpty  = errors.New("question choice ID cannot be empty")
	ErrQuestionChoiceConflict = errors.New("question choice IDs must be unique")
)

// Choice is one of the options belonging to a Question. IsCorrect is
// redundant with the owning question's CorrectChoiceID and exists for
// display purposes only; correctness decisions go through the question.
type Choice struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
}

// Question is an immutable exam item owned by the external catalog.
// The engine only reads questions; it never creates or edits them.
type Question struct {
	ID              uuid.UUID `json:"id"`
	CorrectChoiceID uuid.UUID `json:"correct_choice_id"`
	Annulled        bool      `json:"annulled"` // voided post-publication; counts as correct for everyone
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory"`
	Subject         string    `json:"subject"`
	Difficulty      string    `json:"difficulty"`
	GlobalAccuracy  float64   `json:"global_accuracy"` // historical % of respondents who answered correctly
	Choices         []Choice  `json:"choices"`
}

// Validate checks if the Question has consistent data.
// Returns an error if any field fails validation.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrQuestionIDEmpty
	}

	if len(q.Choices) == 0 {
		return ErrQuestionNoChoices
	}

	seen := make(map[uuid.UUID]bool, len(q.Choices))
	correctFound := false
	for _, c := range q.Choices {
		if c.ID == uuid.Nil {
			return ErrQuestionChoiceIDEmpty
		}
		if seen[c.ID] {
			return ErrQuestionChoiceConflict
		}
		seen[c.ID] = true
		if c.ID == q.CorrectChoiceID {
			correctFound = true
		}
	}

	// Annulled questions may carry a dangling or absent correct choice;
	// the catalog sometimes clears it when voiding the item.
	if !correctFound && !q.Annulled {
		return ErrQuestionCorrectChoice
	}

	return nil
}

// HasChoice reports whether the given choice ID belongs to this question.
func (q *Question) HasChoice(choiceID uuid.UUID) bool {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}
