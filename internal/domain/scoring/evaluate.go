package scoring

import (
	"errors"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// Common errors
var (
	ErrNilQuestion     = errors.New("question cannot be nil")
	ErrNilRecord       = errors.New("answer record cannot be nil")
	ErrNoSelection     = errors.New("a choice must be selected before submitting")
	ErrUnknownChoice   = errors.New("selected choice does not belong to the question")
	ErrCauseNotAllowed = errors.New("error cause cannot be set on this answer")
)

// Evaluate determines whether a selection answers the question correctly.
//
// Annulled questions count as correct for every respondent, independent
// of the selected choice. For all other questions the result is a plain
// comparison against the question's designated correct choice.
//
// A nil (uuid.Nil) selection is a caller error, not a correctness
// outcome; it is rejected with ErrNoSelection before any evaluation
// happens. A selection that does not belong to the question is rejected
// with ErrUnknownChoice.
func Evaluate(question *domain.Question, selectedChoiceID uuid.UUID) (bool, error) {
	if question == nil {
		return false, ErrNilQuestion
	}

	if selectedChoiceID == uuid.Nil {
		return false, ErrNoSelection
	}

	if !question.HasChoice(selectedChoiceID) {
		return false, ErrUnknownChoice
	}

	if question.Annulled {
		return true, nil
	}

	return selectedChoiceID == question.CorrectChoiceID, nil
}
