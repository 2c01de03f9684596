package scoring

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// newQuestion builds a question with the given number of choices, the
// first one correct.
func newQuestion(choices int, annulled bool) *domain.Question {
	q := &domain.Question{
		ID:       uuid.New(),
		Annulled: annulled,
	}
	for i := 0; i < choices; i++ {
		q.Choices = append(q.Choices, domain.Choice{ID: uuid.New()})
	}
	if !annulled && choices > 0 {
		q.CorrectChoiceID = q.Choices[0].ID
		q.Choices[0].IsCorrect = true
	}
	return q
}

func TestEvaluate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, false)

	testCases := []struct {
		name      string
		question  *domain.Question
		selection uuid.UUID
		correct   bool
		err       error
	}{
		{
			name:      "correct choice evaluates correct",
			question:  question,
			selection: question.CorrectChoiceID,
			correct:   true,
		},
		{
			name:      "wrong choice evaluates incorrect",
			question:  question,
			selection: question.Choices[1].ID,
			correct:   false,
		},
		{
			name:      "nil question is rejected",
			question:  nil,
			selection: uuid.New(),
			err:       ErrNilQuestion,
		},
		{
			name:      "missing selection is rejected before evaluation",
			question:  question,
			selection: uuid.Nil,
			err:       ErrNoSelection,
		},
		{
			name:      "foreign choice is rejected",
			question:  question,
			selection: uuid.New(),
			err:       ErrUnknownChoice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			correct, err := Evaluate(tc.question, tc.selection)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("Expected error %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if correct != tc.correct {
				t.Errorf("Expected correct=%v, got %v", tc.correct, correct)
			}
		})
	}
}

func TestEvaluate_AnnulledAlwaysCorrect(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Every choice of an annulled question evaluates correct, including
	// ones that would be wrong on a live question.
	question := newQuestion(4, true)

	for i, choice := range question.Choices {
		correct, err := Evaluate(question, choice.ID)
		if err != nil {
			t.Fatalf("Expected no error for choice %d, got %v", i, err)
		}
		if !correct {
			t.Errorf("Expected choice %d of annulled question to be correct", i)
		}
	}

	// The selection still has to belong to the question.
	if _, err := Evaluate(question, uuid.New()); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("Expected error %v for foreign choice on annulled question, got %v", ErrUnknownChoice, err)
	}

	// And a missing selection is still a caller error, not a free point.
	if _, err := Evaluate(question, uuid.Nil); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected error %v for missing selection on annulled question, got %v", ErrNoSelection, err)
	}
}
