package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

func newRecordFor(question *domain.Question) *domain.AnswerRecord {
	return &domain.AnswerRecord{
		ID:         uuid.New(),
		ListID:     uuid.New(),
		QuestionID: question.ID,
		UserID:     uuid.New(),
		Position:   0,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func TestApplyAnswer_CorrectWithoutCause(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, false)
	record := newRecordFor(question)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	updated, err := ApplyAnswer(record, question, question.CorrectChoiceID, "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !updated.Answered || !updated.Correct {
		t.Error("Expected record to be answered and correct")
	}
	if updated.SelectedChoiceID != question.CorrectChoiceID {
		t.Error("Expected selection to be stored")
	}
	if updated.ErrorCause != domain.ErrorCauseNone {
		t.Errorf("Expected no cause, got %q", updated.ErrorCause)
	}
	if !updated.AnsweredAt.Equal(now) {
		t.Errorf("Expected AnsweredAt %v, got %v", now, updated.AnsweredAt)
	}

	// The input record is untouched.
	if record.Answered {
		t.Error("Expected input record to remain unanswered")
	}
	if record.SelectedChoiceID != uuid.Nil {
		t.Error("Expected input record selection to remain empty")
	}
}

func TestApplyAnswer_IncorrectWithCause(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, false)
	record := newRecordFor(question)
	wrong := question.Choices[2].ID

	updated, err := ApplyAnswer(record, question, wrong, "FC", time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Correct {
		t.Error("Expected incorrect answer")
	}
	if updated.ErrorCause != domain.ErrorCauseKnowledgeGap {
		t.Errorf("Expected cause FC, got %q", updated.ErrorCause)
	}
}

func TestApplyAnswer_CauseRules(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, false)

	testCases := []struct {
		name      string
		selection uuid.UUID
		rawCause  string
		err       error
		expected  domain.ErrorCause
	}{
		{
			name:      "CA on a correct answer marks a lucky guess",
			selection: question.CorrectChoiceID,
			rawCause:  "CA",
			expected:  domain.ErrorCauseConfusedAlternatives,
		},
		{
			name:      "FC on a correct answer is rejected",
			selection: question.CorrectChoiceID,
			rawCause:  "FC",
			err:       ErrCauseNotAllowed,
		},
		{
			name:      "unclassifiable cause rejects the submission",
			selection: question.Choices[1].ID,
			rawCause:  "whatever",
			err:       domain.ErrInvalidErrorCause,
		},
		{
			name:      "malformed cause is recovered by substring",
			selection: question.Choices[1].ID,
			rawCause:  "FA (desatenção)",
			expected:  domain.ErrorCauseInattention,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record := newRecordFor(question)
			updated, err := ApplyAnswer(record, question, tc.selection, tc.rawCause, time.Now())
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("Expected error %v, got %v", tc.err, err)
				}
				// Rejection leaves no partial state behind.
				if record.Answered {
					t.Error("Expected input record unchanged after rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if updated.ErrorCause != tc.expected {
				t.Errorf("Expected cause %q, got %q", tc.expected, updated.ErrorCause)
			}
		})
	}
}

func TestApplyAnswer_AnnulledNeverCarriesCause(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, true)
	record := newRecordFor(question)

	// Any choice is correct, and supplying a cause alongside it is
	// rejected rather than silently dropped.
	for _, raw := range []string{"FC", "FA", "FR", "CA"} {
		if _, err := ApplyAnswer(record, question, question.Choices[1].ID, raw, time.Now()); !errors.Is(err, ErrCauseNotAllowed) {
			t.Errorf("Expected error %v for cause %q on annulled question, got %v", ErrCauseNotAllowed, raw, err)
		}
	}

	updated, err := ApplyAnswer(record, question, question.Choices[3].ID, "", time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Correct {
		t.Error("Expected annulled question to evaluate correct")
	}
	if updated.ErrorCause != domain.ErrorCauseNone {
		t.Errorf("Expected no cause on annulled answer, got %q", updated.ErrorCause)
	}
}

func TestApplyAnswer_Resubmission(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(4, false)
	record := newRecordFor(question)

	first, err := ApplyAnswer(record, question, question.Choices[1].ID, "FC", time.Now())
	if err != nil {
		t.Fatalf("Expected no error on first submission, got %v", err)
	}

	// Re-submission overwrites selection and cause; the record never
	// reverts to unanswered.
	second, err := ApplyAnswer(first, question, question.CorrectChoiceID, "", time.Now())
	if err != nil {
		t.Fatalf("Expected no error on re-submission, got %v", err)
	}

	if !second.Answered || !second.Correct {
		t.Error("Expected re-submitted record to be answered and correct")
	}
	if second.ErrorCause != domain.ErrorCauseNone {
		t.Errorf("Expected cause cleared on correct re-submission, got %q", second.ErrorCause)
	}
}

func TestApplyAnswer_NilInputs(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(2, false)

	if _, err := ApplyAnswer(nil, question, question.CorrectChoiceID, "", time.Now()); !errors.Is(err, ErrNilRecord) {
		t.Errorf("Expected error %v, got %v", ErrNilRecord, err)
	}

	record := newRecordFor(question)
	if _, err := ApplyAnswer(record, nil, question.CorrectChoiceID, "", time.Now()); !errors.Is(err, ErrNilQuestion) {
		t.Errorf("Expected error %v, got %v", ErrNilQuestion, err)
	}
}

func TestMarkStudied(t *testing.T) {
	t.Parallel() // Enable parallel execution

	question := newQuestion(2, false)
	record := newRecordFor(question)

	// Studied toggles freely on an unanswered record.
	updated, err := MarkStudied(record, true, time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Studied {
		t.Error("Expected studied flag set")
	}
	if record.Studied {
		t.Error("Expected input record unchanged")
	}

	cleared, err := MarkStudied(updated, false, time.Now())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cleared.Studied {
		t.Error("Expected studied flag cleared")
	}

	if _, err := MarkStudied(nil, true, time.Now()); !errors.Is(err, ErrNilRecord) {
		t.Errorf("Expected error %v, got %v", ErrNilRecord, err)
	}
}
