package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// ApplyAnswer evaluates a submission against its question and returns a
// new AnswerRecord reflecting the outcome. The input record is not
// modified, so a failed persistence attempt can simply retry with the
// same arguments.
//
// Rules enforced here, in order:
//   - the selection must be valid for the question (see Evaluate);
//   - an answered record never reverts to unanswered; re-submission is
//     allowed and overwrites selection and cause;
//   - an error cause is only stored on an incorrect answer, with one
//     exception: CA on a correct answer is kept as a lucky-guess marker;
//   - annulled questions are always correct and never carry a cause,
//     even if the caller supplies one together with the submission.
//
// rawCause is the unvalidated tag from the client; pass "" when the
// client sent none. A non-empty rawCause that cannot be classified
// rejects the whole submission with domain.ErrInvalidErrorCause.
func ApplyAnswer(
	record *domain.AnswerRecord,
	question *domain.Question,
	selectedChoiceID uuid.UUID,
	rawCause string,
	now time.Time,
) (*domain.AnswerRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	correct, err := Evaluate(question, selectedChoiceID)
	if err != nil {
		return nil, err
	}

	cause := domain.ErrorCauseNone
	if rawCause != "" {
		// Annulled questions are correct by fiat, not by the respondent's
		// merit or fault; classification does not apply to them.
		if question.Annulled {
			return nil, ErrCauseNotAllowed
		}

		cause, err = Classify(rawCause)
		if err != nil {
			return nil, err
		}

		if correct && cause != domain.ErrorCauseConfusedAlternatives {
			return nil, ErrCauseNotAllowed
		}
	}

	updated := *record
	updated.Answered = true
	updated.Correct = correct
	updated.SelectedChoiceID = selectedChoiceID
	updated.ErrorCause = cause
	updated.AnsweredAt = now.UTC()
	updated.UpdatedAt = now.UTC()

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	return &updated, nil
}

// MarkStudied returns a copy of the record with the studied flag set to
// the given value. The flag is independent of correctness and may be
// toggled on unanswered records.
func MarkStudied(record *domain.AnswerRecord, studied bool, now time.Time) (*domain.AnswerRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	updated := *record
	updated.Studied = studied
	updated.UpdatedAt = now.UTC()

	return &updated, nil
}
