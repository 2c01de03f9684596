package scoring

import (
	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// Recompute derives the list-level summary from the complete set of
// answer records belonging to one (list, user) session.
//
// It is always a full pass over every record, never an incremental
// patch: after a partial failure the next recomputation lands on the
// same values as if nothing had failed, which is what makes
// repair-on-read a sufficient consistency strategy.
//
// An empty record set is not an error; it yields an all-zero summary
// with Finalized=false.
func Recompute(listID, userID uuid.UUID, records []*domain.AnswerRecord) domain.ListSummary {
	summary := domain.ListSummary{
		ListID:         listID,
		UserID:         userID,
		TotalQuestions: len(records),
	}

	studied := 0
	for _, r := range records {
		if r.Answered {
			summary.AnsweredCount++
			if r.Correct {
				summary.CorrectCount++
			}
		}
		if r.Studied {
			studied++
		}
	}

	summary.IncorrectCount = summary.AnsweredCount - summary.CorrectCount

	if summary.TotalQuestions > 0 {
		summary.StudiedPercentage = float64(studied) / float64(summary.TotalQuestions) * 100
	}

	summary.Finalized = summary.TotalQuestions > 0 &&
		summary.AnsweredCount == summary.TotalQuestions

	return summary
}
