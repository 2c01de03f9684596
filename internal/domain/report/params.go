package report

import (
	"github.com/provamed/quiz-api/internal/domain"
)

// Params defines all configurable thresholds for the recommendation rules
type Params struct {
	// ReviewAccuracyThreshold is the overall accuracy (percent) below
	// which the "review content" recommendation fires.
	ReviewAccuracyThreshold float64

	// EngagementThreshold is the studied-percentage below which the
	// "increase engagement" recommendation fires.
	EngagementThreshold float64

	// StrongAccuracyThreshold is the overall accuracy (percent) at or
	// above which the "performance is strong" recommendation fires.
	StrongAccuracyThreshold float64

	// GroupStrengthThreshold splits grouped accuracy into strengths
	// (percentage at or above) and weaknesses (below).
	GroupStrengthThreshold int

	// MaxHighlightedGroups caps the strengths and weaknesses lists.
	MaxHighlightedGroups int

	// CoachingMessages maps each dominant error cause to the coaching
	// message surfaced with the recommendations.
	CoachingMessages map[domain.ErrorCause]string
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		ReviewAccuracyThreshold: 70,
		EngagementThreshold:     50,
		StrongAccuracyThreshold: 80,
		GroupStrengthThreshold:  70,
		MaxHighlightedGroups:    3,
		CoachingMessages: map[domain.ErrorCause]string{
			domain.ErrorCauseKnowledgeGap: "Most errors come from knowledge gaps. Prioritize studying the theory before answering more lists.",
			domain.ErrorCauseInattention:  "Most errors come from inattention. Slow down and re-read each statement before committing to a choice.",
			domain.ErrorCauseLackOfReview: "Most errors come from lack of review. Schedule periodic reviews of topics you already studied.",
		},
	}
}
