package report

import (
	"math"
	"sort"

	"github.com/provamed/quiz-api/internal/domain"
)

// Analyzer computes session reports using a fixed set of rule parameters.
type Analyzer struct {
	params *Params
}

// NewDefaultAnalyzer creates a new Analyzer with default parameters
func NewDefaultAnalyzer() *Analyzer {
	return &Analyzer{params: NewDefaultParams()}
}

// NewAnalyzer creates a new Analyzer with custom parameters
func NewAnalyzer(params *Params) *Analyzer {
	return &Analyzer{params: params}
}

// Analyze produces the full analytics report for one session's records.
// The records may belong to an in-progress session; unanswered records
// contribute only to the studied percentage. A nil or empty record set
// yields an empty report.
func (a *Analyzer) Analyze(records []*domain.AnswerRecord) *Report {
	r := &Report{
		ErrorCauses: map[domain.ErrorCause]int{
			domain.ErrorCauseKnowledgeGap:         0,
			domain.ErrorCauseInattention:          0,
			domain.ErrorCauseLackOfReview:         0,
			domain.ErrorCauseConfusedAlternatives: 0,
		},
	}

	studied := 0
	for _, rec := range records {
		if rec.Studied {
			studied++
		}
		if !rec.Answered {
			continue
		}
		r.AnsweredCount++
		if rec.Correct {
			r.CorrectCount++
			// Same tag, different meaning: CA on a correct answer is a
			// lucky guess, tracked apart from the error histogram.
			if rec.ErrorCause == domain.ErrorCauseConfusedAlternatives {
				r.LuckyGuesses++
			}
			continue
		}
		if rec.ErrorCause != domain.ErrorCauseNone {
			r.ErrorCauses[rec.ErrorCause]++
		}
	}

	if r.AnsweredCount > 0 {
		r.OverallAccuracy = float64(r.CorrectCount) / float64(r.AnsweredCount) * 100
	}
	if len(records) > 0 {
		r.StudiedPercentage = float64(studied) / float64(len(records)) * 100
	}

	r.Categories = groupAccuracy(records, func(rec *domain.AnswerRecord) string { return rec.Category })
	r.Subcategories = groupAccuracy(records, func(rec *domain.AnswerRecord) string { return rec.Subcategory })
	r.Subjects = groupAccuracy(records, func(rec *domain.AnswerRecord) string { return rec.Subject })

	r.Recommendations = a.recommend(r)

	return r
}

// groupAccuracy builds the accuracy statistics for one classification
// dimension. Only answered records participate; a record missing the
// dimension's value is excluded from this grouping without affecting the
// others. Groups are sorted descending by percentage, name ascending on
// ties, so output is deterministic.
func groupAccuracy(records []*domain.AnswerRecord, key func(*domain.AnswerRecord) string) []GroupAccuracy {
	byName := make(map[string]*GroupAccuracy)
	for _, rec := range records {
		if !rec.Answered {
			continue
		}
		name := key(rec)
		if name == "" {
			continue
		}
		g, ok := byName[name]
		if !ok {
			g = &GroupAccuracy{Name: name}
			byName[name] = g
		}
		g.Total++
		if rec.Correct {
			g.Correct++
		} else {
			g.Incorrect++
		}
	}

	groups := make([]GroupAccuracy, 0, len(byName))
	for _, g := range byName {
		g.Percentage = int(math.Round(float64(g.Correct) / float64(g.Total) * 100))
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Percentage != groups[j].Percentage {
			return groups[i].Percentage > groups[j].Percentage
		}
		return groups[i].Name < groups[j].Name
	})

	return groups
}

// recommend applies the heuristic rules to an otherwise complete report.
// Rules are order-independent; every applicable rule fires.
func (a *Analyzer) recommend(r *Report) Recommendations {
	rec := Recommendations{
		Strengths:  []GroupAccuracy{},
		Weaknesses: []GroupAccuracy{},
	}

	if r.AnsweredCount > 0 {
		rec.ReviewContent = r.OverallAccuracy < a.params.ReviewAccuracyThreshold
		rec.StrongPerformance = r.OverallAccuracy >= a.params.StrongAccuracyThreshold
		rec.IncreaseEngagement = r.StudiedPercentage < a.params.EngagementThreshold
	}

	// Dominant cause considers FC, FA and FR only; CA explains hesitation
	// between choices, which no coaching message addresses. Ties resolve
	// in enumeration order.
	best := 0
	for _, cause := range domain.ErrorCauses {
		if cause == domain.ErrorCauseConfusedAlternatives {
			continue
		}
		if count := r.ErrorCauses[cause]; count > best {
			best = count
			rec.DominantCause = cause
		}
	}
	if rec.DominantCause != domain.ErrorCauseNone {
		rec.CoachingMessage = a.params.CoachingMessages[rec.DominantCause]
	}

	// Strengths and weaknesses come from the subject grouping, the finest
	// dimension the session denormalizes, keeping the groups' own sort
	// order and capped to the configured maximum.
	for _, g := range r.Subjects {
		if g.Percentage >= a.params.GroupStrengthThreshold {
			if len(rec.Strengths) < a.params.MaxHighlightedGroups {
				rec.Strengths = append(rec.Strengths, g)
			}
		} else if len(rec.Weaknesses) < a.params.MaxHighlightedGroups {
			rec.Weaknesses = append(rec.Weaknesses, g)
		}
	}

	return rec
}
