package report

import (
	"github.com/provamed/quiz-api/internal/domain"
)

// GroupAccuracy holds the accuracy statistics for one distinct value of a
// classification dimension (category, subcategory, or subject).
type GroupAccuracy struct {
	Name       string `json:"name"`
	Correct    int    `json:"correct"`
	Incorrect  int    `json:"incorrect"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"` // round(correct/total*100)
}

// Recommendations is the heuristic rule output. All applicable rules fire
// simultaneously; the flags are independent of each other.
type Recommendations struct {
	ReviewContent      bool              `json:"review_content"`
	IncreaseEngagement bool              `json:"increase_engagement"`
	StrongPerformance  bool              `json:"strong_performance"`
	DominantCause      domain.ErrorCause `json:"dominant_cause,omitempty"`
	CoachingMessage    string            `json:"coaching_message,omitempty"`
	Strengths          []GroupAccuracy   `json:"strengths"`
	Weaknesses         []GroupAccuracy   `json:"weaknesses"`
}

// Report is the derived analytics view over one session's answer records.
//
// ErrorCauses counts causes across answered, incorrect records only.
// LuckyGuesses counts CA tags on answered, correct records; the two
// counters share the CA tag but are tracked independently and must not
// be conflated.
type Report struct {
	AnsweredCount     int                       `json:"answered_count"`
	CorrectCount      int                       `json:"correct_count"`
	OverallAccuracy   float64                   `json:"overall_accuracy"`   // percent over answered records
	StudiedPercentage float64                   `json:"studied_percentage"` // percent over all records
	ErrorCauses       map[domain.ErrorCause]int `json:"error_causes"`
	LuckyGuesses      int                       `json:"lucky_guesses"`
	Categories        []GroupAccuracy           `json:"categories"`
	Subcategories     []GroupAccuracy           `json:"subcategories"`
	Subjects          []GroupAccuracy           `json:"subjects"`
	Recommendations   Recommendations           `json:"recommendations"`
}
