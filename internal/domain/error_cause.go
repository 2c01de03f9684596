package domain

// ErrorCause classifies why a respondent answered a question incorrectly.
// CA carries a second, independent meaning when attached to a correct
// answer: the respondent guessed between alternatives and got lucky.
type ErrorCause string

// The fixed set of accepted error causes.
const (
	// ErrorCauseKnowledgeGap (FC - "falta de conhecimento") marks a wrong
	// answer caused by not knowing the underlying content.
	ErrorCauseKnowledgeGap ErrorCause = "FC"

	// ErrorCauseInattention (FA - "falta de atenção") marks a wrong answer
	// caused by misreading or carelessness.
	ErrorCauseInattention ErrorCause = "FA"

	// ErrorCauseLackOfReview (FR - "falta de revisão") marks a wrong answer
	// on content the respondent knew once but did not review.
	ErrorCauseLackOfReview ErrorCause = "FR"

	// ErrorCauseConfusedAlternatives (CA - "confusão de alternativas") marks
	// a wrong answer from hesitating between choices, or, on a correct
	// answer, a lucky guess.
	ErrorCauseConfusedAlternatives ErrorCause = "CA"

	// ErrorCauseNone is the zero value: no cause recorded.
	ErrorCauseNone ErrorCause = ""
)

// ErrorCauses lists the accepted causes in their canonical enumeration
// order. The order matters: substring recovery and dominant-cause tie
// breaking both walk this slice front to back.
var ErrorCauses = []ErrorCause{
	ErrorCauseKnowledgeGap,
	ErrorCauseInattention,
	ErrorCauseLackOfReview,
	ErrorCauseConfusedAlternatives,
}

// IsValid reports whether the cause is one of the four accepted tags.
// The empty (none) value is not considered valid here; callers that
// accept "no cause" must check for ErrorCauseNone themselves.
func (c ErrorCause) IsValid() bool {
	switch c {
	case ErrorCauseKnowledgeGap, ErrorCauseInattention,
		ErrorCauseLackOfReview, ErrorCauseConfusedAlternatives:
		return true
	}
	return false
}
