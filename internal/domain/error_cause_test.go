package domain

import "testing"

func TestErrorCauseIsValid(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for _, cause := range ErrorCauses {
		if !cause.IsValid() {
			t.Errorf("Expected cause %q to be valid", cause)
		}
	}

	invalid := []ErrorCause{"", "fc", "XX", "FC ", " FA", "FCFA"}
	for _, cause := range invalid {
		if cause.IsValid() {
			t.Errorf("Expected cause %q to be invalid", cause)
		}
	}
}

func TestErrorCausesEnumerationOrder(t *testing.T) {
	t.Parallel() // Enable parallel execution

	// Substring recovery and dominant-cause tie breaking both depend on
	// this exact order.
	expected := []ErrorCause{
		ErrorCauseKnowledgeGap,
		ErrorCauseInattention,
		ErrorCauseLackOfReview,
		ErrorCauseConfusedAlternatives,
	}

	if len(ErrorCauses) != len(expected) {
		t.Fatalf("Expected %d causes, got %d", len(expected), len(ErrorCauses))
	}
	for i, cause := range expected {
		if ErrorCauses[i] != cause {
			t.Errorf("Expected cause %q at index %d, got %q", cause, i, ErrorCauses[i])
		}
	}
}
