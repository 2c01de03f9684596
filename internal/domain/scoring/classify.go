package scoring

import (
	"fmt"
	"strings"

	"github.com/provamed/quiz-api/internal/domain"
)

// Classify validates and normalizes a raw error-cause tag against the
// fixed enumeration {FC, FA, FR, CA}.
//
// An exact match is accepted as-is. If the raw value merely contains one
// of the tags as a substring, that tag is used; this recovers malformed
// upstream input such as "FC - falta de conhecimento" or values with
// stray whitespace. Substring recovery walks domain.ErrorCauses in
// enumeration order, so the first tag found wins.
//
// Anything else is rejected with domain.ErrInvalidErrorCause; callers
// must leave any previously stored cause unchanged on rejection.
func Classify(raw string) (domain.ErrorCause, error) {
	if cause := domain.ErrorCause(raw); cause.IsValid() {
		return cause, nil
	}

	for _, cause := range domain.ErrorCauses {
		if strings.Contains(raw, string(cause)) {
			return cause, nil
		}
	}

	return domain.ErrorCauseNone, fmt.Errorf("%w: %q", domain.ErrInvalidErrorCause, raw)
}
