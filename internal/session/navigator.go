// Package session provides the in-memory finite-state cursor used to walk
// an ordered list of answer records one question at a time.
//
// Navigation is purely local: it never touches persistence and is safe to
// rebuild from a fresh snapshot of records at any time. The navigator is
// not safe for concurrent use; the model is one active cursor per session.
package session

import (
	"errors"

	"github.com/provamed/quiz-api/internal/domain"
)

// Common errors
var (
	// ErrExhausted is returned when reading the current item after the
	// cursor has moved past the end of the list.
	ErrExhausted = errors.New("session is exhausted: no current question")

	// ErrIndexOutOfRange is returned by JumpTo for indexes outside the
	// list bounds.
	ErrIndexOutOfRange = errors.New("navigation index out of range")
)

// Navigator is a cursor over an ordered sequence of answer records.
//
// It has two states: Active (0 <= cursor < len) and Exhausted
// (cursor >= len). Advancing past the last record transitions to
// Exhausted, which signals "list complete" to the consuming surface;
// no further advance is valid from there.
type Navigator struct {
	records []*domain.AnswerRecord
	cursor  int
}

// NewNavigator creates a navigator positioned at the first record.
// An empty record set is allowed and yields an immediately exhausted
// navigator.
func NewNavigator(records []*domain.AnswerRecord) *Navigator {
	return &Navigator{records: records}
}

// Len returns the number of records in the session.
func (n *Navigator) Len() int {
	return len(n.records)
}

// Index returns the current cursor position. When the navigator is
// exhausted the index equals Len().
func (n *Navigator) Index() int {
	return n.cursor
}

// Exhausted reports whether the cursor has moved past the last record.
func (n *Navigator) Exhausted() bool {
	return n.cursor >= len(n.records)
}

// Current returns the record under the cursor.
// Returns ErrExhausted when the session is complete; callers must check
// state before dereferencing.
func (n *Navigator) Current() (*domain.AnswerRecord, error) {
	if n.Exhausted() {
		return nil, ErrExhausted
	}
	return n.records[n.cursor], nil
}

// Advance moves the cursor to the next record. Advancing from the last
// record transitions to Exhausted and reports completion; advancing an
// already exhausted navigator is a no-op that keeps reporting it.
// Returns true while the navigator remains active.
func (n *Navigator) Advance() bool {
	if n.Exhausted() {
		return false
	}
	n.cursor++
	return !n.Exhausted()
}

// Skip defers the current question without submitting a response. It is
// identical to Advance except for intent: Advance follows an answered
// question, Skip an unanswered one. Neither requires the other's
// precondition; the distinction exists for the consuming surface.
func (n *Navigator) Skip() bool {
	return n.Advance()
}

// Retreat moves the cursor to the previous record, clamped at the first.
// Retreating from index 0 is a no-op.
func (n *Navigator) Retreat() {
	if n.cursor > 0 {
		n.cursor--
	}
}

// JumpTo moves the cursor directly to the given index, as when the user
// taps a question on the progress grid. Only indexes of existing records
// are valid; jumping cannot put the navigator into the Exhausted state.
func (n *Navigator) JumpTo(index int) error {
	if index < 0 || index >= len(n.records) {
		return ErrIndexOutOfRange
	}
	n.cursor = index
	return nil
}
