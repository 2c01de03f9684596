package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

func newRecords(n int) []*domain.AnswerRecord {
	listID := uuid.New()
	userID := uuid.New()

	records := make([]*domain.AnswerRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, &domain.AnswerRecord{
			ID:         uuid.New(),
			ListID:     listID,
			QuestionID: uuid.New(),
			UserID:     userID,
			Position:   i,
		})
	}
	return records
}

func TestNavigatorWalkToExhaustion(t *testing.T) {
	t.Parallel() // Enable parallel execution

	records := newRecords(3)
	nav := NewNavigator(records)

	if nav.Len() != 3 {
		t.Errorf("Expected length 3, got %d", nav.Len())
	}

	for i := 0; i < 3; i++ {
		if nav.Exhausted() {
			t.Fatalf("Expected active navigator at index %d", i)
		}
		current, err := nav.Current()
		if err != nil {
			t.Fatalf("Expected no error at index %d, got %v", i, err)
		}
		if current != records[i] {
			t.Errorf("Expected record %d under the cursor", i)
		}

		active := nav.Advance()
		if i < 2 && !active {
			t.Errorf("Expected navigator still active after advance %d", i)
		}
		if i == 2 && active {
			t.Error("Expected advance from the last record to report completion")
		}
	}

	if !nav.Exhausted() {
		t.Error("Expected exhausted navigator after walking all records")
	}
	if nav.Index() != nav.Len() {
		t.Errorf("Expected index %d after exhaustion, got %d", nav.Len(), nav.Index())
	}
}

func TestNavigatorCurrentAfterExhaustion(t *testing.T) {
	t.Parallel() // Enable parallel execution

	nav := NewNavigator(newRecords(1))
	nav.Advance()

	if _, err := nav.Current(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Expected error %v, got %v", ErrExhausted, err)
	}

	// Advancing an exhausted navigator stays exhausted.
	if nav.Advance() {
		t.Error("Expected advance on exhausted navigator to report completion")
	}
	if nav.Index() != 1 {
		t.Errorf("Expected cursor to stay at %d, got %d", 1, nav.Index())
	}
}

func TestNavigatorSkipMatchesAdvance(t *testing.T) {
	t.Parallel() // Enable parallel execution

	nav := NewNavigator(newRecords(2))

	if !nav.Skip() {
		t.Error("Expected navigator active after skipping the first record")
	}
	if nav.Index() != 1 {
		t.Errorf("Expected index 1 after skip, got %d", nav.Index())
	}
	if nav.Skip() {
		t.Error("Expected skip from the last record to report completion")
	}
}

func TestNavigatorRetreat(t *testing.T) {
	t.Parallel() // Enable parallel execution

	records := newRecords(3)
	nav := NewNavigator(records)

	// Retreat clamps at the first record.
	nav.Retreat()
	if nav.Index() != 0 {
		t.Errorf("Expected retreat at index 0 to be a no-op, got index %d", nav.Index())
	}

	nav.Advance()
	nav.Advance()
	nav.Retreat()
	if nav.Index() != 1 {
		t.Errorf("Expected index 1 after retreat, got %d", nav.Index())
	}

	// Retreat also recovers an exhausted navigator back to the last record.
	nav.Advance()
	nav.Advance()
	if !nav.Exhausted() {
		t.Fatal("Expected exhausted navigator")
	}
	nav.Retreat()
	if nav.Exhausted() {
		t.Error("Expected navigator active again after retreat")
	}
	current, err := nav.Current()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if current != records[2] {
		t.Error("Expected cursor on the last record after retreat")
	}
}

func TestNavigatorJumpTo(t *testing.T) {
	t.Parallel() // Enable parallel execution

	records := newRecords(3)
	nav := NewNavigator(records)

	if err := nav.JumpTo(2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	current, err := nav.Current()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if current != records[2] {
		t.Error("Expected cursor on record 2 after jump")
	}

	// Jumping cannot exhaust the navigator.
	if err := nav.JumpTo(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected error %v, got %v", ErrIndexOutOfRange, err)
	}
	if err := nav.JumpTo(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected error %v, got %v", ErrIndexOutOfRange, err)
	}
	if nav.Index() != 2 {
		t.Errorf("Expected cursor unchanged after rejected jumps, got %d", nav.Index())
	}
}

func TestNavigatorEmptySession(t *testing.T) {
	t.Parallel() // Enable parallel execution

	nav := NewNavigator(nil)

	if !nav.Exhausted() {
		t.Error("Expected empty navigator to be exhausted immediately")
	}
	if _, err := nav.Current(); !errors.Is(err, ErrExhausted) {
		t.Errorf("Expected error %v, got %v", ErrExhausted, err)
	}
	if nav.Advance() {
		t.Error("Expected advance on empty navigator to report completion")
	}
	if err := nav.JumpTo(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected error %v, got %v", ErrIndexOutOfRange, err)
	}
}
