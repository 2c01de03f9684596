package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// QuestionStore defines the read-only interface to the question catalog.
// Questions are owned by the external catalog; the engine never creates
// or edits them.
type QuestionStore interface {
	// GetByID retrieves a question, including its choices, by unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// ListByListID retrieves the ordered questions composing a list.
	// Ordering follows the list's position column; it defines the order
	// answer records are created in at session start.
	ListByListID(ctx context.Context, listID uuid.UUID) ([]*domain.Question, error)

	// WithTx returns a new QuestionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) QuestionStore
}
