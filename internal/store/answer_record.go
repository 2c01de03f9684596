package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/provamed/quiz-api/internal/domain"
)

// AnswerRecordStore defines the interface for answer record persistence.
type AnswerRecordStore interface {
	// CreateBulk saves the full set of unanswered records for a new
	// session in one statement. The operation is atomic: either every
	// record is created or none.
	// Returns ErrSessionExists if any (list, question, user) row already exists.
	// Returns validation errors from the domain AnswerRecord if data is invalid.
	CreateBulk(ctx context.Context, records []*domain.AnswerRecord) error

	// GetByID retrieves an answer record by its unique ID.
	// Returns ErrAnswerRecordNotFound if the record does not exist.
	// NOTE: This method does NOT provide any row locking, so it should not
	// be used when you plan to update the row and need concurrency protection.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AnswerRecord, error)

	// GetByIDForUpdate retrieves an answer record with a row-level lock
	// using SELECT FOR UPDATE. Use it within a transaction when the row
	// will be updated, so the record write and the summary recompute form
	// one critical section.
	// Returns ErrAnswerRecordNotFound if the record does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.AnswerRecord, error)

	// ListByListAndUser retrieves the complete, ordered record set for
	// one session. Ordering follows session creation order and is stable,
	// so client-side navigators index the same question every time.
	// An empty result is not an error.
	ListByListAndUser(ctx context.Context, listID, userID uuid.UUID) ([]*domain.AnswerRecord, error)

	// Update modifies an existing record identified by its ID.
	// Returns ErrAnswerRecordNotFound if the record does not exist.
	// Returns validation errors from the domain AnswerRecord if data is invalid.
	Update(ctx context.Context, record *domain.AnswerRecord) error

	// WithTx returns a new AnswerRecordStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) AnswerRecordStore
}
